package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthenticated    = errors.New("caller is not authenticated")
	ErrInvalidSignature   = errors.New("payment signature mismatch")
	ErrGatewayUnavailable = errors.New("payment gateway request failed")
	ErrAlreadySettled     = errors.New("payment already settled")
	ErrVerifyInProgress   = errors.New("verification already in progress for this order")

	// Infrastructure-level errors surfaced through repositories
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid transaction execution context")
)
