package repository

import (
	"context"

	"devlink-platform/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindBySubject(ctx context.Context, tx Tx, subjectID string) (*model.User, error)
	FindByUsername(ctx context.Context, tx Tx, username string) (*model.User, error)
	CountUsers(ctx context.Context, tx Tx) (int, error)
}

// -----------------------------
// Profiles
// -----------------------------

type ProfileRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Profile) error
	FindByUserID(ctx context.Context, tx Tx, userID string) (*model.Profile, error)
	// SetPublicLinkActive flips the visibility flag. Only the payment
	// verification flow may call it.
	SetPublicLinkActive(ctx context.Context, tx Tx, userID string, active bool) error
}
