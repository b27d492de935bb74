package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"devlink-platform/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// decodeBody decodes a request body strictly: unknown fields are rejected
// before any handler side effect runs.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// writeDomainError maps domain sentinels to HTTP statuses. Messages stay
// generic on purpose: a rejected payment verification must not reveal whether
// the order exists, whose it is, or which check failed.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, "payment verification failed")
	case errors.Is(err, domain.ErrAlreadySettled):
		writeError(w, http.StatusConflict, "payment verification failed")
	case errors.Is(err, domain.ErrVerifyInProgress):
		writeError(w, http.StatusConflict, "verification in progress, retry shortly")
	case errors.Is(err, domain.ErrGatewayUnavailable):
		writeError(w, http.StatusBadGateway, "payment gateway unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
