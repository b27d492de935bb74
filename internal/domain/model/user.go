package model

import (
	"time"

	"devlink-platform/internal/domain"

	"github.com/google/uuid"
)

// User is the account behind a claimed username. SubjectID is the opaque
// identifier issued by the external identity provider; it is the only
// credential this service ever sees.
type User struct {
	ID           string
	SubjectID    string
	Email        string
	Username     string
	RegisteredAt time.Time
	LastActiveAt time.Time
}

func NewUser(id, subjectID, email, username string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if subjectID == "" || username == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           id,
		SubjectID:    subjectID,
		Email:        email,
		Username:     username,
		RegisteredAt: now,
		LastActiveAt: now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
func (u *User) Touch()       { u.LastActiveAt = time.Now() }
