package model

import (
	"time"

	"devlink-platform/internal/domain"
)

// Profile is the public-facing portfolio page owned by one user.
//
// IsPublicLinkActive is the sole gate for public visibility: until it flips
// to true, every public lookup of the owning username answers "not found".
// The flag is never set by a dashboard mutation; the only writer is the
// payment verification flow for the link_activation feature.
type Profile struct {
	UserID             string
	DisplayName        string
	Bio                string
	AvatarURL          string
	Theme              string
	TechStack          []string
	GithubUsername     string
	IsPublicLinkActive bool
	UpdatedAt          time.Time
}

func NewProfile(userID string) (*Profile, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Profile{
		UserID:    userID,
		Theme:     "default",
		UpdatedAt: time.Now(),
	}, nil
}
