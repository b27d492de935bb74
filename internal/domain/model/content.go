package model

import (
	"time"

	"devlink-platform/internal/domain"

	"github.com/google/uuid"
)

type LinkKind string

const (
	LinkKindSocial       LinkKind = "social"
	LinkKindProject      LinkKind = "project"
	LinkKindMonetization LinkKind = "monetization"
)

// Link is one outbound link on a profile page.
type Link struct {
	ID        string
	UserID    string
	Kind      LinkKind
	Title     string
	URL       string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewLink(id, userID string, kind LinkKind, title, url string, position int) (*Link, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if userID == "" || title == "" || url == "" {
		return nil, domain.ErrInvalidArgument
	}
	switch kind {
	case LinkKindSocial, LinkKindProject, LinkKindMonetization:
	default:
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Link{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		URL:       url,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Project is a showcased piece of work.
type Project struct {
	ID          string
	UserID      string
	Title       string
	Description string
	RepoURL     string
	LiveURL     string
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProject(id, userID, title, description, repoURL, liveURL string, position int) (*Project, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if userID == "" || title == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Project{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		RepoURL:     repoURL,
		LiveURL:     liveURL,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Experience is one role on the profile's work history.
type Experience struct {
	ID          string
	UserID      string
	Role        string
	Company     string
	Period      string // free-form, e.g. "2021 - 2023"
	Description string
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewExperience(id, userID, role, company, period, description string, position int) (*Experience, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if userID == "" || role == "" || company == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Experience{
		ID:          id,
		UserID:      userID,
		Role:        role,
		Company:     company,
		Period:      period,
		Description: description,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
