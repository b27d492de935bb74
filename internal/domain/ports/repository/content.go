package repository

import (
	"context"

	"devlink-platform/internal/domain/model"
)

// -----------------------------
// Profile content (links, projects, experiences)
// -----------------------------

type LinkRepository interface {
	Save(ctx context.Context, tx Tx, l *model.Link) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Link, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Link, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

type ProjectRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Project) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Project, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Project, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

type ExperienceRepository interface {
	Save(ctx context.Context, tx Tx, e *model.Experience) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Experience, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Experience, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

// -----------------------------
// Analytics
// -----------------------------

type StatsRepository interface {
	// AddProfileViews / AddLinkClicks fold drained counter deltas into the
	// persistent totals.
	AddProfileViews(ctx context.Context, tx Tx, userID string, delta int64) error
	AddLinkClicks(ctx context.Context, tx Tx, linkID string, delta int64) error
	ProfileStats(ctx context.Context, tx Tx, userID string) (*model.ProfileStats, error)
}
