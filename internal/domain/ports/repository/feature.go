package repository

import (
	"context"

	"devlink-platform/internal/domain/model"
)

// -----------------------------
// Feature catalog
// -----------------------------

type FeatureRepository interface {
	// Insert adds a catalog row. Returns domain.ErrAlreadyExists when a row
	// with the same name is present; it never overwrites, so in-flight prices
	// cannot be reset by a re-run of the seed.
	Insert(ctx context.Context, tx Tx, f *model.Feature) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Feature, error)
	FindByName(ctx context.Context, tx Tx, name string) (*model.Feature, error)
	ListActive(ctx context.Context, tx Tx) ([]*model.Feature, error)
}
