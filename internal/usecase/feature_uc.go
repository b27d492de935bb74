package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ FeatureUseCase = (*featureUC)(nil)

type FeatureUseCase interface {
	List(ctx context.Context) ([]*model.Feature, error)
	Get(ctx context.Context, id string) (*model.Feature, error)
	// SeedDefaults inserts the built-in catalog. Existing rows are left
	// untouched, so a re-run never resets a price that was changed in place.
	SeedDefaults(ctx context.Context) error
}

type seedFeature struct {
	name        string
	displayName string
	description string
	price       int64
	currency    string
}

var defaultCatalog = []seedFeature{
	{
		name:        model.FeatureLinkActivation,
		displayName: "Public Link Activation",
		description: "Makes your profile page publicly reachable at its link.",
		price:       49900,
		currency:    "INR",
	},
	{
		name:        "custom_theme",
		displayName: "Custom Themes",
		description: "Unlocks the full theme gallery for your page.",
		price:       19900,
		currency:    "INR",
	},
	{
		name:        "advanced_analytics",
		displayName: "Advanced Analytics",
		description: "Per-link click history and referrer breakdowns.",
		price:       29900,
		currency:    "INR",
	},
}

type featureUC struct {
	features repository.FeatureRepository
	log      *zerolog.Logger
}

func NewFeatureUseCase(features repository.FeatureRepository, log *zerolog.Logger) *featureUC {
	l := log.With().Str("uc", "feature").Logger()
	return &featureUC{features: features, log: &l}
}

func (u *featureUC) List(ctx context.Context) ([]*model.Feature, error) {
	return u.features.ListActive(ctx, nil)
}

func (u *featureUC) Get(ctx context.Context, id string) (*model.Feature, error) {
	return u.features.FindByID(ctx, nil, id)
}

func (u *featureUC) SeedDefaults(ctx context.Context) error {
	for _, sf := range defaultCatalog {
		f, err := model.NewFeature("", sf.name, sf.displayName, sf.description, sf.price, sf.currency)
		if err != nil {
			return err
		}
		if err := u.features.Insert(ctx, nil, f); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				u.log.Info().Str("feature", sf.name).Msg("already seeded, skipping")
				continue
			}
			return err
		}
		u.log.Info().Str("feature", sf.name).Int64("price", sf.price).Msg("seeded feature")
	}
	return nil
}
