package usecase

import (
	"context"
	"errors"
	"time"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ AccessUseCase = (*accessUC)(nil)

type AccessUseCase interface {
	// HasAccess reports whether the user holds an active grant for the named
	// feature. It answers false rather than erroring so call sites can treat
	// it as a plain guard.
	HasAccess(ctx context.Context, userID, featureName string) (bool, error)
	ListGrants(ctx context.Context, userID string) ([]*model.Subscription, error)
}

type accessUC struct {
	subs     repository.SubscriptionRepository
	features repository.FeatureRepository
}

func NewAccessUseCase(subs repository.SubscriptionRepository, features repository.FeatureRepository) *accessUC {
	return &accessUC{subs: subs, features: features}
}

func (u *accessUC) HasAccess(ctx context.Context, userID, featureName string) (bool, error) {
	if userID == "" || featureName == "" {
		return false, nil
	}
	feature, err := u.features.FindByName(ctx, nil, featureName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	sub, err := u.subs.FindActiveByUserAndFeature(ctx, nil, userID, feature.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.IsActiveAt(time.Now()), nil
}

func (u *accessUC) ListGrants(ctx context.Context, userID string) ([]*model.Subscription, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.subs.ListByUser(ctx, nil, userID)
}
