package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/adapter"
	"devlink-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ AnalyticsUseCase = (*analyticsUC)(nil)

type AnalyticsUseCase interface {
	// Stats returns the owner dashboard summary. Counts still buffered in
	// the hit counter are not included until the next flush.
	Stats(ctx context.Context, userID string) (*model.ProfileStats, error)
	// Flush drains the buffered counters into persistent totals. Called by
	// the background flusher and by tests.
	Flush(ctx context.Context) error
}

type analyticsUC struct {
	stats   repository.StatsRepository
	counter adapter.HitCounter
	log     *zerolog.Logger
}

func NewAnalyticsUseCase(stats repository.StatsRepository, counter adapter.HitCounter, log *zerolog.Logger) *analyticsUC {
	l := log.With().Str("uc", "analytics").Logger()
	return &analyticsUC{stats: stats, counter: counter, log: &l}
}

func (u *analyticsUC) Stats(ctx context.Context, userID string) (*model.ProfileStats, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.stats.ProfileStats(ctx, nil, userID)
}

func (u *analyticsUC) Flush(ctx context.Context) error {
	views, err := u.counter.DrainProfileViews(ctx)
	if err != nil {
		return err
	}
	for userID, delta := range views {
		if delta == 0 {
			continue
		}
		if err := u.stats.AddProfileViews(ctx, nil, userID, delta); err != nil {
			// The drained delta is lost on error; log loudly so a stuck
			// stats table does not pass silently.
			u.log.Error().Err(err).Str("user_id", userID).Int64("delta", delta).Msg("profile view flush failed")
		}
	}

	clicks, err := u.counter.DrainLinkClicks(ctx)
	if err != nil {
		return err
	}
	for linkID, delta := range clicks {
		if delta == 0 {
			continue
		}
		if err := u.stats.AddLinkClicks(ctx, nil, linkID, delta); err != nil {
			u.log.Error().Err(err).Str("link_id", linkID).Int64("delta", delta).Msg("link click flush failed")
		}
	}
	return nil
}
