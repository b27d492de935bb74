package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"devlink-platform/internal/usecase"
)

// AnalyticsFlusher drains the redis hit counters into persistent totals on a
// fixed cadence, and once more on shutdown so buffered deltas survive a
// restart.
type AnalyticsFlusher struct {
	analytics usecase.AnalyticsUseCase
	interval  time.Duration
	log       *zerolog.Logger
}

func NewAnalyticsFlusher(analytics usecase.AnalyticsUseCase, interval time.Duration, logger *zerolog.Logger) *AnalyticsFlusher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	l := logger.With().Str("worker", "analytics_flusher").Logger()
	return &AnalyticsFlusher{analytics: analytics, interval: interval, log: &l}
}

func (w *AnalyticsFlusher) Start(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := w.analytics.Flush(flushCtx); err != nil {
				w.log.Error().Err(err).Msg("final flush failed")
			}
			cancel()
			return
		case <-t.C:
			if err := w.analytics.Flush(ctx); err != nil {
				w.log.Error().Err(err).Msg("flush failed")
			}
		}
	}
}
