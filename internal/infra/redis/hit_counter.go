package redis

import (
	"context"
	"strconv"

	"devlink-platform/internal/domain/ports/adapter"
	"devlink-platform/internal/infra/metrics"
)

var _ adapter.HitCounter = (*HitCounter)(nil)

const (
	keyProfileViews = "stats:profile_views"
	keyLinkClicks   = "stats:link_clicks"
)

// HitCounter accumulates public-traffic increments in two Redis hashes so the
// anonymous read path never touches Postgres. The analytics flusher drains
// them on an interval.
type HitCounter struct {
	cli RedisClient
}

func NewHitCounter(c RedisClient) *HitCounter {
	return &HitCounter{cli: c}
}

func (h *HitCounter) IncrProfileView(ctx context.Context, userID string) error {
	metrics.IncProfileView()
	_, err := h.cli.HIncrBy(ctx, keyProfileViews, userID, 1)
	return err
}

func (h *HitCounter) IncrLinkClick(ctx context.Context, linkID string) error {
	metrics.IncLinkClick()
	_, err := h.cli.HIncrBy(ctx, keyLinkClicks, linkID, 1)
	return err
}

func (h *HitCounter) DrainProfileViews(ctx context.Context) (map[string]int64, error) {
	return h.drain(ctx, keyProfileViews)
}

func (h *HitCounter) DrainLinkClicks(ctx context.Context) (map[string]int64, error) {
	return h.drain(ctx, keyLinkClicks)
}

func (h *HitCounter) drain(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := h.cli.HGetAllAndDelete(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		out[field] = n
	}
	return out, nil
}
