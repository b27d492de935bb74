package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
	"devlink-platform/internal/infra/metrics"
	red "devlink-platform/internal/infra/redis"
)

var _ repository.ProfileRepository = (*profileRepoCacheDecorator)(nil)

type profileRepoCacheDecorator struct {
	inner repository.ProfileRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewProfileRepoCacheDecorator(inner repository.ProfileRepository, cache red.RedisClient, ttl time.Duration) repository.ProfileRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &profileRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func profileKey(userID string) string { return fmt.Sprintf("profile:%s", userID) }

func (d *profileRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	_ = d.cache.Del(ctx, profileKey(p.UserID))
	return d.inner.Save(ctx, tx, p)
}

func (d *profileRepoCacheDecorator) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	key := profileKey(userID)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("profile", "hit")
		var p model.Profile
		if json.Unmarshal([]byte(val), &p) == nil {
			return &p, nil
		}
	}

	metrics.IncCacheRequest("profile", "miss")
	p, err := d.inner.FindByUserID(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		bytes, _ := json.Marshal(p)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return p, nil
}

// SetPublicLinkActive invalidates before delegating: the flag flip is the
// moment a profile becomes publicly visible, and a stale cached copy would
// keep it hidden past the payment.
func (d *profileRepoCacheDecorator) SetPublicLinkActive(ctx context.Context, tx repository.Tx, userID string, active bool) error {
	_ = d.cache.Del(ctx, profileKey(userID))
	return d.inner.SetPublicLinkActive(ctx, tx, userID, active)
}
