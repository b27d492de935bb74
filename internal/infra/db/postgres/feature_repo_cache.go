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

var _ repository.FeatureRepository = (*featureRepoCacheDecorator)(nil)

// The feature catalog is effectively immutable at runtime, so cached entries
// only need invalidation when the seed inserts a new row.
type featureRepoCacheDecorator struct {
	inner repository.FeatureRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewFeatureRepoCacheDecorator(inner repository.FeatureRepository, cache red.RedisClient, ttl time.Duration) repository.FeatureRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &featureRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func (d *featureRepoCacheDecorator) Insert(ctx context.Context, tx repository.Tx, f *model.Feature) error {
	_ = d.cache.Del(ctx, fmt.Sprintf("feature:name:%s", f.Name), "features:active")
	return d.inner.Insert(ctx, tx, f)
}

func (d *featureRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Feature, error) {
	// ID lookups happen only inside the verify flow; skip the cache there so
	// the settle path always sees the authoritative row.
	return d.inner.FindByID(ctx, tx, id)
}

func (d *featureRepoCacheDecorator) FindByName(ctx context.Context, tx repository.Tx, name string) (*model.Feature, error) {
	key := fmt.Sprintf("feature:name:%s", name)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("feature", "hit")
		var f model.Feature
		if json.Unmarshal([]byte(val), &f) == nil {
			return &f, nil
		}
	}

	metrics.IncCacheRequest("feature", "miss")
	f, err := d.inner.FindByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}
	if f != nil {
		bytes, _ := json.Marshal(f)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return f, nil
}

func (d *featureRepoCacheDecorator) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Feature, error) {
	key := "features:active"
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("feature_list", "hit")
		var fs []*model.Feature
		if json.Unmarshal([]byte(val), &fs) == nil {
			return fs, nil
		}
	}

	metrics.IncCacheRequest("feature_list", "miss")
	fs, err := d.inner.ListActive(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(fs) > 0 {
		bytes, _ := json.Marshal(fs)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return fs, nil
}
