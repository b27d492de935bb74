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

var _ repository.UserRepository = (*userRepoCacheDecorator)(nil)

type userRepoCacheDecorator struct {
	inner repository.UserRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewUserRepoCacheDecorator(inner repository.UserRepository, cache red.RedisClient, ttl time.Duration) repository.UserRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &userRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// For write operations, we must invalidate all possible keys for that user.
func (d *userRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	_ = d.cache.Del(ctx,
		fmt.Sprintf("user:id:%s", u.ID),
		fmt.Sprintf("user:username:%s", u.Username),
		fmt.Sprintf("user:subject:%s", u.SubjectID),
	)
	return d.inner.Save(ctx, tx, u)
}

func (d *userRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	return d.lookup(ctx, fmt.Sprintf("user:id:%s", id), func() (*model.User, error) {
		return d.inner.FindByID(ctx, tx, id)
	})
}

func (d *userRepoCacheDecorator) FindBySubject(ctx context.Context, tx repository.Tx, subjectID string) (*model.User, error) {
	return d.lookup(ctx, fmt.Sprintf("user:subject:%s", subjectID), func() (*model.User, error) {
		return d.inner.FindBySubject(ctx, tx, subjectID)
	})
}

func (d *userRepoCacheDecorator) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.User, error) {
	return d.lookup(ctx, fmt.Sprintf("user:username:%s", username), func() (*model.User, error) {
		return d.inner.FindByUsername(ctx, tx, username)
	})
}

func (d *userRepoCacheDecorator) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	return d.inner.CountUsers(ctx, tx)
}

func (d *userRepoCacheDecorator) lookup(ctx context.Context, key string, load func() (*model.User, error)) (*model.User, error) {
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("user", "hit")
		var user model.User
		if json.Unmarshal([]byte(val), &user) == nil {
			return &user, nil
		}
	}

	metrics.IncCacheRequest("user", "miss")
	user, err := load()
	if err != nil {
		return nil, err
	}
	if user != nil {
		bytes, _ := json.Marshal(user)
		// Warm every alias key so the next lookup hits regardless of which
		// identifier it uses.
		_ = d.cache.Set(ctx, fmt.Sprintf("user:id:%s", user.ID), bytes, d.ttl)
		_ = d.cache.Set(ctx, fmt.Sprintf("user:username:%s", user.Username), bytes, d.ttl)
		_ = d.cache.Set(ctx, fmt.Sprintf("user:subject:%s", user.SubjectID), bytes, d.ttl)
	}
	return user, nil
}
