//go:build !integration

package api_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
	"devlink-platform/internal/infra/payment"
)

func newLogger() *zerolog.Logger { l := zerolog.New(io.Discard); return &l }

// memStore is a tiny generic map guarded by a mutex, shared by the in-memory
// repositories below.
type memStore[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newMemStore[T any]() *memStore[T] { return &memStore[T]{items: make(map[string]*T)} }

func (s *memStore[T]) put(id string, v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *v
	s.items[id] = &cp
}

func (s *memStore[T]) get(id string) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok {
		return nil, false
	}
	cp := *v
	return &cp, true
}

func (s *memStore[T]) del(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *memStore[T]) each(fn func(*T) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.items {
		if !fn(v) {
			return
		}
	}
}

// ---- users ----

type memUserRepo struct{ *memStore[model.User] }

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo { return &memUserRepo{newMemStore[model.User]()} }

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.put(u.ID, u)
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if u, ok := m.get(id); ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) FindBySubject(ctx context.Context, tx repository.Tx, subjectID string) (*model.User, error) {
	var out *model.User
	m.each(func(u *model.User) bool {
		if u.SubjectID == subjectID {
			cp := *u
			out = &cp
			return false
		}
		return true
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (m *memUserRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.User, error) {
	var out *model.User
	m.each(func(u *model.User) bool {
		if u.Username == username {
			cp := *u
			out = &cp
			return false
		}
		return true
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (m *memUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	n := 0
	m.each(func(*model.User) bool { n++; return true })
	return n, nil
}

// ---- profiles ----

type memProfileRepo struct{ *memStore[model.Profile] }

var _ repository.ProfileRepository = (*memProfileRepo)(nil)

func newMemProfileRepo() *memProfileRepo { return &memProfileRepo{newMemStore[model.Profile]()} }

func (m *memProfileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	cp := *p
	if existing, ok := m.get(p.UserID); ok {
		cp.IsPublicLinkActive = existing.IsPublicLinkActive
	} else {
		cp.IsPublicLinkActive = false
	}
	m.put(p.UserID, &cp)
	return nil
}

func (m *memProfileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	if p, ok := m.get(userID); ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memProfileRepo) SetPublicLinkActive(ctx context.Context, tx repository.Tx, userID string, active bool) error {
	p, ok := m.get(userID)
	if !ok {
		return domain.ErrNotFound
	}
	p.IsPublicLinkActive = active
	m.put(userID, p)
	return nil
}

// ---- features ----

type memFeatureRepo struct{ *memStore[model.Feature] }

var _ repository.FeatureRepository = (*memFeatureRepo)(nil)

func newMemFeatureRepo() *memFeatureRepo { return &memFeatureRepo{newMemStore[model.Feature]()} }

func (m *memFeatureRepo) Insert(ctx context.Context, tx repository.Tx, f *model.Feature) error {
	dup := false
	m.each(func(e *model.Feature) bool {
		if e.Name == f.Name {
			dup = true
			return false
		}
		return true
	})
	if dup {
		return domain.ErrAlreadyExists
	}
	m.put(f.ID, f)
	return nil
}

func (m *memFeatureRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Feature, error) {
	if f, ok := m.get(id); ok {
		return f, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memFeatureRepo) FindByName(ctx context.Context, tx repository.Tx, name string) (*model.Feature, error) {
	var out *model.Feature
	m.each(func(f *model.Feature) bool {
		if f.Name == name {
			cp := *f
			out = &cp
			return false
		}
		return true
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (m *memFeatureRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Feature, error) {
	var out []*model.Feature
	m.each(func(f *model.Feature) bool {
		if f.IsActive {
			cp := *f
			out = append(out, &cp)
		}
		return true
	})
	return out, nil
}

// ---- payments ----

type memPaymentRepo struct{ *memStore[model.Payment] }

var _ repository.PaymentRepository = (*memPaymentRepo)(nil)

func newMemPaymentRepo() *memPaymentRepo { return &memPaymentRepo{newMemStore[model.Payment]()} }

func (m *memPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	m.put(p.ID, p)
	return nil
}

func (m *memPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	if p, ok := m.get(id); ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memPaymentRepo) FindByOrderAndUser(ctx context.Context, tx repository.Tx, orderID, userID string) (*model.Payment, error) {
	var out *model.Payment
	m.each(func(p *model.Payment) bool {
		if p.OrderID == orderID && p.UserID == userID {
			cp := *p
			out = &cp
			return false
		}
		return true
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (m *memPaymentRepo) SettleIfPending(ctx context.Context, tx repository.Tx, id, gatewayPaymentID, gatewaySignature string) (bool, error) {
	p, ok := m.get(id)
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	now := time.Now()
	p.Status = model.PaymentStatusSuccess
	p.GatewayPaymentID = &gatewayPaymentID
	p.GatewaySignature = &gatewaySignature
	p.PaidAt = &now
	m.put(id, p)
	return true, nil
}

func (m *memPaymentRepo) MarkFailedIfPending(ctx context.Context, tx repository.Tx, id string) (bool, error) {
	p, ok := m.get(id)
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = model.PaymentStatusFailed
	m.put(id, p)
	return true, nil
}

func (m *memPaymentRepo) LinkSubscription(ctx context.Context, tx repository.Tx, id, subscriptionID string) error {
	p, ok := m.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	p.SubscriptionID = &subscriptionID
	m.put(id, p)
	return nil
}

func (m *memPaymentRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Payment, error) {
	var out []*model.Payment
	m.each(func(p *model.Payment) bool {
		if p.Status == model.PaymentStatusPending && p.CreatedAt.Before(olderThan) {
			cp := *p
			out = append(out, &cp)
		}
		return limit <= 0 || len(out) < limit
	})
	return out, nil
}

func (m *memPaymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Payment, error) {
	var out []*model.Payment
	m.each(func(p *model.Payment) bool {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
		return true
	})
	return out, nil
}

// ---- subscriptions ----

type memSubscriptionRepo struct{ *memStore[model.Subscription] }

var _ repository.SubscriptionRepository = (*memSubscriptionRepo)(nil)

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{newMemStore[model.Subscription]()}
}

func (m *memSubscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	m.put(s.ID, s)
	return nil
}

func (m *memSubscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	if s, ok := m.get(id); ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memSubscriptionRepo) FindActiveByUserAndFeature(ctx context.Context, tx repository.Tx, userID, featureID string) (*model.Subscription, error) {
	var out *model.Subscription
	m.each(func(s *model.Subscription) bool {
		if s.UserID == userID && s.FeatureID == featureID && s.Status == model.SubscriptionStatusActive {
			cp := *s
			out = &cp
			return false
		}
		return true
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (m *memSubscriptionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Subscription, error) {
	var out []*model.Subscription
	m.each(func(s *model.Subscription) bool {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
		return true
	})
	return out, nil
}

// ---- content ----

type memLinkRepo struct{ *memStore[model.Link] }

var _ repository.LinkRepository = (*memLinkRepo)(nil)

func newMemLinkRepo() *memLinkRepo { return &memLinkRepo{newMemStore[model.Link]()} }

func (m *memLinkRepo) Save(ctx context.Context, tx repository.Tx, l *model.Link) error {
	m.put(l.ID, l)
	return nil
}

func (m *memLinkRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Link, error) {
	if l, ok := m.get(id); ok {
		return l, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memLinkRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Link, error) {
	var out []*model.Link
	m.each(func(l *model.Link) bool {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
		return true
	})
	return out, nil
}

func (m *memLinkRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	if !m.del(id) {
		return domain.ErrNotFound
	}
	return nil
}

type memProjectRepo struct{ *memStore[model.Project] }

var _ repository.ProjectRepository = (*memProjectRepo)(nil)

func newMemProjectRepo() *memProjectRepo { return &memProjectRepo{newMemStore[model.Project]()} }

func (m *memProjectRepo) Save(ctx context.Context, tx repository.Tx, p *model.Project) error {
	m.put(p.ID, p)
	return nil
}

func (m *memProjectRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Project, error) {
	if p, ok := m.get(id); ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memProjectRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Project, error) {
	var out []*model.Project
	m.each(func(p *model.Project) bool {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
		return true
	})
	return out, nil
}

func (m *memProjectRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	if !m.del(id) {
		return domain.ErrNotFound
	}
	return nil
}

type memExperienceRepo struct{ *memStore[model.Experience] }

var _ repository.ExperienceRepository = (*memExperienceRepo)(nil)

func newMemExperienceRepo() *memExperienceRepo {
	return &memExperienceRepo{newMemStore[model.Experience]()}
}

func (m *memExperienceRepo) Save(ctx context.Context, tx repository.Tx, e *model.Experience) error {
	m.put(e.ID, e)
	return nil
}

func (m *memExperienceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Experience, error) {
	if e, ok := m.get(id); ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memExperienceRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Experience, error) {
	var out []*model.Experience
	m.each(func(e *model.Experience) bool {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
		return true
	})
	return out, nil
}

func (m *memExperienceRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	if !m.del(id) {
		return domain.ErrNotFound
	}
	return nil
}

// ---- stats ----

type memStatsRepo struct {
	mu     sync.Mutex
	views  map[string]int64
	clicks map[string]int64
}

var _ repository.StatsRepository = (*memStatsRepo)(nil)

func newMemStatsRepo() *memStatsRepo {
	return &memStatsRepo{views: make(map[string]int64), clicks: make(map[string]int64)}
}

func (m *memStatsRepo) AddProfileViews(ctx context.Context, tx repository.Tx, userID string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[userID] += delta
	return nil
}

func (m *memStatsRepo) AddLinkClicks(ctx context.Context, tx repository.Tx, linkID string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks[linkID] += delta
	return nil
}

func (m *memStatsRepo) ProfileStats(ctx context.Context, tx repository.Tx, userID string) (*model.ProfileStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &model.ProfileStats{UserID: userID, Views: m.views[userID]}, nil
}

// ---- counter, tx manager, locker ----

type memHitCounter struct {
	mu     sync.Mutex
	views  map[string]int64
	clicks map[string]int64
}

func newMemHitCounter() *memHitCounter {
	return &memHitCounter{views: make(map[string]int64), clicks: make(map[string]int64)}
}

func (m *memHitCounter) IncrProfileView(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[userID]++
	return nil
}

func (m *memHitCounter) IncrLinkClick(ctx context.Context, linkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks[linkID]++
	return nil
}

func (m *memHitCounter) DrainProfileViews(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.views
	m.views = make(map[string]int64)
	return out, nil
}

func (m *memHitCounter) DrainLinkClicks(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.clicks
	m.clicks = make(map[string]int64)
	return out, nil
}

type mockTxManager struct{}

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

type mockLocker struct{}

func (mockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "token", nil
}

func (mockLocker) Unlock(ctx context.Context, key, token string) error { return nil }

// testGateway wraps the dev gateway so tests can mint valid signatures.
type testGateway struct{ *payment.NoOpGateway }

func newTestGateway() testGateway { return testGateway{payment.NewNoOpGateway("api-test-secret")} }
