//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/adapter"
	"devlink-platform/internal/domain/ports/repository"
	"devlink-platform/internal/infra/payment"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// =============================
// Repositories
// =============================

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User // by ID

	SaveFunc func(ctx context.Context, tx repository.Tx, u *model.User) error
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{store: make(map[string]*model.User)}
}

func (m *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) FindBySubject(ctx context.Context, tx repository.Tx, subjectID string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.SubjectID == subjectID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// ---- Mock ProfileRepository ----

type MockProfileRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Profile // by UserID

	SaveFunc                func(ctx context.Context, tx repository.Tx, p *model.Profile) error
	SetPublicLinkActiveFunc func(ctx context.Context, tx repository.Tx, userID string, active bool) error
}

var _ repository.ProfileRepository = (*MockProfileRepo)(nil)

func NewMockProfileRepo() *MockProfileRepo {
	return &MockProfileRepo{store: make(map[string]*model.Profile)}
}

func (m *MockProfileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	// Mirrors the real repository: a plain save never touches the flag.
	if existing, ok := m.store[p.UserID]; ok {
		cp.IsPublicLinkActive = existing.IsPublicLinkActive
	} else {
		cp.IsPublicLinkActive = false
	}
	m.store[p.UserID] = &cp
	return nil
}

func (m *MockProfileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileRepo) SetPublicLinkActive(ctx context.Context, tx repository.Tx, userID string, active bool) error {
	if m.SetPublicLinkActiveFunc != nil {
		return m.SetPublicLinkActiveFunc(ctx, tx, userID, active)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsPublicLinkActive = active
	return nil
}

// ---- Mock FeatureRepository ----

type MockFeatureRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Feature // by ID

	InsertFunc func(ctx context.Context, tx repository.Tx, f *model.Feature) error
}

var _ repository.FeatureRepository = (*MockFeatureRepo)(nil)

func NewMockFeatureRepo() *MockFeatureRepo {
	return &MockFeatureRepo{store: make(map[string]*model.Feature)}
}

func (m *MockFeatureRepo) Insert(ctx context.Context, tx repository.Tx, f *model.Feature) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, f)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.Name == f.Name {
			return domain.ErrAlreadyExists
		}
	}
	cp := *f
	m.store[f.ID] = &cp
	return nil
}

func (m *MockFeatureRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Feature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *MockFeatureRepo) FindByName(ctx context.Context, tx repository.Tx, name string) (*model.Feature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.store {
		if f.Name == name {
			cp := *f
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockFeatureRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Feature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Feature
	for _, f := range m.store {
		if f.IsActive {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- Mock PaymentRepository ----

type MockPaymentRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Payment // by ID

	SaveFunc            func(ctx context.Context, tx repository.Tx, p *model.Payment) error
	SettleIfPendingFunc func(ctx context.Context, tx repository.Tx, id, gatewayPaymentID, gatewaySignature string) (bool, error)
}

var _ repository.PaymentRepository = (*MockPaymentRepo)(nil)

func NewMockPaymentRepo() *MockPaymentRepo {
	return &MockPaymentRepo{store: make(map[string]*model.Payment)}
}

func (m *MockPaymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MockPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockPaymentRepo) FindByOrderAndUser(ctx context.Context, tx repository.Tx, orderID, userID string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.store {
		if p.OrderID == orderID && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockPaymentRepo) SettleIfPending(ctx context.Context, tx repository.Tx, id, gatewayPaymentID, gatewaySignature string) (bool, error) {
	if m.SettleIfPendingFunc != nil {
		return m.SettleIfPendingFunc(ctx, tx, id, gatewayPaymentID, gatewaySignature)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	now := time.Now()
	p.Status = model.PaymentStatusSuccess
	p.GatewayPaymentID = &gatewayPaymentID
	p.GatewaySignature = &gatewaySignature
	p.PaidAt = &now
	p.UpdatedAt = now
	return true, nil
}

func (m *MockPaymentRepo) MarkFailedIfPending(ctx context.Context, tx repository.Tx, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.Status != model.PaymentStatusPending {
		return false, nil
	}
	p.Status = model.PaymentStatusFailed
	p.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockPaymentRepo) LinkSubscription(ctx context.Context, tx repository.Tx, id, subscriptionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.SubscriptionID = &subscriptionID
	return nil
}

func (m *MockPaymentRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Payment
	for _, p := range m.store {
		if p.Status == model.PaymentStatusPending && p.CreatedAt.Before(olderThan) {
			cp := *p
			out = append(out, &cp)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MockPaymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Payment
	for _, p := range m.store {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- Mock SubscriptionRepository ----

type MockSubscriptionRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Subscription // by ID

	SaveFunc func(ctx context.Context, tx repository.Tx, s *model.Subscription) error
}

var _ repository.SubscriptionRepository = (*MockSubscriptionRepo)(nil)

func NewMockSubscriptionRepo() *MockSubscriptionRepo {
	return &MockSubscriptionRepo{store: make(map[string]*model.Subscription)}
}

func (m *MockSubscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MockSubscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockSubscriptionRepo) FindActiveByUserAndFeature(ctx context.Context, tx repository.Tx, userID, featureID string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.UserID == userID && s.FeatureID == featureID && s.Status == model.SubscriptionStatusActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSubscriptionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- Mock LinkRepository ----

type MockLinkRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Link // by ID
}

var _ repository.LinkRepository = (*MockLinkRepo)(nil)

func NewMockLinkRepo() *MockLinkRepo {
	return &MockLinkRepo{store: make(map[string]*model.Link)}
}

func (m *MockLinkRepo) Save(ctx context.Context, tx repository.Tx, l *model.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.store[l.ID] = &cp
	return nil
}

func (m *MockLinkRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *MockLinkRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Link
	for _, l := range m.store {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockLinkRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// ---- Mock ProjectRepository ----

type MockProjectRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Project
}

var _ repository.ProjectRepository = (*MockProjectRepo)(nil)

func NewMockProjectRepo() *MockProjectRepo {
	return &MockProjectRepo{store: make(map[string]*model.Project)}
}

func (m *MockProjectRepo) Save(ctx context.Context, tx repository.Tx, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MockProjectRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProjectRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Project
	for _, p := range m.store {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockProjectRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// ---- Mock ExperienceRepository ----

type MockExperienceRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Experience
}

var _ repository.ExperienceRepository = (*MockExperienceRepo)(nil)

func NewMockExperienceRepo() *MockExperienceRepo {
	return &MockExperienceRepo{store: make(map[string]*model.Experience)}
}

func (m *MockExperienceRepo) Save(ctx context.Context, tx repository.Tx, e *model.Experience) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.store[e.ID] = &cp
	return nil
}

func (m *MockExperienceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *MockExperienceRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Experience
	for _, e := range m.store {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockExperienceRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// ---- Mock StatsRepository ----

type MockStatsRepo struct {
	mu     sync.RWMutex
	Views  map[string]int64 // userID -> views
	Clicks map[string]int64 // linkID -> clicks

	AddProfileViewsFunc func(ctx context.Context, tx repository.Tx, userID string, delta int64) error
	AddLinkClicksFunc   func(ctx context.Context, tx repository.Tx, linkID string, delta int64) error
}

var _ repository.StatsRepository = (*MockStatsRepo)(nil)

func NewMockStatsRepo() *MockStatsRepo {
	return &MockStatsRepo{Views: make(map[string]int64), Clicks: make(map[string]int64)}
}

func (m *MockStatsRepo) AddProfileViews(ctx context.Context, tx repository.Tx, userID string, delta int64) error {
	if m.AddProfileViewsFunc != nil {
		return m.AddProfileViewsFunc(ctx, tx, userID, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Views[userID] += delta
	return nil
}

func (m *MockStatsRepo) AddLinkClicks(ctx context.Context, tx repository.Tx, linkID string, delta int64) error {
	if m.AddLinkClicksFunc != nil {
		return m.AddLinkClicksFunc(ctx, tx, linkID, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clicks[linkID] += delta
	return nil
}

func (m *MockStatsRepo) ProfileStats(ctx context.Context, tx repository.Tx, userID string) (*model.ProfileStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := &model.ProfileStats{UserID: userID, Views: m.Views[userID]}
	for linkID, clicks := range m.Clicks {
		out.LinkClicks = append(out.LinkClicks, model.LinkClicks{LinkID: linkID, Clicks: clicks})
	}
	return out, nil
}

// =============================
// Adapters and infrastructure
// =============================

// ---- Mock PaymentGateway ----

// MockGateway signs and verifies with a fixed secret so tests can produce
// both valid and tampered signatures.
type MockGateway struct {
	mu     sync.Mutex
	Secret string
	Orders []string // order ids handed out

	CreateOrderFunc      func(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error)
	FetchOrderStatusFunc func(ctx context.Context, orderID string) (adapter.OrderStatus, error)
}

var _ adapter.PaymentGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	return &MockGateway{Secret: "test-secret"}
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amount, currency, receipt, notes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := "order_" + receipt
	m.Orders = append(m.Orders, id)
	return id, nil
}

func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return payment.VerifyCheckoutSignature(m.Secret, orderID, paymentID, signature)
}

// Sign produces a valid callback signature for tests.
func (m *MockGateway) Sign(orderID, paymentID string) string {
	return payment.SignCheckout(m.Secret, orderID, paymentID)
}

func (m *MockGateway) FetchOrderStatus(ctx context.Context, orderID string) (adapter.OrderStatus, error) {
	if m.FetchOrderStatusFunc != nil {
		return m.FetchOrderStatusFunc(ctx, orderID)
	}
	return adapter.OrderStatusPaid, nil
}

// ---- Mock HitCounter ----

type MockHitCounter struct {
	mu     sync.Mutex
	Views  map[string]int64
	Clicks map[string]int64

	IncrProfileViewFunc func(ctx context.Context, userID string) error
	IncrLinkClickFunc   func(ctx context.Context, linkID string) error
}

var _ adapter.HitCounter = (*MockHitCounter)(nil)

func NewMockHitCounter() *MockHitCounter {
	return &MockHitCounter{Views: make(map[string]int64), Clicks: make(map[string]int64)}
}

func (m *MockHitCounter) IncrProfileView(ctx context.Context, userID string) error {
	if m.IncrProfileViewFunc != nil {
		return m.IncrProfileViewFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Views[userID]++
	return nil
}

func (m *MockHitCounter) IncrLinkClick(ctx context.Context, linkID string) error {
	if m.IncrLinkClickFunc != nil {
		return m.IncrLinkClickFunc(ctx, linkID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clicks[linkID]++
	return nil
}

func (m *MockHitCounter) DrainProfileViews(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Views
	m.Views = make(map[string]int64)
	return out, nil
}

func (m *MockHitCounter) DrainLinkClicks(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Clicks
	m.Clicks = make(map[string]int64)
	return out, nil
}

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, nil)
}

// ---- Mock Locker ----

type MockLocker struct {
	mu    sync.Mutex
	locks map[string]string

	TryLockFunc func(ctx context.Context, key string, ttl time.Duration) (string, error)
}

func NewMockLocker() *MockLocker {
	return &MockLocker{locks: make(map[string]string)}
}

func (m *MockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if m.TryLockFunc != nil {
		return m.TryLockFunc(ctx, key, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[key]; held {
		return "", domain.ErrVerifyInProgress
	}
	m.locks[key] = "token"
	return "token", nil
}

func (m *MockLocker) Unlock(ctx context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}
