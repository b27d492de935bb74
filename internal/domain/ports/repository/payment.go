package repository

import (
	"context"
	"time"

	"devlink-platform/internal/domain/model"
)

// -----------------------------
// Payments
// -----------------------------

type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Payment, error)
	// FindByOrderAndUser scopes the lookup to the authenticated caller: a
	// payment row can never be claimed by a different user than the one who
	// opened it.
	FindByOrderAndUser(ctx context.Context, tx Tx, orderID, userID string) (*model.Payment, error)
	// SettleIfPending atomically records the gateway payment id and signature
	// and moves status to success, only when the row is still pending. The
	// boolean reports whether this caller won the transition; a concurrent
	// duplicate verifier observes false and must short-circuit.
	SettleIfPending(ctx context.Context, tx Tx, id, gatewayPaymentID, gatewaySignature string) (bool, error)
	// MarkFailedIfPending is the reconciler's transition for abandoned orders.
	MarkFailedIfPending(ctx context.Context, tx Tx, id string) (bool, error)
	LinkSubscription(ctx context.Context, tx Tx, id, subscriptionID string) error
	ListPendingOlderThan(ctx context.Context, tx Tx, olderThan time.Time, limit int) ([]*model.Payment, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Payment, error)
}

// -----------------------------
// Subscriptions
// -----------------------------

type SubscriptionRepository interface {
	Save(ctx context.Context, tx Tx, s *model.Subscription) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Subscription, error)
	FindActiveByUserAndFeature(ctx context.Context, tx Tx, userID, featureID string) (*model.Subscription, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Subscription, error)
}
