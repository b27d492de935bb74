package adapter

import "context"

// OrderStatus values reported by FetchOrderStatus, normalized across
// providers.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusAttempted OrderStatus = "attempted"
)

// PaymentGateway is the hex port for the external payment processor.
type PaymentGateway interface {
	Name() string

	// CreateOrder opens a checkout order for the given amount in minor
	// currency units and returns the provider's order id.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (orderID string, err error)

	// VerifySignature recomputes HMAC-SHA256(secret, orderID + "|" + paymentID)
	// and compares it in constant time against the supplied hex signature.
	// This is the only barrier between a forged callback and an access grant.
	VerifySignature(orderID, paymentID, signature string) bool

	// FetchOrderStatus asks the provider for the current state of an order.
	// Used by the reconciler for stale pending payments.
	FetchOrderStatus(ctx context.Context, orderID string) (OrderStatus, error)
}

// HitCounter buffers public-traffic analytics increments so the read path
// never writes to Postgres. A background flusher drains the deltas.
type HitCounter interface {
	IncrProfileView(ctx context.Context, userID string) error
	IncrLinkClick(ctx context.Context, linkID string) error
	// DrainProfileViews / DrainLinkClicks atomically read-and-reset all
	// pending deltas.
	DrainProfileViews(ctx context.Context) (map[string]int64, error)
	DrainLinkClicks(ctx context.Context) (map[string]int64, error)
}
