package payment

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"devlink-platform/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoOpGateway)(nil)

// NoOpGateway issues locally generated order IDs and verifies signatures
// against a fixed secret. Used in dev mode so the checkout flow can be
// exercised without gateway credentials.
type NoOpGateway struct {
	secret string
}

func NewNoOpGateway(secret string) *NoOpGateway {
	if secret == "" {
		secret = "dev-secret"
	}
	return &NoOpGateway{secret: secret}
}

func (g *NoOpGateway) Name() string { return "noop" }

func (g *NoOpGateway) CreateOrder(_ context.Context, _ int64, _, _ string, _ map[string]interface{}) (string, error) {
	return fmt.Sprintf("order_%s", ulid.Make().String()), nil
}

func (g *NoOpGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyCheckoutSignature(g.secret, orderID, paymentID, signature)
}

// Sign exposes the dev signature so local clients can complete the flow.
func (g *NoOpGateway) Sign(orderID, paymentID string) string {
	return SignCheckout(g.secret, orderID, paymentID)
}

func (g *NoOpGateway) FetchOrderStatus(context.Context, string) (adapter.OrderStatus, error) {
	return adapter.OrderStatusPaid, nil
}
