package model

import (
	"time"

	"devlink-platform/internal/domain"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending" // gateway order opened; awaiting verification
	PaymentStatusSuccess PaymentStatus = "success" // signature verified, subscription granted
	PaymentStatusFailed  PaymentStatus = "failed"  // abandoned or explicitly failed at the gateway
)

// Payment records one purchase attempt. Amount and Currency are snapshotted
// from the feature at order-creation time, so later catalog changes cannot
// alter an in-flight purchase. A retried purchase is a new row, never a
// mutation of a failed one.
type Payment struct {
	ID               string
	UserID           string
	FeatureID        string
	Amount           int64
	Currency         string
	OrderID          string  // gateway order id
	Receipt          string  // our receipt handed to the gateway
	GatewayPaymentID *string // set at settlement
	GatewaySignature *string // set at settlement
	Status           PaymentStatus
	SubscriptionID   *string // set after the grant links back
	Meta             map[string]interface{}
	CreatedAt        time.Time
	UpdatedAt        time.Time
	PaidAt           *time.Time
}

func NewPayment(id, userID string, feature *Feature, orderID, receipt string) (*Payment, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if userID == "" || feature.IsZero() || orderID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Payment{
		ID:        id,
		UserID:    userID,
		FeatureID: feature.ID,
		Amount:    feature.Price,
		Currency:  feature.Currency,
		OrderID:   orderID,
		Receipt:   receipt,
		Status:    PaymentStatusPending,
		Meta:      map[string]interface{}{"feature": feature.DisplayName},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *Payment) IsZero() bool { return p == nil || p.ID == "" }
