package model

import (
	"time"

	"devlink-platform/internal/domain"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a lifetime access grant for one (user, feature) pair.
// It is created exactly once per successful payment, never speculatively.
// EndDate is nil in the lifetime model; a non-nil EndDate in the past counts
// as not-active so a time-bounded feature can be introduced later.
type Subscription struct {
	ID        string
	UserID    string
	FeatureID string
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

func NewSubscription(id, userID, featureID string) (*Subscription, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if userID == "" || featureID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Subscription{
		ID:        id,
		UserID:    userID,
		FeatureID: featureID,
		Status:    SubscriptionStatusActive,
		StartDate: now,
		EndDate:   nil,
		CreatedAt: now,
	}, nil
}

// IsActiveAt reports whether the grant confers access at the given instant.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	if s == nil || s.Status != SubscriptionStatusActive {
		return false
	}
	if s.EndDate != nil && now.After(*s.EndDate) {
		return false
	}
	return true
}
