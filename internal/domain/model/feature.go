package model

import (
	"time"

	"devlink-platform/internal/domain"

	"github.com/google/uuid"
)

// FeatureLinkActivation is the reserved feature whose settled payment flips
// the owning profile public. All other features only affect access checks.
const FeatureLinkActivation = "link_activation"

// Feature is an immutable catalog row describing a purchasable capability.
// Price is in minor currency units. Rows are created by the seed command and
// never mutated by end users.
type Feature struct {
	ID          string
	Name        string
	DisplayName string
	Description string
	Price       int64
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
}

func NewFeature(id, name, displayName, description string, price int64, currency string) (*Feature, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if name == "" || displayName == "" || price <= 0 || currency == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Feature{
		ID:          id,
		Name:        name,
		DisplayName: displayName,
		Description: description,
		Price:       price,
		Currency:    currency,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}, nil
}

func (f *Feature) IsZero() bool { return f == nil || f.ID == "" }
