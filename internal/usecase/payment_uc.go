package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/adapter"
	"devlink-platform/internal/domain/ports/repository"
	"devlink-platform/internal/infra/metrics"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// Locker serializes concurrent verifications of the same order. Satisfied by
// the redis locker; tests plug in a mock.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

type PaymentUseCase interface {
	// CreateOrder opens a gateway order for the named feature and records a
	// pending payment with the feature's price snapshotted in.
	CreateOrder(ctx context.Context, userID, featureName string) (*model.Payment, error)
	// Verify checks the gateway signature and, on the first valid call for a
	// pending order, settles the payment and grants the subscription. Repeat
	// calls for an already settled order return the existing grant.
	Verify(ctx context.Context, userID, orderID, paymentID, signature string) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Payment, error)
}

type paymentUC struct {
	payments repository.PaymentRepository
	features repository.FeatureRepository
	subs     repository.SubscriptionRepository
	profiles repository.ProfileRepository
	gateway  adapter.PaymentGateway
	tm       repository.TransactionManager
	locker   Locker
	log      *zerolog.Logger
}

func NewPaymentUseCase(
	payments repository.PaymentRepository,
	features repository.FeatureRepository,
	subs repository.SubscriptionRepository,
	profiles repository.ProfileRepository,
	gateway adapter.PaymentGateway,
	tm repository.TransactionManager,
	locker Locker,
	log *zerolog.Logger,
) *paymentUC {
	l := log.With().Str("uc", "payment").Logger()
	return &paymentUC{
		payments: payments,
		features: features,
		subs:     subs,
		profiles: profiles,
		gateway:  gateway,
		tm:       tm,
		locker:   locker,
		log:      &l,
	}
}

func (u *paymentUC) CreateOrder(ctx context.Context, userID, featureName string) (*model.Payment, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	feature, err := u.features.FindByName(ctx, nil, featureName)
	if err != nil {
		return nil, err
	}
	if !feature.IsActive {
		return nil, domain.ErrNotFound
	}

	receipt := "rcpt_" + ulid.Make().String()
	orderID, err := u.gateway.CreateOrder(ctx, feature.Price, feature.Currency, receipt, map[string]interface{}{
		"user_id": userID,
		"feature": feature.Name,
	})
	if err != nil {
		metrics.IncOrder(feature.Name, "gateway_error")
		u.log.Error().Err(err).Str("feature", feature.Name).Msg("gateway order failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	p, err := model.NewPayment("", userID, feature, orderID, receipt)
	if err != nil {
		return nil, err
	}
	if err := u.payments.Save(ctx, nil, p); err != nil {
		return nil, err
	}
	metrics.IncOrder(feature.Name, "ok")
	metrics.IncPayment(string(model.PaymentStatusPending))
	u.log.Info().Str("order_id", orderID).Str("feature", feature.Name).Msg("order created")
	return p, nil
}

func (u *paymentUC) Verify(ctx context.Context, userID, orderID, paymentID, signature string) (*model.Subscription, error) {
	started := time.Now()
	sub, err := u.verify(ctx, userID, orderID, paymentID, signature)
	if err != nil {
		reason := verifyFailReason(err)
		metrics.IncVerify("fail", reason)
		metrics.ObserveVerify("fail", time.Since(started))
		return nil, err
	}
	metrics.IncVerify("ok", "")
	metrics.ObserveVerify("ok", time.Since(started))
	return sub, nil
}

func verifyFailReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		return "bad_signature"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrOperationFailed), errors.Is(err, domain.ErrReadDatabaseRow):
		return "storage"
	default:
		return "unknown"
	}
}

func (u *paymentUC) verify(ctx context.Context, userID, orderID, paymentID, signature string) (*model.Subscription, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, domain.ErrInvalidSignature
	}

	// The signature gate comes first: no storage read happens for a forged
	// callback, and the caller learns nothing about which orders exist.
	if !u.gateway.VerifySignature(orderID, paymentID, signature) {
		u.log.Warn().Str("order_id", orderID).Msg("signature mismatch")
		return nil, domain.ErrInvalidSignature
	}

	// Serialize duplicate deliveries of the same callback. The conditional
	// settle update below is the actual correctness guarantee.
	token, err := u.locker.TryLock(ctx, "verify:order:"+orderID, 30*time.Second)
	if err != nil {
		return nil, err
	}
	defer func() { _ = u.locker.Unlock(ctx, "verify:order:"+orderID, token) }()

	p, err := u.payments.FindByOrderAndUser(ctx, nil, orderID, userID)
	if err != nil {
		return nil, err
	}

	switch p.Status {
	case model.PaymentStatusSuccess:
		return u.settledSubscription(ctx, p)
	case model.PaymentStatusFailed:
		return nil, domain.ErrAlreadySettled
	}

	var sub *model.Subscription
	var activated bool
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		// Re-read under the row lock; a concurrent verifier may have settled
		// between the pre-check and here.
		row, err := u.payments.FindByOrderAndUser(ctx, tx, orderID, userID)
		if err != nil {
			return err
		}
		won, err := u.payments.SettleIfPending(ctx, tx, row.ID, paymentID, signature)
		if err != nil {
			return err
		}
		if !won {
			return domain.ErrAlreadySettled
		}

		s, err := model.NewSubscription("", row.UserID, row.FeatureID)
		if err != nil {
			return err
		}
		if err := u.subs.Save(ctx, tx, s); err != nil {
			return err
		}
		if err := u.payments.LinkSubscription(ctx, tx, row.ID, s.ID); err != nil {
			return err
		}

		feature, err := u.features.FindByID(ctx, tx, row.FeatureID)
		if err != nil {
			return err
		}
		if feature.Name == model.FeatureLinkActivation {
			if err := u.profiles.SetPublicLinkActive(ctx, tx, row.UserID, true); err != nil {
				return err
			}
			activated = true
		}
		sub = s
		return nil
	})
	if errors.Is(err, domain.ErrAlreadySettled) {
		// Lost the race to a duplicate delivery. If the winner settled it
		// successfully, answer exactly like the winner did.
		if settled, ferr := u.payments.FindByOrderAndUser(ctx, nil, orderID, userID); ferr == nil && settled.Status == model.PaymentStatusSuccess {
			return u.settledSubscription(ctx, settled)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if activated {
		// The in-tx flip runs before commit, so a public lookup racing the
		// commit can re-cache the still-hidden row. Repeating the write on
		// the pool drops that entry after the flag is durable.
		if err := u.profiles.SetPublicLinkActive(ctx, nil, userID, true); err != nil {
			u.log.Warn().Err(err).Str("order_id", orderID).Msg("post-commit visibility refresh failed")
		}
	}

	metrics.IncPayment(string(model.PaymentStatusSuccess))
	metrics.AddPaymentRevenue(p.Currency, p.Amount)
	u.log.Info().
		Str("order_id", orderID).
		Str("payment_id", paymentID).
		Str("subscription_id", sub.ID).
		Msg("payment settled")
	return sub, nil
}

// settledSubscription resolves the grant behind an already-settled payment.
func (u *paymentUC) settledSubscription(ctx context.Context, p *model.Payment) (*model.Subscription, error) {
	if p.SubscriptionID != nil {
		return u.subs.FindByID(ctx, nil, *p.SubscriptionID)
	}
	return u.subs.FindActiveByUserAndFeature(ctx, nil, p.UserID, p.FeatureID)
}

func (u *paymentUC) ListByUser(ctx context.Context, userID string) ([]*model.Payment, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.payments.ListByUser(ctx, nil, userID)
}
