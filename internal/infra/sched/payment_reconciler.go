package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/adapter"
	"devlink-platform/internal/domain/ports/repository"
)

// PaymentReconciler periodically scans for stale pending payments and asks
// the gateway what became of their orders. Orders the gateway reports as
// abandoned are marked failed; orders reported paid stay pending, because
// settling requires the checkout signature that only the client callback
// carries, and the client can still retry verification.
type PaymentReconciler struct {
	payments   repository.PaymentRepository
	gateway    adapter.PaymentGateway
	interval   time.Duration // how often to scan
	staleAfter time.Duration // how old a pending payment must be to inspect
	log        *zerolog.Logger
}

func NewPaymentReconciler(payments repository.PaymentRepository, gateway adapter.PaymentGateway, interval, staleAfter time.Duration, logger *zerolog.Logger) *PaymentReconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 30 * time.Minute
	}
	l := logger.With().Str("worker", "payment_reconciler").Logger()
	return &PaymentReconciler{payments: payments, gateway: gateway, interval: interval, staleAfter: staleAfter, log: &l}
}

func (w *PaymentReconciler) Start(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *PaymentReconciler) tick(ctx context.Context) {
	cutoff := time.Now().Add(-w.staleAfter)
	pending, err := w.payments.ListPendingOlderThan(ctx, nil, cutoff, 200)
	if err != nil {
		w.log.Error().Err(err).Msg("list pending failed")
		return
	}
	for _, p := range pending {
		w.reconcile(ctx, p)
	}
}

func (w *PaymentReconciler) reconcile(ctx context.Context, p *model.Payment) {
	status, err := w.gateway.FetchOrderStatus(ctx, p.OrderID)
	if err != nil {
		w.log.Warn().Err(err).Str("payment_id", p.ID).Str("order_id", p.OrderID).Msg("order status fetch failed")
		return
	}
	switch status {
	case adapter.OrderStatusPaid:
		// The money arrived but the verification callback never did. Leave
		// the row pending for the user's retry and flag it for follow-up.
		w.log.Warn().Str("payment_id", p.ID).Str("order_id", p.OrderID).Msg("paid order awaiting client verification")
	case adapter.OrderStatusCreated, adapter.OrderStatusAttempted:
		ok, err := w.payments.MarkFailedIfPending(ctx, nil, p.ID)
		if err != nil {
			w.log.Error().Err(err).Str("payment_id", p.ID).Msg("mark failed errored")
			return
		}
		if ok {
			w.log.Info().Str("payment_id", p.ID).Str("order_id", p.OrderID).Msg("abandoned order marked failed")
		}
	}
}
