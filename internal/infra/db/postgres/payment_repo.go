package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
)

var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentColumns = `id, user_id, feature_id, amount, currency, order_id, receipt, gateway_payment_id, gateway_signature, status, subscription_id, meta, created_at, updated_at, paid_at`

func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (
  id, user_id, feature_id, amount, currency, order_id, receipt, gateway_payment_id, gateway_signature, status, subscription_id, meta, created_at, updated_at, paid_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15
) ON CONFLICT (id) DO UPDATE SET
  gateway_payment_id=$8, gateway_signature=$9, status=$10, subscription_id=$11, meta=$12, updated_at=$14, paid_at=$15;`

	_, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.FeatureID, p.Amount, p.Currency, p.OrderID, p.Receipt, p.GatewayPaymentID, p.GatewaySignature, p.Status, p.SubscriptionID, p.Meta, p.CreatedAt, p.UpdatedAt, p.PaidAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	if err := row.Scan(&p.ID, &p.UserID, &p.FeatureID, &p.Amount, &p.Currency, &p.OrderID, &p.Receipt, &p.GatewayPaymentID, &p.GatewaySignature, &p.Status, &p.SubscriptionID, &p.Meta, &p.CreatedAt, &p.UpdatedAt, &p.PaidAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return r.scanPayment(row)
}

func (r *paymentRepo) FindByOrderAndUser(ctx context.Context, tx repository.Tx, orderID, userID string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1 AND user_id=$2`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, orderID, userID)
	if err != nil {
		return nil, err
	}
	return r.scanPayment(row)
}

// SettleIfPending performs the conditional settle: only a still-pending row
// transitions, so a second verifier racing on the same order observes zero
// rows affected.
func (r *paymentRepo) SettleIfPending(ctx context.Context, tx repository.Tx, id, gatewayPaymentID, gatewaySignature string) (bool, error) {
	const q = `
UPDATE payments
   SET gateway_payment_id = $2,
       gateway_signature = $3,
       status = 'success',
       paid_at = NOW(),
       updated_at = NOW()
 WHERE id = $1
   AND status = 'pending';`

	cmd, err := execSQL(ctx, r.pool, tx, q, id, gatewayPaymentID, gatewaySignature)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

func (r *paymentRepo) MarkFailedIfPending(ctx context.Context, tx repository.Tx, id string) (bool, error) {
	const q = `UPDATE payments SET status='failed', updated_at=NOW() WHERE id=$1 AND status='pending';`
	cmd, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

func (r *paymentRepo) LinkSubscription(ctx context.Context, tx repository.Tx, id, subscriptionID string) error {
	const q = `UPDATE payments SET subscription_id=$2, updated_at=NOW() WHERE id=$1;`
	_, err := execSQL(ctx, r.pool, tx, q, id, subscriptionID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.Payment, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE status='pending' AND created_at < $1 ORDER BY created_at ASC LIMIT $2;`
	return r.list(ctx, tx, q, olderThan, limit)
}

func (r *paymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE user_id=$1 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, userID)
}

func (r *paymentRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Payment, error) {
	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Payment
	for rows.Next() {
		p := new(model.Payment)
		if err := rows.Scan(&p.ID, &p.UserID, &p.FeatureID, &p.Amount, &p.Currency, &p.OrderID, &p.Receipt, &p.GatewayPaymentID, &p.GatewaySignature, &p.Status, &p.SubscriptionID, &p.Meta, &p.CreatedAt, &p.UpdatedAt, &p.PaidAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, p)
	}
	return out, nil
}
