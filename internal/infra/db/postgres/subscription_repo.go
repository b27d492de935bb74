package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
)

var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct{ pool *pgxpool.Pool }

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, user_id, feature_id, status, start_date, end_date, created_at`

func (r *subscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (id, user_id, feature_id, status, start_date, end_date, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET status=$4, end_date=$6;`

	_, err := execSQL(ctx, r.pool, tx, q, s.ID, s.UserID, s.FeatureID, s.Status, s.StartDate, s.EndDate, s.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *subscriptionRepo) scanSubscription(row pgx.Row) (*model.Subscription, error) {
	s := &model.Subscription{}
	if err := row.Scan(&s.ID, &s.UserID, &s.FeatureID, &s.Status, &s.StartDate, &s.EndDate, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

func (r *subscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanSubscription(row)
}

func (r *subscriptionRepo) FindActiveByUserAndFeature(ctx context.Context, tx repository.Tx, userID, featureID string) (*model.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id=$1 AND feature_id=$2 AND status='active' LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID, featureID)
	if err != nil {
		return nil, err
	}
	return r.scanSubscription(row)
}

func (r *subscriptionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Subscription, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id=$1 ORDER BY created_at DESC;`, userID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Subscription
	for rows.Next() {
		s := new(model.Subscription)
		if err := rows.Scan(&s.ID, &s.UserID, &s.FeatureID, &s.Status, &s.StartDate, &s.EndDate, &s.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, s)
	}
	return out, nil
}
