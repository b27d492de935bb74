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

var _ repository.FeatureRepository = (*featureRepo)(nil)

type featureRepo struct{ pool *pgxpool.Pool }

func NewFeatureRepo(pool *pgxpool.Pool) *featureRepo {
	return &featureRepo{pool: pool}
}

const featureColumns = `id, name, display_name, description, price, currency, is_active, created_at`

// Insert never overwrites: ON CONFLICT (name) DO NOTHING keeps seeded prices
// stable across re-runs.
func (r *featureRepo) Insert(ctx context.Context, tx repository.Tx, f *model.Feature) error {
	const q = `
INSERT INTO features (id, name, display_name, description, price, currency, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (name) DO NOTHING;`

	cmd, err := execSQL(ctx, r.pool, tx, q, f.ID, f.Name, f.DisplayName, f.Description, f.Price, f.Currency, f.IsActive, f.CreatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *featureRepo) scanFeature(row pgx.Row) (*model.Feature, error) {
	f := &model.Feature{}
	if err := row.Scan(&f.ID, &f.Name, &f.DisplayName, &f.Description, &f.Price, &f.Currency, &f.IsActive, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return f, nil
}

func (r *featureRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Feature, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+featureColumns+` FROM features WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return r.scanFeature(row)
}

func (r *featureRepo) FindByName(ctx context.Context, tx repository.Tx, name string) (*model.Feature, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+featureColumns+` FROM features WHERE name=$1;`, name)
	if err != nil {
		return nil, err
	}
	return r.scanFeature(row)
}

func (r *featureRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Feature, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT `+featureColumns+` FROM features WHERE is_active=true ORDER BY price ASC;`)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Feature
	for rows.Next() {
		f := &model.Feature{}
		if err := rows.Scan(&f.ID, &f.Name, &f.DisplayName, &f.Description, &f.Price, &f.Currency, &f.IsActive, &f.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, f)
	}
	return out, nil
}
