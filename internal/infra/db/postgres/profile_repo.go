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

var _ repository.ProfileRepository = (*profileRepo)(nil)

type profileRepo struct{ pool *pgxpool.Pool }

func NewProfileRepo(pool *pgxpool.Pool) *profileRepo {
	return &profileRepo{pool: pool}
}

// Save upserts the mutable profile fields. The visibility flag is NOT part of
// the upsert; it has a single dedicated writer in SetPublicLinkActive.
func (r *profileRepo) Save(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	const q = `
INSERT INTO profiles (user_id, display_name, bio, avatar_url, theme, tech_stack, github_username, is_public_link_active, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,false,NOW())
ON CONFLICT (user_id) DO UPDATE SET
  display_name=$2, bio=$3, avatar_url=$4, theme=$5, tech_stack=$6, github_username=$7, updated_at=NOW();`

	_, err := execSQL(ctx, r.pool, tx, q, p.UserID, p.DisplayName, p.Bio, p.AvatarURL, p.Theme, p.TechStack, p.GithubUsername)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *profileRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) (*model.Profile, error) {
	const q = `SELECT user_id, display_name, bio, avatar_url, theme, tech_stack, github_username, is_public_link_active, updated_at FROM profiles WHERE user_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	p := &model.Profile{}
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Bio, &p.AvatarURL, &p.Theme, &p.TechStack, &p.GithubUsername, &p.IsPublicLinkActive, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *profileRepo) SetPublicLinkActive(ctx context.Context, tx repository.Tx, userID string, active bool) error {
	const q = `UPDATE profiles SET is_public_link_active=$2, updated_at=NOW() WHERE user_id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, userID, active)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
