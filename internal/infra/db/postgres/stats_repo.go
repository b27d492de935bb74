package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
)

var _ repository.StatsRepository = (*statsRepo)(nil)

type statsRepo struct{ pool *pgxpool.Pool }

func NewStatsRepo(pool *pgxpool.Pool) *statsRepo {
	return &statsRepo{pool: pool}
}

func (r *statsRepo) AddProfileViews(ctx context.Context, tx repository.Tx, userID string, delta int64) error {
	const q = `
INSERT INTO profile_stats (user_id, views)
VALUES ($1,$2)
ON CONFLICT (user_id) DO UPDATE SET views = profile_stats.views + $2;`
	if _, err := execSQL(ctx, r.pool, tx, q, userID, delta); err != nil {
		return mapExecErr(err)
	}
	return nil
}

func (r *statsRepo) AddLinkClicks(ctx context.Context, tx repository.Tx, linkID string, delta int64) error {
	const q = `
INSERT INTO link_stats (link_id, clicks)
VALUES ($1,$2)
ON CONFLICT (link_id) DO UPDATE SET clicks = link_stats.clicks + $2;`
	if _, err := execSQL(ctx, r.pool, tx, q, linkID, delta); err != nil {
		return mapExecErr(err)
	}
	return nil
}

func (r *statsRepo) ProfileStats(ctx context.Context, tx repository.Tx, userID string) (*model.ProfileStats, error) {
	out := &model.ProfileStats{UserID: userID}

	row, err := pickRow(ctx, r.pool, tx, `SELECT COALESCE(MAX(views),0) FROM profile_stats WHERE user_id=$1;`, userID)
	if err != nil {
		return nil, err
	}
	if err := row.Scan(&out.Views); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}

	const q = `
SELECT l.id, l.title, COALESCE(s.clicks, 0)
  FROM links l
  LEFT JOIN link_stats s ON s.link_id = l.id
 WHERE l.user_id = $1
 ORDER BY l.position ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, mapExecErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var lc model.LinkClicks
		if err := rows.Scan(&lc.LinkID, &lc.Title, &lc.Clicks); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out.LinkClicks = append(out.LinkClicks, lc)
	}
	return out, nil
}
