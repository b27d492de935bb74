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

var (
	_ repository.LinkRepository       = (*linkRepo)(nil)
	_ repository.ProjectRepository    = (*projectRepo)(nil)
	_ repository.ExperienceRepository = (*experienceRepo)(nil)
)

func mapExecErr(err error) error {
	if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
		return err
	}
	return domain.ErrOperationFailed
}

// -----------------------------
// Links
// -----------------------------

type linkRepo struct{ pool *pgxpool.Pool }

func NewLinkRepo(pool *pgxpool.Pool) *linkRepo {
	return &linkRepo{pool: pool}
}

const linkColumns = `id, user_id, kind, title, url, position, created_at, updated_at`

func (r *linkRepo) Save(ctx context.Context, tx repository.Tx, l *model.Link) error {
	const q = `
INSERT INTO links (id, user_id, kind, title, url, position, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
ON CONFLICT (id) DO UPDATE SET kind=$3, title=$4, url=$5, position=$6, updated_at=NOW();`
	if _, err := execSQL(ctx, r.pool, tx, q, l.ID, l.UserID, l.Kind, l.Title, l.URL, l.Position, l.CreatedAt); err != nil {
		return mapExecErr(err)
	}
	return nil
}

func (r *linkRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Link, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+linkColumns+` FROM links WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	l := &model.Link{}
	if err := row.Scan(&l.ID, &l.UserID, &l.Kind, &l.Title, &l.URL, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return l, nil
}

func (r *linkRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Link, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT `+linkColumns+` FROM links WHERE user_id=$1 ORDER BY position ASC, created_at ASC;`, userID)
	if err != nil {
		return nil, mapExecErr(err)
	}
	defer rows.Close()

	var out []*model.Link
	for rows.Next() {
		l := new(model.Link)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Kind, &l.Title, &l.URL, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *linkRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	cmd, err := execSQL(ctx, r.pool, tx, `DELETE FROM links WHERE id=$1;`, id)
	if err != nil {
		return mapExecErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// -----------------------------
// Projects
// -----------------------------

type projectRepo struct{ pool *pgxpool.Pool }

func NewProjectRepo(pool *pgxpool.Pool) *projectRepo {
	return &projectRepo{pool: pool}
}

const projectColumns = `id, user_id, title, description, repo_url, live_url, position, created_at, updated_at`

func (r *projectRepo) Save(ctx context.Context, tx repository.Tx, p *model.Project) error {
	const q = `
INSERT INTO projects (id, user_id, title, description, repo_url, live_url, position, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
ON CONFLICT (id) DO UPDATE SET title=$3, description=$4, repo_url=$5, live_url=$6, position=$7, updated_at=NOW();`
	if _, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.Title, p.Description, p.RepoURL, p.LiveURL, p.Position, p.CreatedAt); err != nil {
		return mapExecErr(err)
	}
	return nil
}

func (r *projectRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Project, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+projectColumns+` FROM projects WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	p := &model.Project{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.RepoURL, &p.LiveURL, &p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *projectRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Project, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT `+projectColumns+` FROM projects WHERE user_id=$1 ORDER BY position ASC, created_at ASC;`, userID)
	if err != nil {
		return nil, mapExecErr(err)
	}
	defer rows.Close()

	var out []*model.Project
	for rows.Next() {
		p := new(model.Project)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.RepoURL, &p.LiveURL, &p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *projectRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	cmd, err := execSQL(ctx, r.pool, tx, `DELETE FROM projects WHERE id=$1;`, id)
	if err != nil {
		return mapExecErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// -----------------------------
// Experiences
// -----------------------------

type experienceRepo struct{ pool *pgxpool.Pool }

func NewExperienceRepo(pool *pgxpool.Pool) *experienceRepo {
	return &experienceRepo{pool: pool}
}

const experienceColumns = `id, user_id, role, company, period, description, position, created_at, updated_at`

func (r *experienceRepo) Save(ctx context.Context, tx repository.Tx, e *model.Experience) error {
	const q = `
INSERT INTO experiences (id, user_id, role, company, period, description, position, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
ON CONFLICT (id) DO UPDATE SET role=$3, company=$4, period=$5, description=$6, position=$7, updated_at=NOW();`
	if _, err := execSQL(ctx, r.pool, tx, q, e.ID, e.UserID, e.Role, e.Company, e.Period, e.Description, e.Position, e.CreatedAt); err != nil {
		return mapExecErr(err)
	}
	return nil
}

func (r *experienceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Experience, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT `+experienceColumns+` FROM experiences WHERE id=$1;`, id)
	if err != nil {
		return nil, err
	}
	e := &model.Experience{}
	if err := row.Scan(&e.ID, &e.UserID, &e.Role, &e.Company, &e.Period, &e.Description, &e.Position, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return e, nil
}

func (r *experienceRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Experience, error) {
	rows, err := queryRows(ctx, r.pool, tx, `SELECT `+experienceColumns+` FROM experiences WHERE user_id=$1 ORDER BY position ASC, created_at ASC;`, userID)
	if err != nil {
		return nil, mapExecErr(err)
	}
	defer rows.Close()

	var out []*model.Experience
	for rows.Next() {
		e := new(model.Experience)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Role, &e.Company, &e.Period, &e.Description, &e.Position, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *experienceRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	cmd, err := execSQL(ctx, r.pool, tx, `DELETE FROM experiences WHERE id=$1;`, id)
	if err != nil {
		return mapExecErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
