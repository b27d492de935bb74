package usecase

import (
	"context"
	"time"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ ContentUseCase = (*contentUC)(nil)

// ContentUseCase covers the owner dashboard's CRUD over page sections.
// Every mutation of an existing row checks ownership first; a row belonging
// to another user answers not-found, same as a row that does not exist.
type ContentUseCase interface {
	AddLink(ctx context.Context, userID string, kind model.LinkKind, title, url string, position int) (*model.Link, error)
	UpdateLink(ctx context.Context, userID, linkID, title, url string, position int) (*model.Link, error)
	DeleteLink(ctx context.Context, userID, linkID string) error
	ListLinks(ctx context.Context, userID string) ([]*model.Link, error)

	AddProject(ctx context.Context, userID, title, description, repoURL, liveURL string, position int) (*model.Project, error)
	UpdateProject(ctx context.Context, userID, projectID, title, description, repoURL, liveURL string, position int) (*model.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
	ListProjects(ctx context.Context, userID string) ([]*model.Project, error)

	AddExperience(ctx context.Context, userID, role, company, period, description string, position int) (*model.Experience, error)
	UpdateExperience(ctx context.Context, userID, expID, role, company, period, description string, position int) (*model.Experience, error)
	DeleteExperience(ctx context.Context, userID, expID string) error
	ListExperiences(ctx context.Context, userID string) ([]*model.Experience, error)
}

type contentUC struct {
	links       repository.LinkRepository
	projects    repository.ProjectRepository
	experiences repository.ExperienceRepository
}

func NewContentUseCase(links repository.LinkRepository, projects repository.ProjectRepository, experiences repository.ExperienceRepository) *contentUC {
	return &contentUC{links: links, projects: projects, experiences: experiences}
}

func (u *contentUC) AddLink(ctx context.Context, userID string, kind model.LinkKind, title, url string, position int) (*model.Link, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	l, err := model.NewLink("", userID, kind, title, url, position)
	if err != nil {
		return nil, err
	}
	if err := u.links.Save(ctx, nil, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ownedLink fetches a link and hides it from non-owners.
func (u *contentUC) ownedLink(ctx context.Context, userID, linkID string) (*model.Link, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	l, err := u.links.FindByID(ctx, nil, linkID)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (u *contentUC) UpdateLink(ctx context.Context, userID, linkID, title, url string, position int) (*model.Link, error) {
	l, err := u.ownedLink(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}
	if title == "" || url == "" {
		return nil, domain.ErrInvalidArgument
	}
	l.Title = title
	l.URL = url
	l.Position = position
	l.UpdatedAt = time.Now()
	if err := u.links.Save(ctx, nil, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (u *contentUC) DeleteLink(ctx context.Context, userID, linkID string) error {
	l, err := u.ownedLink(ctx, userID, linkID)
	if err != nil {
		return err
	}
	return u.links.Delete(ctx, nil, l.ID)
}

func (u *contentUC) ListLinks(ctx context.Context, userID string) ([]*model.Link, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.links.ListByUser(ctx, nil, userID)
}

func (u *contentUC) AddProject(ctx context.Context, userID, title, description, repoURL, liveURL string, position int) (*model.Project, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	p, err := model.NewProject("", userID, title, description, repoURL, liveURL, position)
	if err != nil {
		return nil, err
	}
	if err := u.projects.Save(ctx, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *contentUC) ownedProject(ctx context.Context, userID, projectID string) (*model.Project, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	p, err := u.projects.FindByID(ctx, nil, projectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (u *contentUC) UpdateProject(ctx context.Context, userID, projectID, title, description, repoURL, liveURL string, position int) (*model.Project, error) {
	p, err := u.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, domain.ErrInvalidArgument
	}
	p.Title = title
	p.Description = description
	p.RepoURL = repoURL
	p.LiveURL = liveURL
	p.Position = position
	p.UpdatedAt = time.Now()
	if err := u.projects.Save(ctx, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *contentUC) DeleteProject(ctx context.Context, userID, projectID string) error {
	p, err := u.ownedProject(ctx, userID, projectID)
	if err != nil {
		return err
	}
	return u.projects.Delete(ctx, nil, p.ID)
}

func (u *contentUC) ListProjects(ctx context.Context, userID string) ([]*model.Project, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.projects.ListByUser(ctx, nil, userID)
}

func (u *contentUC) AddExperience(ctx context.Context, userID, role, company, period, description string, position int) (*model.Experience, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	e, err := model.NewExperience("", userID, role, company, period, description, position)
	if err != nil {
		return nil, err
	}
	if err := u.experiences.Save(ctx, nil, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (u *contentUC) ownedExperience(ctx context.Context, userID, expID string) (*model.Experience, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	e, err := u.experiences.FindByID(ctx, nil, expID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (u *contentUC) UpdateExperience(ctx context.Context, userID, expID, role, company, period, description string, position int) (*model.Experience, error) {
	e, err := u.ownedExperience(ctx, userID, expID)
	if err != nil {
		return nil, err
	}
	if role == "" || company == "" {
		return nil, domain.ErrInvalidArgument
	}
	e.Role = role
	e.Company = company
	e.Period = period
	e.Description = description
	e.Position = position
	e.UpdatedAt = time.Now()
	if err := u.experiences.Save(ctx, nil, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (u *contentUC) DeleteExperience(ctx context.Context, userID, expID string) error {
	e, err := u.ownedExperience(ctx, userID, expID)
	if err != nil {
		return err
	}
	return u.experiences.Delete(ctx, nil, e.ID)
}

func (u *contentUC) ListExperiences(ctx context.Context, userID string) ([]*model.Experience, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.experiences.ListByUser(ctx, nil, userID)
}
