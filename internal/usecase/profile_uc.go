package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/adapter"
	"devlink-platform/internal/domain/ports/repository"
	"devlink-platform/internal/infra/metrics"
)

// Compile-time check
var _ ProfileUseCase = (*profileUC)(nil)

// PublicProfile is the assembled read model served on the public page.
type PublicProfile struct {
	Username    string
	Profile     *model.Profile
	Links       []*model.Link
	Projects    []*model.Project
	Experiences []*model.Experience
}

// ProfileUpdate carries the owner-editable fields. The visibility flag is
// not among them: it cannot be set through a dashboard mutation.
type ProfileUpdate struct {
	DisplayName    string
	Bio            string
	AvatarURL      string
	Theme          string
	TechStack      []string
	GithubUsername string
}

type ProfileUseCase interface {
	GetOwn(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, upd ProfileUpdate) (*model.Profile, error)
	// GetPublic serves the anonymous profile page. A username that is
	// unknown, or whose profile has not been activated, answers with the
	// same not-found error, so outsiders cannot probe which usernames exist.
	GetPublic(ctx context.Context, username string) (*PublicProfile, error)
	// RecordLinkClick counts a click on a link of a public profile and
	// returns the link's target URL for the redirect. Links of hidden
	// profiles, and links belonging to another user, do not count.
	RecordLinkClick(ctx context.Context, username, linkID string) (string, error)
}

type profileUC struct {
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	links       repository.LinkRepository
	projects    repository.ProjectRepository
	experiences repository.ExperienceRepository
	counter     adapter.HitCounter
	log         *zerolog.Logger
}

func NewProfileUseCase(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	links repository.LinkRepository,
	projects repository.ProjectRepository,
	experiences repository.ExperienceRepository,
	counter adapter.HitCounter,
	log *zerolog.Logger,
) *profileUC {
	l := log.With().Str("uc", "profile").Logger()
	return &profileUC{
		users:       users,
		profiles:    profiles,
		links:       links,
		projects:    projects,
		experiences: experiences,
		counter:     counter,
		log:         &l,
	}
}

func (u *profileUC) GetOwn(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.profiles.FindByUserID(ctx, nil, userID)
}

func (u *profileUC) Update(ctx context.Context, userID string, upd ProfileUpdate) (*model.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	prof, err := u.profiles.FindByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	prof.DisplayName = upd.DisplayName
	prof.Bio = upd.Bio
	prof.AvatarURL = upd.AvatarURL
	if upd.Theme != "" {
		prof.Theme = upd.Theme
	}
	prof.TechStack = upd.TechStack
	prof.GithubUsername = upd.GithubUsername
	if err := u.profiles.Save(ctx, nil, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// visibleOwner resolves a username to its owner only when the profile is
// publicly active. Every failure mode collapses to ErrNotFound.
func (u *profileUC) visibleOwner(ctx context.Context, username string) (*model.User, *model.Profile, error) {
	usr, err := u.users.FindByUsername(ctx, nil, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.IncProfileLookup("hidden")
		}
		return nil, nil, err
	}
	prof, err := u.profiles.FindByUserID(ctx, nil, usr.ID)
	if err != nil {
		return nil, nil, err
	}
	if !prof.IsPublicLinkActive {
		metrics.IncProfileLookup("hidden")
		return nil, nil, domain.ErrNotFound
	}
	return usr, prof, nil
}

func (u *profileUC) GetPublic(ctx context.Context, username string) (*PublicProfile, error) {
	usr, prof, err := u.visibleOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	links, err := u.links.ListByUser(ctx, nil, usr.ID)
	if err != nil {
		return nil, err
	}
	projects, err := u.projects.ListByUser(ctx, nil, usr.ID)
	if err != nil {
		return nil, err
	}
	experiences, err := u.experiences.ListByUser(ctx, nil, usr.ID)
	if err != nil {
		return nil, err
	}

	metrics.IncProfileLookup("ok")
	if err := u.counter.IncrProfileView(ctx, usr.ID); err != nil {
		// Analytics never blocks the page.
		u.log.Warn().Err(err).Str("username", username).Msg("view counter failed")
	}

	return &PublicProfile{
		Username:    usr.Username,
		Profile:     prof,
		Links:       links,
		Projects:    projects,
		Experiences: experiences,
	}, nil
}

func (u *profileUC) RecordLinkClick(ctx context.Context, username, linkID string) (string, error) {
	usr, _, err := u.visibleOwner(ctx, username)
	if err != nil {
		return "", err
	}
	link, err := u.links.FindByID(ctx, nil, linkID)
	if err != nil {
		return "", err
	}
	if link.UserID != usr.ID {
		return "", domain.ErrNotFound
	}
	if err := u.counter.IncrLinkClick(ctx, link.ID); err != nil {
		return "", err
	}
	return link.URL, nil
}
