package usecase

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"devlink-platform/internal/domain"
	"devlink-platform/internal/domain/model"
	"devlink-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	// Register claims a username for the identity-provider subject and
	// creates the backing (hidden) profile in the same transaction.
	Register(ctx context.Context, subjectID, email, username string) (*model.User, error)
	// Resolve maps an identity-provider subject to the local account.
	Resolve(ctx context.Context, subjectID string) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type userUC struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, profiles repository.ProfileRepository, tm repository.TransactionManager, log *zerolog.Logger) *userUC {
	l := log.With().Str("uc", "user").Logger()
	return &userUC{users: users, profiles: profiles, tm: tm, log: &l}
}

func (u *userUC) Register(ctx context.Context, subjectID, email, username string) (*model.User, error) {
	if existing, err := u.users.FindBySubject(ctx, nil, subjectID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := u.users.FindByUsername(ctx, nil, username); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	usr, err := model.NewUser("", subjectID, email, username)
	if err != nil {
		return nil, err
	}
	prof, err := model.NewProfile(usr.ID)
	if err != nil {
		return nil, err
	}
	prof.DisplayName = username

	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.users.Save(ctx, tx, usr); err != nil {
			return err
		}
		return u.profiles.Save(ctx, tx, prof)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("username", username).Msg("user registered")
	return usr, nil
}

func (u *userUC) Resolve(ctx context.Context, subjectID string) (*model.User, error) {
	usr, err := u.users.FindBySubject(ctx, nil, subjectID)
	if err != nil {
		return nil, err
	}
	usr.Touch()
	// Activity tracking is best effort; the lookup result stands either way.
	_ = u.users.Save(ctx, nil, usr)
	return usr, nil
}

func (u *userUC) Get(ctx context.Context, id string) (*model.User, error) {
	return u.users.FindByID(ctx, nil, id)
}

func (u *userUC) CountUsers(ctx context.Context) (int, error) {
	return u.users.CountUsers(ctx, nil)
}
