package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/domain/service"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func (srv *userService) ListUsers(ctx context.Context, filter repository.UserFilter, page entity.Page) (*entity.PagedResult[entity.User], error) {
	page = page.Normalize()
	users, total, err := srv.userRepo.List(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &entity.PagedResult[entity.User]{Items: users, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "")
	}

	return user, nil
}

// CreateUser hashes the password before opening the transaction (bcrypt is CPU-bound).
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	username, err := requireName(input.Username, "username")
	if err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: hash,
		IsActive:     true,
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		if len(input.RoleIDs) == 0 {
			return nil
		}
		roleIDs, err := srv.checkRoles(ctx, repoFactory.NewRoleRepository(), input.RoleIDs)
		if err != nil {
			return err
		}
		if err := userRepo.ReplaceRoles(ctx, user.ID, roleIDs); err != nil {
			return err
		}

		user, err = userRepo.FindByID(ctx, user.ID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.Any("userID", user.ID), slog.String("username", user.Username))

	return user, nil
}

func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	var newHash string
	if input.Password != nil {
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		newHash = hash
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		var err error
		user, err = userRepo.FindByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "")
		}

		if input.Email != nil {
			user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
		}
		setString(&user.FullName, input.FullName)
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
		if newHash != "" {
			user.PasswordHash = newHash
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		// A password change or deactivation ends every open session.
		if newHash != "" || !user.IsActive {
			return repoFactory.NewSessionRepository().RevokeAllForUser(ctx, user.ID)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

func (srv *userService) ReplaceUserRoles(ctx context.Context, id uuid.UUID, roleIDs []uuid.UUID) (*entity.User, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		if _, err := userRepo.FindByID(ctx, id); err != nil {
			return mapNotFound(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "")
		}

		ids, err := srv.checkRoles(ctx, repoFactory.NewRoleRepository(), roleIDs)
		if err != nil {
			return err
		}
		if err := userRepo.ReplaceRoles(ctx, id, ids); err != nil {
			return err
		}

		user, err = userRepo.FindByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to replace user roles")
	}

	srv.log(ctx).Info("User roles replaced", slog.Any("userID", id), slog.Any("roles", user.RoleNames()))

	return user, nil
}

// checkRoles de-duplicates roleIDs and fails when any of them does not exist.
func (srv *userService) checkRoles(ctx context.Context, roleRepo repository.RoleRepository, roleIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := uniqueUUIDs(roleIDs)
	if len(ids) == 0 {
		return ids, nil
	}

	roles, err := roleRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(ids) {
		return nil, domainerrors.ErrRoleNotFound.WithDetails("one or more roles do not exist")
	}

	return ids, nil
}
