package impl

import (
	"context"
	"log/slog"
	"strings"

	"cadastre/config"
	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/repository"
	"cadastre/internal/domain/service"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type seedService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	cfg       *config.Config
	logger    *slog.Logger
}

// SeedServiceParams holds dependencies for SeedService, injected by Fx.
type SeedServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSeedService creates a new seed service instance
func NewSeedService(params SeedServiceParams) usecase.SeedUsecase {
	return &seedService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		cfg:       params.Config,
		logger:    params.Logger,
	}
}

func (srv *seedService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// defaultLookups lists the lookup rows a new installation starts with.
func (srv *seedService) defaultLookups() map[entity.LookupKind][]string {
	return map[entity.LookupKind][]string{
		entity.LookupPropertyStatus: {srv.cfg.Billing.PendingStatusName, srv.cfg.Billing.ApprovedStatusName, "Rejected"},
		entity.LookupPaymentStatus:  {constants.PaymentStatusPending, constants.PaymentStatusPartial, constants.PaymentStatusCompleted},
		entity.LookupPaymentMethod:  {"Cash", "Bank transfer", "Mobile money"},
	}
}

func (srv *seedService) Seed(ctx context.Context, input *usecase.SeedInput) (*usecase.SeedResult, error) {
	admin, err := srv.newAdmin(input)
	if err != nil {
		return nil, err
	}

	result := &usecase.SeedResult{}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		permissionIDs, err := srv.seedPermissions(ctx, repoFactory.NewPermissionRepository(), result)
		if err != nil {
			return err
		}

		role, err := srv.seedAdminRole(ctx, repoFactory.NewRoleRepository(), permissionIDs, result)
		if err != nil {
			return err
		}

		if err := srv.seedLookups(ctx, repoFactory.NewLookupRepository(), result); err != nil {
			return err
		}

		if admin == nil {
			return nil
		}

		return srv.seedAdminUser(ctx, repoFactory.NewUserRepository(), admin, role.ID, result)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to seed reference data")
	}

	srv.log(ctx).Info("Seed completed",
		slog.Int("permissions_created", result.PermissionsCreated),
		slog.Int("lookups_created", result.LookupsCreated),
		slog.Bool("admin_role_created", result.AdminRoleCreated),
		slog.Bool("admin_user_created", result.AdminUserCreated),
	)

	return result, nil
}

// newAdmin hashes the password up front; bcrypt should not run inside the transaction.
func (srv *seedService) newAdmin(input *usecase.SeedInput) (*entity.User, error) {
	username := strings.TrimSpace(input.AdminUsername)
	if username == "" {
		return nil, nil
	}
	email := strings.ToLower(strings.TrimSpace(input.AdminEmail))
	if email == "" {
		return nil, validationError("admin email is required")
	}

	hash, err := srv.hasher.Hash(input.AdminPassword)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		Username:     username,
		Email:        email,
		FullName:     "Administrator",
		PasswordHash: hash,
		IsActive:     true,
	}, nil
}

func (srv *seedService) seedPermissions(ctx context.Context, permissionRepo repository.PermissionRepository, result *usecase.SeedResult) ([]uuid.UUID, error) {
	names := entity.AllPermissions()
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		permission, err := permissionRepo.FindByName(ctx, name)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrPermissionNotFound):
			permission = &entity.Permission{Name: name}
			if err := permissionRepo.Create(ctx, permission); err != nil {
				return nil, errors.Wrapf(err, "failed to create permission %s", name)
			}
			result.PermissionsCreated++
		default:
			return nil, errors.Wrapf(err, "failed to find permission %s", name)
		}
		ids = append(ids, permission.ID)
	}

	return ids, nil
}

// seedAdminRole also grants permissions added since the last run.
func (srv *seedService) seedAdminRole(ctx context.Context, roleRepo repository.RoleRepository, permissionIDs []uuid.UUID, result *usecase.SeedResult) (*entity.Role, error) {
	role, err := roleRepo.FindByName(ctx, constants.DefaultAdminRoleName)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrRoleNotFound):
		role = &entity.Role{Name: constants.DefaultAdminRoleName, Description: "Full access to every endpoint"}
		if err := roleRepo.Create(ctx, role); err != nil {
			return nil, errors.Wrap(err, "failed to create admin role")
		}
		result.AdminRoleCreated = true
	default:
		return nil, errors.Wrap(err, "failed to find admin role")
	}

	if err := roleRepo.ReplacePermissions(ctx, role.ID, permissionIDs); err != nil {
		return nil, errors.Wrap(err, "failed to grant admin permissions")
	}

	return role, nil
}

func (srv *seedService) seedLookups(ctx context.Context, lookupRepo repository.LookupRepository, result *usecase.SeedResult) error {
	for kind, names := range srv.defaultLookups() {
		for _, name := range names {
			_, err := lookupRepo.FindByName(ctx, kind, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrLookupNotFound) {
				return errors.Wrapf(err, "failed to find %s %s", kind, name)
			}
			if err := lookupRepo.Create(ctx, kind, &entity.Lookup{Name: name}); err != nil {
				return errors.Wrapf(err, "failed to create %s %s", kind, name)
			}
			result.LookupsCreated++
		}
	}

	return nil
}

// seedAdminUser leaves an existing account untouched.
func (srv *seedService) seedAdminUser(ctx context.Context, userRepo repository.UserRepository, admin *entity.User, roleID uuid.UUID, result *usecase.SeedResult) error {
	_, err := userRepo.FindByLogin(ctx, admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to find admin user")
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to create admin user")
	}
	if err := userRepo.ReplaceRoles(ctx, admin.ID, []uuid.UUID{roleID}); err != nil {
		return errors.Wrap(err, "failed to assign admin role")
	}
	result.AdminUserCreated = true

	return nil
}
