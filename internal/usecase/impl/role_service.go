package impl

import (
	"context"
	"log/slog"

	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type roleService struct {
	txManager      repository.TransactionManager
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	logger         *slog.Logger
}

// RoleServiceParams holds dependencies for RoleService, injected by Fx.
type RoleServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	RoleRepo       repository.RoleRepository
	PermissionRepo repository.PermissionRepository
	Logger         *slog.Logger
}

// NewRoleService creates a new role service instance
func NewRoleService(params RoleServiceParams) usecase.RoleUsecase {
	return &roleService{
		txManager:      params.TxManager,
		roleRepo:       params.RoleRepo,
		permissionRepo: params.PermissionRepo,
		logger:         params.Logger,
	}
}

func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func (srv *roleService) ListRoles(ctx context.Context) ([]*entity.Role, error) {
	roles, err := srv.roleRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	return roles, nil
}

func (srv *roleService) GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	role, err := srv.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrRoleNotFound, domainerrors.ErrRoleNotFound, "")
	}

	return role, nil
}

func (srv *roleService) CreateRole(ctx context.Context, input *usecase.NamedInput) (*entity.Role, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	role := &entity.Role{Name: name, Description: input.Description}
	if err := srv.roleRepo.Create(ctx, role); err != nil {
		return nil, errors.Wrap(err, "failed to create role")
	}

	return role, nil
}

func (srv *roleService) UpdateRole(ctx context.Context, id uuid.UUID, input *usecase.UpdateNamedInput) (*entity.Role, error) {
	var role *entity.Role
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.NewRoleRepository()

		var err error
		role, err = roleRepo.FindByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrRoleNotFound, domainerrors.ErrRoleNotFound, "")
		}
		setString(&role.Name, input.Name)
		setString(&role.Description, input.Description)
		if role.Name == "" {
			return validationError("name is required")
		}

		return roleRepo.Update(ctx, role)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update role")
	}

	return role, nil
}

func (srv *roleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.NewRoleRepository()
		if _, err := roleRepo.FindByID(ctx, id); err != nil {
			return mapNotFound(err, repository.ErrRoleNotFound, domainerrors.ErrRoleNotFound, "")
		}

		users, err := roleRepo.CountUsers(ctx, id)
		if err != nil {
			return err
		}
		if users > 0 {
			return domainerrors.ErrRoleInUse
		}

		return roleRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete role")
	}

	srv.log(ctx).Info("Role deleted", slog.Any("roleID", id))

	return nil
}

func (srv *roleService) ReplaceRolePermissions(ctx context.Context, id uuid.UUID, permissionIDs []uuid.UUID) (*entity.Role, error) {
	var role *entity.Role
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roleRepo := repoFactory.NewRoleRepository()
		if _, err := roleRepo.FindByID(ctx, id); err != nil {
			return mapNotFound(err, repository.ErrRoleNotFound, domainerrors.ErrRoleNotFound, "")
		}

		ids := uniqueUUIDs(permissionIDs)
		if len(ids) > 0 {
			found, err := repoFactory.NewPermissionRepository().FindByIDs(ctx, ids)
			if err != nil {
				return err
			}
			if len(found) != len(ids) {
				return domainerrors.ErrPermissionNotFound.WithDetails("one or more permissions do not exist")
			}
		}

		if err := roleRepo.ReplacePermissions(ctx, id, ids); err != nil {
			return err
		}

		var err error
		role, err = roleRepo.FindByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to replace role permissions")
	}

	return role, nil
}

func (srv *roleService) ListPermissions(ctx context.Context) ([]*entity.Permission, error) {
	permissions, err := srv.permissionRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list permissions")
	}

	return permissions, nil
}

func (srv *roleService) GetPermission(ctx context.Context, id uuid.UUID) (*entity.Permission, error) {
	permission, err := srv.permissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPermissionNotFound, domainerrors.ErrPermissionNotFound, "")
	}

	return permission, nil
}

func (srv *roleService) CreatePermission(ctx context.Context, input *usecase.NamedInput) (*entity.Permission, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	permission := &entity.Permission{Name: name, Description: input.Description}
	if err := srv.permissionRepo.Create(ctx, permission); err != nil {
		return nil, errors.Wrap(err, "failed to create permission")
	}

	return permission, nil
}

func (srv *roleService) UpdatePermission(ctx context.Context, id uuid.UUID, input *usecase.UpdateNamedInput) (*entity.Permission, error) {
	var permission *entity.Permission
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		permissionRepo := repoFactory.NewPermissionRepository()

		var err error
		permission, err = permissionRepo.FindByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrPermissionNotFound, domainerrors.ErrPermissionNotFound, "")
		}
		setString(&permission.Name, input.Name)
		setString(&permission.Description, input.Description)
		if permission.Name == "" {
			return validationError("name is required")
		}

		return permissionRepo.Update(ctx, permission)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update permission")
	}

	return permission, nil
}

func (srv *roleService) DeletePermission(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		permissionRepo := repoFactory.NewPermissionRepository()
		if _, err := permissionRepo.FindByID(ctx, id); err != nil {
			return mapNotFound(err, repository.ErrPermissionNotFound, domainerrors.ErrPermissionNotFound, "")
		}

		roles, err := permissionRepo.CountRoles(ctx, id)
		if err != nil {
			return err
		}
		if roles > 0 {
			return domainerrors.ErrPermissionInUse
		}

		return permissionRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete permission")
	}

	return nil
}
