package repository

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for role and permission persistence.
var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrPermissionNotFound = errors.New("permission not found")
)

// RoleRepository persists roles and their permission assignments.
type RoleRepository interface {
	// FindByID retrieves a role with its permissions loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	// FindByIDs returns the roles found among ids; missing ids are silently skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	// Delete removes the role and its permission links.
	Delete(ctx context.Context, id uuid.UUID) error
	// CountUsers returns how many users hold the role.
	CountUsers(ctx context.Context, id uuid.UUID) (int64, error)
	ReplacePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error
}

// PermissionRepository persists permissions.
type PermissionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Permission, error)
	FindByName(ctx context.Context, name string) (*entity.Permission, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Permission, error)
	List(ctx context.Context) ([]*entity.Permission, error)
	Create(ctx context.Context, permission *entity.Permission) error
	Update(ctx context.Context, permission *entity.Permission) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountRoles returns how many roles reference the permission.
	CountRoles(ctx context.Context, id uuid.UUID) (int64, error)
}
