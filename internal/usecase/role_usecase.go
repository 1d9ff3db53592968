package usecase

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
)

// NamedInput creates a record identified by a unique name, such as a role or a permission.
type NamedInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateNamedInput changes only the fields that are present.
type UpdateNamedInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// RoleUsecase defines role and permission administration.
type RoleUsecase interface {
	ListRoles(ctx context.Context) ([]*entity.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	CreateRole(ctx context.Context, input *NamedInput) (*entity.Role, error)
	UpdateRole(ctx context.Context, id uuid.UUID, input *UpdateNamedInput) (*entity.Role, error)
	// DeleteRole fails with ROLE_IN_USE while any user holds the role.
	DeleteRole(ctx context.Context, id uuid.UUID) error
	ReplaceRolePermissions(ctx context.Context, id uuid.UUID, permissionIDs []uuid.UUID) (*entity.Role, error)

	ListPermissions(ctx context.Context) ([]*entity.Permission, error)
	GetPermission(ctx context.Context, id uuid.UUID) (*entity.Permission, error)
	CreatePermission(ctx context.Context, input *NamedInput) (*entity.Permission, error)
	UpdatePermission(ctx context.Context, id uuid.UUID, input *UpdateNamedInput) (*entity.Permission, error)
	// DeletePermission fails with PERMISSION_IN_USE while any role grants it.
	DeletePermission(ctx context.Context, id uuid.UUID) error
}
