package usecase

import (
	"context"

	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateUserInput defines the data required to create a staff account.
type CreateUserInput struct {
	Username string      `json:"username" validate:"required,min=3,max=64"`
	Email    string      `json:"email" validate:"required,email"`
	FullName string      `json:"full_name" validate:"max=255"`
	Password string      `json:"password" validate:"required"`
	IsActive *bool       `json:"is_active,omitempty"`
	RoleIDs  []uuid.UUID `json:"role_ids,omitempty"`
}

// UpdateUserInput changes only the fields that are present.
type UpdateUserInput struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ReplaceIDsInput replaces a whole set of links, e.g. a user's roles.
type ReplaceIDsInput struct {
	IDs []uuid.UUID `json:"ids"`
}

// UserUsecase defines staff account administration.
type UserUsecase interface {
	ListUsers(ctx context.Context, filter repository.UserFilter, page entity.Page) (*entity.PagedResult[entity.User], error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	ReplaceUserRoles(ctx context.Context, id uuid.UUID, roleIDs []uuid.UUID) (*entity.User, error)
}
