// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserFilter narrows a user listing.
type UserFilter struct {
	Search   string
	IsActive *bool
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, with roles loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByLogin retrieves a user whose username or email equals login, with roles loaded.
	FindByLogin(ctx context.Context, login string) (*entity.User, error)

	List(ctx context.Context, filter UserFilter, page entity.Page) ([]*entity.User, int64, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// ReplaceRoles swaps the user's role assignments for roleIDs.
	ReplaceRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error

	// FindPermissionNames returns the distinct permission names granted through the user's roles.
	FindPermissionNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}
