// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginInput defines the data required for a staff member to log in.
// Login is either the username or the email address.
type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput carries the refresh token to rotate.
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutInput carries the refresh token whose session ends.
type LogoutInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthOutput returns the generated tokens after a successful login or refresh.
type AuthOutput struct {
	entity.TokenPair
	User *entity.User `json:"user"`
}

// MeOutput is the current user with the permissions granted through their roles.
type MeOutput struct {
	User        *entity.User `json:"user"`
	Roles       []string     `json:"roles"`
	Permissions []string     `json:"permissions"`
}

// AuthUsecase defines staff authentication.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*AuthOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
	Me(ctx context.Context, userID uuid.UUID) (*MeOutput, error)

	// PermissionNames returns the distinct permissions granted to the user through their roles.
	// Inactive or deleted users get ErrUserInactive.
	PermissionNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}
