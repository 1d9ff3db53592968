package repository

import (
	"context"
	"time"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps one row per staff session, keyed by the hash of
// its refresh token. Rotation revokes the old row and creates a new one.
type SessionRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash returns expired sessions too; the caller checks ExpiresAt.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// Revoke returns ErrSessionNotFound when nothing was revoked.
	Revoke(ctx context.Context, tokenHash string) error

	// RevokeAllForUser signs the user out everywhere, e.g. after deactivation
	// or a password change.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error

	// PurgeExpired deletes sessions that expired at or before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
