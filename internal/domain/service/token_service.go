package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims identifies the staff member and the roles held when the token was issued.
type Claims struct {
	UserID uuid.UUID
	Roles  []string
	Type   string
	jwt.RegisteredClaims
}

// TokenService issues and checks the signed access/refresh token pair.
type TokenService interface {
	GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks signature and expiry; the caller checks Type.
	ValidateToken(tokenString string) (*Claims, error)

	// HashToken returns the digest stored in place of a raw refresh token.
	HashToken(token string) string

	GetAccessTokenDuration() time.Duration
	GetRefreshTokenDuration() time.Duration
}
