// Package context carries request-scoped values (request id, acting user,
// scoped logger) from the delivery layer down to the services.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyActorID   ContextKey = "actor_id"
	KeyLogger    ContextKey = "logger"

	HeaderXRequestID = echo.HeaderXRequestID
)

// GetRequestID returns the id assigned by the request id middleware, or a
// fresh one when the middleware did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFrom returns "" outside an HTTP request.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

// WithActor records the authenticated user performing the request.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, KeyActorID, userID)
}

// ActorFrom returns the authenticated user, or uuid.Nil for anonymous and
// background work such as the seed command.
func ActorFrom(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(KeyActorID).(uuid.UUID)

	return id
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// LoggerFrom returns the request-scoped logger, falling back to fallback.
func LoggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
