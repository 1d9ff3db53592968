package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"cadastre/internal/delivery/api/response"
	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/service"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	contextKeyUserID = "userID"
	contextKeyRoles  = "roles"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	AuthUC       usecase.AuthUsecase
	Logger       *slog.Logger
}

// AuthMiddleware authenticates bearer access tokens and gates routes by permission.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authUC   usecase.AuthUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenService,
		authUC:   params.AuthUC,
		logger:   params.Logger,
	}
}

// Authenticate validates the access token and stores the user id and roles on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil || claims.Type != service.TokenTypeAccess || claims.UserID == uuid.Nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyRoles, claims.Roles)

		ctx := deliverycontext.WithActor(c.Request().Context(), claims.UserID)
		if logger := deliverycontext.LoggerFrom(ctx, nil); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", claims.UserID.String())))
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequirePermission lets the request through when one of the user's roles grants
// the permission. The admin role passes every check; disabled accounts pass none.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := GetUserID(c)
			if !ok {
				return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
			}

			granted, err := m.authUC.PermissionNames(c.Request().Context(), userID)
			if err != nil {
				return response.HandleAppError(c, err)
			}
			if roles, _ := GetRoles(c); slices.Contains(roles, constants.DefaultAdminRoleName) {
				return next(c)
			}
			if !slices.Contains(granted, permission) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+permission+"'")
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user id.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetRoles returns the role names carried by the access token.
func GetRoles(c echo.Context) ([]string, bool) {
	roles, ok := c.Get(contextKeyRoles).([]string)

	return roles, ok
}
