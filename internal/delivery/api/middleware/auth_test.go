package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cadastre/config"
	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/infra/auth"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthUC struct {
	usecase.AuthUsecase

	permissions []string
	err         error
	calls       int
}

func (f *fakeAuthUC) PermissionNames(_ context.Context, _ uuid.UUID) ([]string, error) {
	f.calls++

	return f.permissions, f.err
}

func newTestAuthMiddleware(t *testing.T, authUC usecase.AuthUsecase) *AuthMiddleware {
	t.Helper()

	tokenSvc, err := auth.NewJWTService(&config.Config{
		SecretKey: config.SecretKeyConfig{Access: "test-access", Refresh: "test-refresh"},
	})
	require.NoError(t, err)

	return &AuthMiddleware{tokenSvc: tokenSvc, authUC: authUC}
}

func serve(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthenticate(t *testing.T) {
	m := newTestAuthMiddleware(t, &fakeAuthUC{})
	userID := uuid.New()
	access, refresh, err := m.tokenSvc.GenerateTokens(userID, []string{"clerk"})
	require.NoError(t, err)

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		id, _ := GetUserID(c)
		roles, _ := GetRoles(c)
		assert.Equal(t, userID, id)
		assert.Equal(t, []string{"clerk"}, roles)
		assert.Equal(t, userID, deliverycontext.ActorFrom(c.Request().Context()))

		return c.NoContent(http.StatusOK)
	}, m.Authenticate)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "access token", header: "Bearer " + access, want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic " + access, want: http.StatusUnauthorized},
		{name: "refresh token", header: "Bearer " + refresh, want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(e, tt.header).Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	authUC := &fakeAuthUC{permissions: []string{entity.PermPropertiesRead}}
	m := newTestAuthMiddleware(t, authUC)

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/protected", ok, m.Authenticate, m.RequirePermission(entity.PermPropertiesWrite))

	clerkToken, _, err := m.tokenSvc.GenerateTokens(uuid.New(), []string{"clerk"})
	require.NoError(t, err)
	adminToken, _, err := m.tokenSvc.GenerateTokens(uuid.New(), []string{constants.DefaultAdminRoleName})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, serve(e, "Bearer "+clerkToken).Code)
	assert.Equal(t, 1, authUC.calls)

	assert.Equal(t, http.StatusOK, serve(e, "Bearer "+adminToken).Code, "admin holds every permission")

	authUC.permissions = append(authUC.permissions, entity.PermPropertiesWrite)
	assert.Equal(t, http.StatusOK, serve(e, "Bearer "+clerkToken).Code)
}

func TestRequirePermission_InactiveAccount(t *testing.T) {
	authUC := &fakeAuthUC{permissions: []string{entity.PermPropertiesWrite}, err: domainerrors.ErrUserInactive}
	m := newTestAuthMiddleware(t, authUC)

	e := echo.New()
	e.GET("/protected", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		m.Authenticate, m.RequirePermission(entity.PermPropertiesWrite))

	for _, roles := range [][]string{{"clerk"}, {constants.DefaultAdminRoleName}} {
		token, _, err := m.tokenSvc.GenerateTokens(uuid.New(), roles)
		require.NoError(t, err)

		rec := serve(e, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, roles)
		assert.Contains(t, rec.Body.String(), "USER_INACTIVE")
	}
}
