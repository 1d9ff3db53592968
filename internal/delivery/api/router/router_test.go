package router

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	NewRouter(RouterParams{}).RegisterRoutes(e)

	routes := map[string]bool{}
	for _, route := range e.Routes() {
		routes[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"POST /auth/login",
		"POST /auth/logout",
		"GET /api/v1/me",
		"PUT /api/v1/properties/:id",
		"PATCH /api/v1/properties/:id",
		"PATCH /api/v1/payments/:id",
		"PATCH /api/v1/policies/commission/:id",
		"POST /api/v1/properties/verify-certificate",
		"POST /api/v1/properties/:id/approve",
		"PUT /api/v1/properties/:id/photo",
		"POST /api/v1/payment-details",
		"GET /api/v1/reports/collections",
	} {
		assert.True(t, routes[want], want)
	}

	assert.False(t, routes[http.MethodPatch+" /api/v1/properties/:id/photo"], "photo upload replaces the object")
}
