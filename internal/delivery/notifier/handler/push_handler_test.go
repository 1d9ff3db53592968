package handler

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cadastre/internal/delivery/notifier/hub"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

const approvedEvent = `{"type":"property.approved","property_id":"7f1b3c7e-5a4f-4c59-9f0e-1b2a3c4d5e6f"}`

func newVerifyingHandler(validate TokenValidator) (*PushHandler, *hub.Hub) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := hub.NewHub(hub.HubParams{Logger: logger})

	return &PushHandler{
		verifyPushAuth: true,
		audience:       "https://notifier.example.org/push",
		validate:       validate,
		hub:            h,
		logger:         logger,
	}, h
}

func servePush(t *testing.T, handler *PushHandler, authHeader string) int {
	t.Helper()

	body := `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte(approvedEvent)) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, handler.HandlePush(echo.New().NewContext(req, rec)))

	return rec.Code
}

func TestPushHandler_VerifiesToken(t *testing.T) {
	var gotAudience string
	handler, h := newVerifyingHandler(func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		gotAudience = audience
		if token != "good" {
			return nil, errors.New("bad signature")
		}

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	})
	client := h.Register(uuid.New())

	assert.Equal(t, http.StatusUnauthorized, servePush(t, handler, ""))
	assert.Equal(t, http.StatusUnauthorized, servePush(t, handler, "Basic good"))
	assert.Equal(t, http.StatusUnauthorized, servePush(t, handler, "Bearer forged"))

	assert.Equal(t, http.StatusOK, servePush(t, handler, "Bearer good"))
	assert.Equal(t, "https://notifier.example.org/push", gotAudience)
	assert.JSONEq(t, approvedEvent, string(<-client.Send()))
}

func TestPushHandler_RejectsForeignIssuer(t *testing.T) {
	handler, _ := newVerifyingHandler(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Issuer: "https://evil.example.org"}, nil
	})

	assert.Equal(t, http.StatusUnauthorized, servePush(t, handler, "Bearer good"))
}

func TestPushHandler_RejectsUnverifiedEmail(t *testing.T) {
	handler, _ := newVerifyingHandler(func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Issuer: "accounts.google.com", Claims: map[string]any{"email_verified": false}}, nil
	})

	assert.Equal(t, http.StatusUnauthorized, servePush(t, handler, "Bearer good"))
}
