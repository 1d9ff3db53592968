package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cadastre/config"
	deliverycontext "cadastre/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	var seen string
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		seen = deliverycontext.RequestIDFrom(c.Request().Context())
		assert.Equal(t, seen, deliverycontext.GetRequestID(c))

		return c.NoContent(http.StatusOK)
	}, m.Process)

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "caller id kept", header: "front-office:42", keep: true},
		{name: "missing", header: ""},
		{name: "bad characters", header: "a b<script>"},
		{name: "too long", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			if tt.keep {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
				assert.Len(t, seen, 36)
			}
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	newEcho := func(debug bool) (*echo.Echo, *bytes.Buffer) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg := &config.Config{}
		cfg.Env.Debug = debug

		e := echo.New()
		e.Use(NewRequestIDMiddleware(logger).Process, NewLoggerMiddleware(logger, cfg).Handle)
		e.GET("/ok/:id", func(c echo.Context) error { return c.String(http.StatusOK, "fine") })
		e.GET("/boom", func(c echo.Context) error { return c.NoContent(http.StatusInternalServerError) })

		return e, &buf
	}

	t.Run("quiet outside debug", func(t *testing.T) {
		e, buf := newEcho(false)
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok/1", nil))
		assert.Empty(t, buf.String())
	})

	t.Run("server errors always logged", func(t *testing.T) {
		e, buf := newEcho(false)
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "ERROR", line["level"])
		assert.EqualValues(t, 500, line["status"])
		assert.NotEmpty(t, line["request_id"])
	})

	t.Run("debug logs route", func(t *testing.T) {
		e, buf := newEcho(true)
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok/7?page=2", nil))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "INFO", line["level"])
		assert.Equal(t, "/ok/:id", line["route"])
		assert.Equal(t, "/ok/7", line["uri"])
		assert.Equal(t, "page=2", line["query"])
	})
}
