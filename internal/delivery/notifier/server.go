// Package notifier is the live update service: it receives property events
// pushed by Pub/Sub and relays them to connected websocket clients.
package notifier

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"cadastre/config"
	"cadastre/internal/delivery"
	"cadastre/internal/delivery/middleware"
	"cadastre/internal/delivery/notifier/handler"
	"cadastre/internal/delivery/notifier/hub"
	"cadastre/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPort = 8081

type notifierServer struct {
	port   int
	logger *slog.Logger
	hub    *hub.Hub
	server *echo.Echo
}

// ServerParams holds dependencies for the notifier server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	Hub         *hub.Hub
	PushHandler *handler.PushHandler
	WSHandler   *handler.WSHandler
}

// NewServer creates the notifier HTTP server
func NewServer(params ServerParams) (delivery.Delivery, error) {
	e := NewEcho(params.Cfg, params.Logger, params.PushHandler, params.WSHandler)

	port := defaultPort
	if params.Cfg.Notifier != nil && params.Cfg.Notifier.Port > 0 {
		port = params.Cfg.Notifier.Port
	}

	srv := &notifierServer{
		port:   port,
		logger: params.Logger,
		hub:    params.Hub,
		server: e,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho builds the notifier routes.
func NewEcho(cfg *config.Config, logger *slog.Logger, push *handler.PushHandler, ws *handler.WSHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// 1. Recover middleware first (to catch panics early)
	e.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(logger)
	e.Use(requestIDMiddleware.Process)

	// 3. Logger middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(logger, cfg)
	e.Use(loggerMiddleware.Handle)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Pub/Sub push endpoint
	e.POST("/push", push.HandlePush)

	// Staff websocket sessions
	e.GET("/ws", ws.Serve)

	return e
}

// Serve starts the notifier HTTP server
func (s *notifierServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.port))
	s.logger.Info("Starting notifier HTTP server", slog.String("host_port", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

// stop closes every websocket session, then shuts down the server
func (s *notifierServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down notifier HTTP server", slog.Int("clients", s.hub.Len()))
	s.hub.Close()

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
