// Package api is the staff-facing REST delivery of the registry.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"cadastre/config"
	"cadastre/internal/delivery"
	apimiddleware "cadastre/internal/delivery/api/middleware"
	"cadastre/internal/delivery/api/router"
	"cadastre/internal/delivery/api/validator"
	"cadastre/internal/delivery/middleware"
	"cadastre/internal/domain/lifecycle"
	"cadastre/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	r := router.NewRouter(params.RouterParams)
	e := NewEcho(params.Cfg, params.Logger, r.RegisterRoutes)

	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: e,
	}
	params.Lc.Append(fx.Hook{OnStop: srv.stop})

	return srv, nil
}

// NewEcho builds the API engine: panic recovery, request ids and access
// logs first, then CORS, compression and the body limit, then the routes.
func NewEcho(cfg *config.Config, logger *slog.Logger, registerRoutes func(*echo.Echo)) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	e.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	e.Use(echomiddleware.Recover())
	e.Use(middleware.NewRequestIDMiddleware(logger).Process)
	e.Use(middleware.NewLoggerMiddleware(logger, cfg).Handle)

	origins := cfg.HTTP.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID,
		},
		ExposeHeaders: []string{echo.HeaderXRequestID, echo.HeaderContentLength},
	}))
	e.Use(echomiddleware.GzipWithConfig(echomiddleware.GzipConfig{Skipper: skipBinaryRoutes}))
	e.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Validator = validator.New()

	registerRoutes(e)

	return e
}

// Photos and QR codes are already compressed images.
func skipBinaryRoutes(c echo.Context) bool {
	path := c.Request().URL.Path

	return strings.HasSuffix(path, "/photo") || strings.HasSuffix(path, "/qrcode")
}

func (s *apiServer) Serve(context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting cadastre API server", slog.String("host_port", hostPort))

	h2Server := &http2.Server{IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down cadastre API server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
