package main

import (
	"context"
	"log/slog"
	"os"

	"cadastre/config"
	"cadastre/internal/delivery"
	"cadastre/internal/delivery/notifier"
	"cadastre/internal/delivery/notifier/handler"
	"cadastre/internal/delivery/notifier/hub"
	"cadastre/internal/infra/auth"
	logs "cadastre/internal/infra/log"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			auth.NewJWTService,
			hub.NewHub,
			handler.NewPushHandler,
			handler.NewWSHandler,
			fx.Annotate(
				notifier.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
