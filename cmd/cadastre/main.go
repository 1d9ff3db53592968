package main

import (
	"context"
	"log/slog"
	"os"

	"cadastre/config"
	"cadastre/internal/delivery"
	"cadastre/internal/delivery/api"
	"cadastre/internal/delivery/api/middleware"
	"cadastre/internal/delivery/api/router/handler"
	"cadastre/internal/infra/auth"
	logs "cadastre/internal/infra/log"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/infra/pubsub"
	"cadastre/internal/infra/qrcode"
	"cadastre/internal/infra/storage"
	"cadastre/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewRoleRepository,
			postgres.NewPermissionRepository,
			postgres.NewSessionRepository,
			postgres.NewLocationRepository,
			postgres.NewLookupRepository,
			postgres.NewOwnerRepository,
			postgres.NewResponsiblePersonRepository,
			postgres.NewPropertyRepository,
			postgres.NewPaymentRepository,
			postgres.NewPaymentDetailRepository,
			postgres.NewPolicyRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewPasswordHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeServiceFromConfig,
			storage.New,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewRoleService,
			impl.NewLocationService,
			impl.NewLookupService,
			impl.NewPersonService,
			impl.NewPropertyService,
			impl.NewPaymentService,
			impl.NewPolicyService,
			impl.NewReportService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewRoleHandler,
			handler.NewLocationHandler,
			handler.NewLookupHandler,
			handler.NewPersonHandler,
			handler.NewPropertyHandler,
			handler.NewPaymentHandler,
			handler.NewPolicyHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
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
