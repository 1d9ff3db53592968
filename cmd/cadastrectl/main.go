// Command cadastrectl administers a cadastre database: schema migration,
// reference data and session housekeeping.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"cadastre/config"
	"cadastre/internal/infra/auth"
	logs "cadastre/internal/infra/log"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/usecase/impl"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "cadastrectl",
		Short:         "Administer the cadastre database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if envFile == "" {
				return nil
			}
			// Values already in the environment win over the file.
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return errors.Wrapf(err, "load %s", envFile)
			}

			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newPurgeSessionsCmd())

	return root
}

// runWithApp starts the infrastructure the command needs, fills targets, runs fn and stops everything.
func runWithApp(ctx context.Context, fn func() error, targets ...any) error {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			func() context.Context { return ctx },
			postgres.New,
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewSessionRepository,
			auth.NewPasswordHasher,
			auth.NewJWTService,
			impl.NewSeedService,
			impl.NewAuthService,
		),
		fx.Populate(targets...),
	)
	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start")
	}
	defer func() {
		_ = app.Stop(context.WithoutCancel(ctx))
	}()

	return fn()
}
