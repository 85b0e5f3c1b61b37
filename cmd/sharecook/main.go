// @title           ShareCook API
// @version         1.0
// @description     Recipe sharing backend: accounts, recipes and comments.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sharecook/recipes-api/internal/app"
	"github.com/sharecook/recipes-api/internal/pkg/config"
	"github.com/sharecook/recipes-api/pkg/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sharecook",
		Short:         "ShareCook recipe API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newBootstrapCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the stores and run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, log, err := start(ctx)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if err := a.Bootstrap(ctx); err != nil {
				return err
			}
			if err := a.Run(ctx); err != nil {
				log.Error().Err(err).Msg("server stopped")
				return err
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
}

func newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the schema and indexes, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := start(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(context.Background())
			return a.Bootstrap(cmd.Context())
		},
	}
}

func start(ctx context.Context) (*app.App, zerolog.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "sharecook-api",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return nil, log, err
	}
	return a, log, nil
}
