// Command jobly runs the Jobly API.
//
//	jobly serve     start the HTTP API and the background job worker
//	jobly migrate   apply pending database migrations and exit
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/database"
	"github.com/deppfellow/jobly/internal/handler"
	"github.com/deppfellow/jobly/internal/logger"
	"github.com/deppfellow/jobly/internal/middleware"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/deppfellow/jobly/internal/router"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/deppfellow/jobly/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobly",
		Short:         "Jobly job board API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Observability)
			if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
				log.Error().Err(err).Msg("failed to migrate database")
				return err
			}
			return nil
		},
	}
}

func serve(ctx context.Context, migrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if migrate {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)
	r := router.NewRouter(srv, handlers, middlewares)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			shutdown(srv, &log)
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	return shutdown(srv, &log)
}

func shutdown(srv *server.Server, log *zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
