package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/bid-labs/ticketgen/internal/infrastructure/config"
	"github.com/bid-labs/ticketgen/internal/infrastructure/database"
	"github.com/bid-labs/ticketgen/internal/infrastructure/migration"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/bid-labs/ticketgen/internal/interfaces/http"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/version"
)

const shutdownTimeout = 30 * time.Second

type options struct {
	flags              bootstrap.Flags
	autoMigrate        bool
	skipMigrationCheck bool
}

func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the ticket generator HTTP API with the specified configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	opts.flags.Register(cmd)
	cmd.Flags().BoolVar(&opts.autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&opts.skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg, log, closeDB, err := bootstrap.InitWithDatabase(&opts.flags)
	if err != nil {
		return err
	}
	defer closeDB()

	env := opts.flags.Environment()
	log.Infow("starting server",
		"environment", env,
		"version", version.Current().Version,
		"auto_migrate", opts.autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(opts, cfg, env, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return err
	}
	defer container.Shutdown()
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(opts *options, cfg *config.Config, environment string, log logger.Interface) error {
	if opts.skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	manager, err := migration.NewManager(cfg.Database.Driver, environment)
	if err != nil {
		return err
	}

	if opts.autoMigrate {
		if environment == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}

		log.Infow("running auto-migration")
		if err := manager.Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	log.Infow("checking migration status")

	goose, err := manager.Goose()
	if err != nil {
		log.Infow("migration check skipped", "reason", err.Error())
		return nil
	}
	current, err := goose.GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
	} else {
		log.Infow("current migration version", "version", current)
	}

	log.Infow("migration check completed")
	return nil
}
