// Package bootstrap loads configuration and the process-wide logger,
// timezone and database shared by every subcommand.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bid-labs/ticketgen/internal/infrastructure/config"
	"github.com/bid-labs/ticketgen/internal/infrastructure/database"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// Flags are the persistent flags every subcommand accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

// Register adds --env and --config to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.Env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// Environment prefers $ENV over the --env flag.
func (f *Flags) Environment() string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return f.Env
}

// Init loads configuration and initializes logging and the business timezone.
func Init(f *Flags) (*config.Config, logger.Interface, error) {
	env := f.Environment()
	cfg, err := config.LoadFile(env, f.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, log, nil
}

// InitWithDatabase is Init plus the shared database connection. The returned
// func closes it.
func InitWithDatabase(f *Flags) (*config.Config, logger.Interface, func(), error) {
	cfg, log, err := Init(f)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	closeFn := func() {
		if err := database.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}
	return cfg, log, closeFn, nil
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
