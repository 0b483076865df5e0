package migrate

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bid-labs/ticketgen/internal/infrastructure/config"
	"github.com/bid-labs/ticketgen/internal/infrastructure/database"
	"github.com/bid-labs/ticketgen/internal/infrastructure/migration"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/bootstrap"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
)

const defaultScriptsDir = "./internal/infrastructure/migration/scripts"

var (
	flags      bootstrap.Flags
	name       string
	scriptsDir string
	steps      int
	dryRun     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	flags.Register(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newFixSequencesCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new SQL migration file for the configured database driver.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsDir, "dir", defaultScriptsDir, "Migration scripts root; the driver's dialect is appended")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newFixSequencesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix-sequences",
		Short: "Realign postgres id sequences",
		Long:  `Bump id sequences that lag behind the table's max id, as happens after seeding or restoring rows with explicit ids. Only postgres uses sequences.`,
		RunE:  runFixSequences,
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report lagging sequences without changing them")

	return cmd
}

// gooseFor always uses the versioned scripts, whatever the environment.
func gooseFor(cfg *config.Config) (*migration.GooseStrategy, error) {
	manager, err := migration.NewManager(cfg.Database.Driver, constants.EnvProduction)
	if err != nil {
		return nil, err
	}
	return manager.Goose()
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, log, closeDB, err := bootstrap.InitWithDatabase(&flags)
	if err != nil {
		return err
	}
	defer closeDB()

	log.Infow("running up migrations", "environment", flags.Environment())

	strategy, err := gooseFor(cfg)
	if err != nil {
		return err
	}
	if err := strategy.Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, log, closeDB, err := bootstrap.InitWithDatabase(&flags)
	if err != nil {
		return err
	}
	defer closeDB()

	log.Infow("running down migrations", "environment", flags.Environment(), "steps", steps)

	strategy, err := gooseFor(cfg)
	if err != nil {
		return err
	}
	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, log, closeDB, err := bootstrap.InitWithDatabase(&flags)
	if err != nil {
		return err
	}
	defer closeDB()

	strategy, err := gooseFor(cfg)
	if err != nil {
		return err
	}

	current, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", flags.Environment())
	fmt.Fprintf(out, "  Driver:          %s\n", cfg.Database.Driver)
	fmt.Fprintf(out, "  Current Version: %d\n", current)

	if err := strategy.Status(database.Get()); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(&flags)
	if err != nil {
		return err
	}

	strategy, err := gooseFor(cfg)
	if err != nil {
		return err
	}
	if err := strategy.Create(scriptsDir, name); err != nil {
		log.Errorw("failed to create migration", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created under %s\n", name, scriptsDir)
	return nil
}

func runFixSequences(cmd *cobra.Command, args []string) error {
	_, log, closeDB, err := bootstrap.InitWithDatabase(&flags)
	if err != nil {
		return err
	}
	defer closeDB()

	fixer := migration.NewSequenceFixer(database.Get())
	if !fixer.Applicable() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do: the configured database does not use sequences.")
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	reports, err := fixer.Fix(ctx, dryRun)
	if err != nil {
		log.Errorw("failed to fix sequences", "error", err)
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tSEQUENCE\tMAX ID\tLAST VALUE\tSTATUS")
	for _, r := range reports {
		status := "ok"
		switch {
		case r.Adjusted:
			status = "adjusted"
		case r.Lagging:
			status = "lagging"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.Table, r.Sequence, r.MaxID, r.LastValue, status)
	}
	return w.Flush()
}
