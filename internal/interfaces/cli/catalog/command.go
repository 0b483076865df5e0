package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/infrastructure/database"
	"github.com/bid-labs/ticketgen/internal/infrastructure/migration"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/seeds"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/bootstrap"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

var (
	flags    bootstrap.Flags
	seedFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage client, project and test type catalogs",
	}

	flags.Register(cmd)
	cmd.AddCommand(newSeedCommand())

	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load catalog rows from a YAML file",
		Long: `Insert the clients, test types and projects listed in a YAML file.
Rows that already exist are left untouched, so the command can be re-run.`,
		Example: "  ticketgen catalog seed --file configs/catalog.example.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, closeDB, err := bootstrap.InitWithDatabase(&flags)
			if err != nil {
				return err
			}
			defer closeDB()

			return runSeed(cmd.Context(), database.Get(), seedFile, cmd.OutOrStdout(), log)
		},
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Catalog YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSeed(ctx context.Context, db *gorm.DB, path string, out io.Writer, log logger.Interface) error {
	file, err := seeds.LoadCatalogFile(path)
	if err != nil {
		return err
	}

	result, err := seeds.SeedCatalog(db.WithContext(ctx), file)
	if err != nil {
		log.Errorw("catalog seed failed", "file", path, "error", err)
		return err
	}
	log.Infow("catalog seeded", "file", path, "created", result.Created, "existing", result.Existing)

	// Explicit ids leave postgres sequences behind the data.
	fixer := migration.NewSequenceFixer(db)
	if fixer.Applicable() && result.Created > 0 {
		reports, err := fixer.Fix(ctx, false)
		if err != nil {
			return fmt.Errorf("seeded but failed to realign sequences: %w", err)
		}
		for _, r := range reports {
			if r.Adjusted {
				log.Infow("sequence realigned", "table", r.Table, "sequence", r.Sequence, "max_id", r.MaxID)
			}
		}
	}

	fmt.Fprintf(out, "Catalog seeded: %d created, %d already present\n", result.Created, result.Existing)
	return nil
}
