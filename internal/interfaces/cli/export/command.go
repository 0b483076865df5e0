package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/infrastructure/database"
	"github.com/bid-labs/ticketgen/internal/infrastructure/export"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/bootstrap"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
)

var (
	flags   bootstrap.Flags
	outPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump stored data to CSV or ZIP",
	}

	flags.Register(cmd)
	cmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Output file (default: generated name in the working directory, \"-\" for stdout)")

	cmd.AddCommand(newBackupCommand(), newTableCommand())

	return cmd
}

func newBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write every table as CSV into one ZIP archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, closeDB, err := bootstrap.InitWithDatabase(&flags)
			if err != nil {
				return err
			}
			defer closeDB()

			path := outPath
			if path == "" {
				path = fmt.Sprintf("backup_%s.zip", biztime.Format(biztime.NowUTC(), constants.ExportFileStampFormat))
			}
			if err := writeBackup(cmd.Context(), database.Get(), path, cmd.OutOrStdout()); err != nil {
				log.Errorw("backup failed", "out", path, "error", err)
				return err
			}
			log.Infow("backup written", "out", path)
			return nil
		},
	}
}

func newTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "table <name>",
		Short:     "Write one table as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: export.Tables(),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := strings.ToLower(strings.TrimSuffix(args[0], ".csv"))
			if !export.IsTable(table) {
				return fmt.Errorf("unknown table %q (known: %s)", args[0], strings.Join(export.Tables(), ", "))
			}

			_, log, closeDB, err := bootstrap.InitWithDatabase(&flags)
			if err != nil {
				return err
			}
			defer closeDB()

			path := outPath
			if path == "" {
				path = table + ".csv"
			}
			if err := writeTable(cmd.Context(), database.Get(), table, path, cmd.OutOrStdout()); err != nil {
				log.Errorw("table export failed", "table", table, "out", path, "error", err)
				return err
			}
			return nil
		},
	}
}

func writeBackup(ctx context.Context, db *gorm.DB, path string, stdout io.Writer) error {
	return writeTo(path, stdout, func(w io.Writer) error {
		return export.NewTableExporter(db).WriteBackup(ctx, w)
	})
}

func writeTable(ctx context.Context, db *gorm.DB, table, path string, stdout io.Writer) error {
	return writeTo(path, stdout, func(w io.Writer) error {
		return export.NewTableExporter(db).WriteCSV(ctx, table, w)
	})
}

// writeTo runs write against path, or stdout for "-". A failed write removes
// the partial file.
func writeTo(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
