package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/infrastructure/spreadsheet"
	"github.com/bid-labs/ticketgen/internal/interfaces/cli/bootstrap"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

var (
	flags     bootstrap.Flags
	sheetName string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <workbook>",
		Short: "Print the fields read from a request workbook",
		Long: `Read a request form workbook the same way the upload endpoint does and
print the extracted fields as JSON. Nothing is stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Init(&flags)
			if err != nil {
				return err
			}

			layout := submission.DefaultLayout().WithSheetName(cfg.Spreadsheet.SheetName)
			if sheetName != "" {
				layout = layout.WithSheetName(sheetName)
			}
			return runExtract(cmd.Context(), layout, args[0], cmd.OutOrStdout(), log)
		},
	}

	flags.Register(cmd)
	cmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Worksheet to read (default: spreadsheet.sheet_name)")

	return cmd
}

func runExtract(ctx context.Context, layout submission.Layout, path string, out io.Writer, log logger.Interface) error {
	fields, err := spreadsheet.NewExtractor(layout, log).ExtractFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(fields)
}
