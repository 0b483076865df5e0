package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"time"
)

// WriteBackup writes every table as "<table>.csv" into a deflated ZIP.
func (e *TableExporter) WriteBackup(ctx context.Context, w io.Writer) error {
	zw := zip.NewWriter(w)
	modified := time.Now()

	for _, table := range Tables() {
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     table + ".csv",
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("failed to add %s to backup: %w", table, err)
		}
		if err := e.WriteCSV(ctx, table, entry); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish backup: %w", err)
	}
	return nil
}
