package usecases

import (
	"context"
	"io"
	"strings"

	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// TicketReportWriter renders filtered tickets as a workbook.
type TicketReportWriter interface {
	WriteXLSX(ctx context.Context, filter ticket.Filter, w io.Writer) error
}

// TableWriter dumps persisted tables as CSV, alone or zipped together.
type TableWriter interface {
	HasTable(name string) bool
	WriteCSV(ctx context.Context, table string, w io.Writer) error
	WriteBackup(ctx context.Context, w io.Writer) error
}

type ExportTicketsUseCase struct {
	report TicketReportWriter
	logger logger.Interface
}

func NewExportTicketsUseCase(report TicketReportWriter, logger logger.Interface) *ExportTicketsUseCase {
	return &ExportTicketsUseCase{report: report, logger: logger}
}

// Execute writes every ticket matching query; pagination is ignored.
func (uc *ExportTicketsUseCase) Execute(ctx context.Context, query ticketUsecases.ListTicketsQuery, w io.Writer) error {
	uc.logger.Infow("executing export tickets use case", "status", query.Status, "search", query.Search)

	filter, err := query.ToFilter()
	if err != nil {
		return err
	}
	filter.Page, filter.PageSize = 0, 0

	if err := uc.report.WriteXLSX(ctx, filter, w); err != nil {
		uc.logger.Errorw("failed to export tickets", "error", err)
		return errors.NewInternalError("failed to export tickets")
	}
	return nil
}

type ExportTableUseCase struct {
	tables TableWriter
	logger logger.Interface
}

func NewExportTableUseCase(tables TableWriter, logger logger.Interface) *ExportTableUseCase {
	return &ExportTableUseCase{tables: tables, logger: logger}
}

// Validate reports an unknown table before any output is produced.
func (uc *ExportTableUseCase) Validate(table string) error {
	if !uc.tables.HasTable(strings.ToLower(table)) {
		return errors.NewNotFoundError("unknown table", table)
	}
	return nil
}

func (uc *ExportTableUseCase) Execute(ctx context.Context, table string, w io.Writer) error {
	if err := uc.Validate(table); err != nil {
		return err
	}
	uc.logger.Infow("executing export table use case", "table", table)

	if err := uc.tables.WriteCSV(ctx, strings.ToLower(table), w); err != nil {
		uc.logger.Errorw("failed to export table", "table", table, "error", err)
		return errors.NewInternalError("failed to export table")
	}
	return nil
}

type BackupUseCase struct {
	tables TableWriter
	logger logger.Interface
}

func NewBackupUseCase(tables TableWriter, logger logger.Interface) *BackupUseCase {
	return &BackupUseCase{tables: tables, logger: logger}
}

func (uc *BackupUseCase) Execute(ctx context.Context, w io.Writer) error {
	uc.logger.Infow("executing backup use case")

	if err := uc.tables.WriteBackup(ctx, w); err != nil {
		uc.logger.Errorw("failed to write backup", "error", err)
		return errors.NewInternalError("failed to write backup")
	}
	return nil
}
