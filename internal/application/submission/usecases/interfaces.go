package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/submission/dto"
	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
)

// Extractor reads a request workbook into a field map. Only a missing sheet
// is reported as *submission.SheetNotFoundError.
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (submission.FieldMap, error)
}

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TicketAllocator interface {
	Execute(ctx context.Context, cmd ticketUsecases.AllocateTicketCommand) (*ticketUsecases.AllocateTicketResult, error)
}

type ProcessSubmissionExecutor interface {
	Execute(ctx context.Context, cmd ProcessSubmissionCommand) (*dto.SubmissionResultDTO, error)
}

type PreviewSubmissionExecutor interface {
	Execute(ctx context.Context, cmd PreviewSubmissionCommand) (*dto.PreviewDTO, error)
}

type ListSubmissionsExecutor interface {
	Execute(ctx context.Context, query ListSubmissionsQuery) (*ListSubmissionsResult, error)
}

type GetSubmissionExecutor interface {
	Execute(ctx context.Context, id uint) (*dto.SnapshotDTO, error)
}
