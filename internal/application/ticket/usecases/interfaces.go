package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/ticket/dto"
)

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AllocateTicketExecutor interface {
	Execute(ctx context.Context, cmd AllocateTicketCommand) (*AllocateTicketResult, error)
}

type CreateManualTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateManualTicketCommand) (*dto.TicketDTO, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context) (*dto.TicketStatsDTO, error)
}

type NextConsecutiveExecutor interface {
	Execute(ctx context.Context, query NextConsecutiveQuery) (*NextConsecutiveResult, error)
}
