package usecases

import (
	"context"
	"strings"

	"github.com/bid-labs/ticketgen/internal/application/ticket/dto"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// GetTicketQuery looks a ticket up by ID, or by Code when ID is zero.
type GetTicketQuery struct {
	ID   uint
	Code string
}

type GetTicketUseCase struct {
	ticketRepo     ticket.Repository
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	submissionRepo submission.Repository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	var (
		t   *ticket.Ticket
		err error
	)
	switch {
	case query.ID != 0:
		t, err = uc.ticketRepo.GetByID(ctx, query.ID)
	case strings.TrimSpace(query.Code) != "":
		t, err = uc.ticketRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(query.Code)))
	default:
		return nil, errors.NewValidationError("ticket ID or code is required")
	}
	if err != nil {
		uc.logger.Warnw("ticket lookup failed", "id", query.ID, "code", query.Code, "error", err)
		return nil, err
	}

	result := dto.ToTicketDTO(t)

	if sid := t.SubmissionID(); sid != nil {
		snap, err := uc.submissionRepo.GetByID(ctx, *sid)
		switch {
		case err == nil:
			result.Submission = dto.ToSnapshotDTO(snap)
		case errors.IsNotFoundError(err):
			uc.logger.Warnw("ticket links a missing submission", "ticket_id", t.ID(), "submission_id", *sid)
		default:
			return nil, err
		}
	}

	return result, nil
}
