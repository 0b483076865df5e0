package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus vo.TicketStatus
}

type ChangeStatusResult struct {
	TicketID  uint   `json:"ticket_id"`
	Code      string `json:"codigo"`
	OldStatus string `json:"old_estado"`
	NewStatus string `json:"estado"`
	Changed   bool   `json:"changed"`
	UpdatedAt string `json:"updated_at"`
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.Repository,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.NewStatus)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid change status command", "error", err)
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	oldStatus := t.Status()

	changed, err := t.ChangeStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if changed {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}
		uc.logger.Infow("ticket status changed successfully",
			"ticket_id", cmd.TicketID,
			"old_status", oldStatus,
			"new_status", cmd.NewStatus,
		)
	}

	return &ChangeStatusResult{
		TicketID:  t.ID(),
		Code:      t.Code(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
		Changed:   changed,
		UpdatedAt: t.UpdatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

func (uc *ChangeStatusUseCase) validateCommand(cmd ChangeStatusCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}

	if !cmd.NewStatus.IsValid() {
		return errors.NewValidationError("invalid status")
	}

	return nil
}
