package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/ticket/dto"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

type GetTicketStatsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(
	ticketRepo ticket.Repository,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context) (*dto.TicketStatsDTO, error) {
	counts, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get ticket stats", "error", err)
		return nil, errors.NewInternalError("failed to get ticket stats")
	}

	result := &dto.TicketStatsDTO{
		ByStatus: make(map[string]int64, len(vo.AllStatuses())),
	}
	for _, status := range vo.AllStatuses() {
		n := counts[status]
		result.ByStatus[status.String()] = n
		result.Total += n
	}

	return result, nil
}
