package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/ticket/dto"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/query"
)

type ListTicketsQuery struct {
	Status    string
	ClientID  *uint
	ProjectID *uint
	Search    string
	Sort      string
	Page      int
	PageSize  int
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.Repository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := q.ToFilter()
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items := make([]*dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	page := query.PageFilter{Page: q.Page, PageSize: q.PageSize}
	return &ListTicketsResult{
		Tickets:  items,
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: page.Limit(),
	}, nil
}

// ToFilter validates the query and converts it to a repository filter. The
// export endpoint reuses it.
func (q ListTicketsQuery) ToFilter() (ticket.Filter, error) {
	filter := ticket.Filter{
		ClientID:  q.ClientID,
		ProjectID: q.ProjectID,
		Search:    q.Search,
		Sort:      q.Sort,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
	if q.Status != "" {
		status, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			return ticket.Filter{}, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	return filter, nil
}
