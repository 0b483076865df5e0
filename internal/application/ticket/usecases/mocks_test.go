package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
)

type mockTicketRepository struct {
	CreateFunc            func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc            func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc           func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByCodeFunc         func(ctx context.Context, code string) (*ticket.Ticket, error)
	MaxConsecutiveFunc    func(ctx context.Context, key vo.SequenceKey) (int, error)
	ExistsConsecutiveFunc func(ctx context.Context, key vo.SequenceKey, n int) (bool, error)
	ListFunc              func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error)
	CountByStatusFunc     func(ctx context.Context) (map[vo.TicketStatus]int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockTicketRepository) MaxConsecutive(ctx context.Context, key vo.SequenceKey) (int, error) {
	if m.MaxConsecutiveFunc != nil {
		return m.MaxConsecutiveFunc(ctx, key)
	}
	return 0, nil
}

func (m *mockTicketRepository) ExistsConsecutive(ctx context.Context, key vo.SequenceKey, n int) (bool, error) {
	if m.ExistsConsecutiveFunc != nil {
		return m.ExistsConsecutiveFunc(ctx, key, n)
	}
	return false, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[vo.TicketStatus]int64{}, nil
}

// inlineTx runs fn directly, without a database.
type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
