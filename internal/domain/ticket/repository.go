package ticket

import (
	"context"

	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
)

type Repository interface {
	// Create inserts the ticket and sets its ID. Unique violations surface
	// as ErrConsecutiveTaken.
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	GetByCode(ctx context.Context, code string) (*Ticket, error)
	// MaxConsecutive returns 0 when no ticket uses key.
	MaxConsecutive(ctx context.Context, key vo.SequenceKey) (int, error)
	ExistsConsecutive(ctx context.Context, key vo.SequenceKey, consecutivo int) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
	CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error)
}

type Filter struct {
	Status    *vo.TicketStatus
	ClientID  *uint
	ProjectID *uint
	Search    string
	Sort      string
	Page      int
	PageSize  int
}
