package submission

import "context"

type Repository interface {
	Create(ctx context.Context, snapshot *Snapshot) error
	// UpdateTicketCode persists the ticket back-link set by LinkTicket.
	UpdateTicketCode(ctx context.Context, snapshot *Snapshot) error
	GetByID(ctx context.Context, id uint) (*Snapshot, error)
	List(ctx context.Context, filter Filter) ([]*Snapshot, int64, error)
}

type Filter struct {
	Search   string
	Page     int
	PageSize int
}
