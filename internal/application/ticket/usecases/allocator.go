package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	apperrors "github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

const DefaultMaxAllocationAttempts = 5

// ErrAllocationContended is returned when every attempt lost the race for a
// consecutive to a concurrent writer.
var ErrAllocationContended = errors.New("could not allocate a consecutive")

// Request is everything a new ticket carries besides its number.
type Request struct {
	Key          vo.SequenceKey
	References   ticket.References
	Details      ticket.Details
	SubmissionID *uint
}

// Allocator numbers tickets within a sequence key. Both methods must run
// inside a transaction; the unique index on (key, consecutivo) is what makes
// the number safe, the MAX query only proposes it.
type Allocator struct {
	tickets     ticket.Repository
	maxAttempts int
	logger      logger.Interface
}

func NewAllocator(tickets ticket.Repository, maxAttempts int, logger logger.Interface) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAllocationAttempts
	}
	return &Allocator{
		tickets:     tickets,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Next persists a ticket numbered max+1 for req.Key, retrying when another
// writer takes that number first.
func (a *Allocator) Next(ctx context.Context, req Request) (*ticket.Ticket, error) {
	lastTried := 0
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		current, err := a.tickets.MaxConsecutive(ctx, req.Key)
		if err != nil {
			return nil, err
		}
		// A snapshot read may keep returning the same max; never propose a
		// number that already failed.
		if current < lastTried {
			current = lastTried
		}

		n, err := ticket.NextConsecutive(current)
		if err != nil {
			return nil, err
		}

		t, err := a.insert(ctx, req, n)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ticket.ErrConsecutiveTaken) {
			return nil, err
		}

		a.logger.Warnw("consecutive taken by a concurrent request, retrying",
			"key", req.Key.String(),
			"consecutivo", n,
			"attempt", attempt,
		)
		lastTried = n
	}
	return nil, fmt.Errorf("%w for %s after %d attempts", ErrAllocationContended, req.Key.String(), a.maxAttempts)
}

// Reserve persists a ticket with an explicit consecutive. An existing ticket
// holding that number is a DuplicateConsecutiveError; nothing is overwritten.
func (a *Allocator) Reserve(ctx context.Context, req Request, consecutivo int) (*ticket.Ticket, error) {
	if err := vo.ValidateConsecutive(consecutivo); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	taken, err := a.tickets.ExistsConsecutive(ctx, req.Key, consecutivo)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ticket.DuplicateConsecutiveError{Key: req.Key, Consecutive: consecutivo}
	}

	t, err := a.insert(ctx, req, consecutivo)
	if errors.Is(err, ticket.ErrConsecutiveTaken) {
		return nil, &ticket.DuplicateConsecutiveError{Key: req.Key, Consecutive: consecutivo}
	}
	return t, err
}

// Peek returns the number Next would propose, without writing.
func (a *Allocator) Peek(ctx context.Context, key vo.SequenceKey) (int, error) {
	current, err := a.tickets.MaxConsecutive(ctx, key)
	if err != nil {
		return 0, err
	}
	return ticket.NextConsecutive(current)
}

func (a *Allocator) insert(ctx context.Context, req Request, n int) (*ticket.Ticket, error) {
	t, err := ticket.NewTicket(req.Key, n, req.References, req.Details)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if req.SubmissionID != nil {
		if err := t.LinkSubmission(*req.SubmissionID); err != nil {
			return nil, err
		}
	}
	if err := a.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// toAppError maps allocation failures onto API errors.
func toAppError(err error, fallback string) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	var dup *ticket.DuplicateConsecutiveError
	switch {
	case errors.As(err, &dup):
		return apperrors.NewConflictError(dup.Error())
	case errors.Is(err, ticket.ErrSequenceExhausted), errors.Is(err, ErrAllocationContended):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, ticket.ErrConsecutiveTaken):
		return apperrors.NewConflictError(err.Error())
	}
	return apperrors.NewInternalError(fallback, err.Error())
}
