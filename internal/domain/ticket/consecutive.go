package ticket

import (
	"errors"
	"fmt"

	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
)

var (
	// ErrConsecutiveTaken is returned by Repository.Create when another ticket
	// already holds the key/consecutive pair or the code.
	ErrConsecutiveTaken = errors.New("consecutive already taken")

	ErrSequenceExhausted = errors.New("sequence exhausted")
)

// NextConsecutive returns max+1 for a partition whose highest used number is
// max (0 when the partition is empty).
func NextConsecutive(max int) (int, error) {
	next := max + 1
	if next > vo.MaxConsecutive {
		return 0, fmt.Errorf("%w: %d tickets already issued", ErrSequenceExhausted, max)
	}
	return next, nil
}

// DuplicateConsecutiveError reports a manual consecutive that is already in use.
type DuplicateConsecutiveError struct {
	Key         vo.SequenceKey
	Consecutive int
}

func (e *DuplicateConsecutiveError) Error() string {
	return fmt.Sprintf("consecutive %03d already exists for %s", e.Consecutive, e.Key.String())
}

func (e *DuplicateConsecutiveError) Unwrap() error {
	return ErrConsecutiveTaken
}
