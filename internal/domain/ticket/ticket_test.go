package ticket

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
)

func testKey(t *testing.T) vo.SequenceKey {
	t.Helper()
	k, err := vo.NewSequenceKey("BID", "PRU", "EST", 3, "TEL", "OTR")
	require.NoError(t, err)
	return k
}

func uintPtr(v uint) *uint { return &v }

func TestNewTicket(t *testing.T) {
	tk, err := NewTicket(testKey(t), 1, References{ClientID: uintPtr(5)}, Details{Requester: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, "BID-PRU-EST-3-TEL-OTR-001", tk.Code())
	assert.Equal(t, 1, tk.Consecutive())
	assert.Equal(t, vo.StatusGenerado, tk.Status())
	assert.Equal(t, "Ana", tk.Details().Requester)
	assert.Nil(t, tk.SubmissionID())
	assert.Equal(t, "001", tk.Parts()["consecutivo"])
	assert.Equal(t, "3", tk.Parts()["version"])
}

func TestNewTicket_RejectsOutOfRangeConsecutive(t *testing.T) {
	for _, n := range []int{0, -1, 1000} {
		_, err := NewTicket(testKey(t), n, References{}, Details{})
		assert.Error(t, err, n)
	}
}

func TestTicket_ChangeStatus(t *testing.T) {
	tk, err := NewTicket(testKey(t), 7, References{}, Details{})
	require.NoError(t, err)

	changed, err := tk.ChangeStatus(vo.StatusGenerado)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = tk.ChangeStatus(vo.StatusCompletado)
	require.NoError(t, err)
	assert.True(t, changed)

	// completed tickets may go back to GENERADO
	changed, err = tk.ChangeStatus(vo.StatusGenerado)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = tk.ChangeStatus(vo.TicketStatus("ARCHIVADO"))
	assert.Error(t, err)
}

func TestTicket_LinkSubmission(t *testing.T) {
	tk, err := NewTicket(testKey(t), 2, References{}, Details{})
	require.NoError(t, err)

	assert.Error(t, tk.LinkSubmission(0))
	require.NoError(t, tk.LinkSubmission(10))
	require.NoError(t, tk.LinkSubmission(10))
	assert.Error(t, tk.LinkSubmission(11))
	assert.Equal(t, uint(10), *tk.SubmissionID())
}

func TestReconstructTicket(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructTicket(0, "X", testKey(t), 1, vo.StatusGenerado, References{}, Details{}, nil, now, now)
	assert.Error(t, err)

	tk, err := ReconstructTicket(9, "BID-PRU-EST-3-TEL-OTR-004", testKey(t), 4, vo.StatusEnProceso, References{}, Details{}, uintPtr(3), now, now)
	require.NoError(t, err)
	assert.Equal(t, uint(9), tk.ID())
	assert.Error(t, tk.SetID(10))
}

func TestNextConsecutive(t *testing.T) {
	n, err := NextConsecutive(0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = NextConsecutive(41)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = NextConsecutive(999)
	assert.True(t, errors.Is(err, ErrSequenceExhausted))
}

func TestDuplicateConsecutiveError(t *testing.T) {
	err := &DuplicateConsecutiveError{Key: testKey(t), Consecutive: 5}
	assert.Equal(t, "consecutive 005 already exists for BID-PRU-EST-3-TEL-OTR", err.Error())
	assert.ErrorIs(t, err, ErrConsecutiveTaken)
}
