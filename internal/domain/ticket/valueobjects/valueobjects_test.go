package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		got, err := NewTicketStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
		for _, next := range AllStatuses() {
			assert.True(t, s.CanTransitionTo(next), "%s -> %s", s, next)
		}
	}

	_, err := NewTicketStatus("generado")
	assert.Error(t, err)
	assert.Equal(t, "En Proceso", StatusEnProceso.Label())
	assert.False(t, TicketStatus("X").CanTransitionTo(StatusGenerado))
}

func TestNewSequenceKey(t *testing.T) {
	k, err := NewSequenceKey("", " pru ", "EST", 3, "TEL", "OTR")
	require.NoError(t, err)
	assert.Equal(t, "BID", k.Empresa)
	assert.Equal(t, "PRU", k.TipoServicio)
	assert.Equal(t, "3", k.Version)
	assert.Equal(t, "BID-PRU-EST-3-TEL-OTR", k.String())

	_, err = NewSequenceKey("BID", "", "EST", 3, "TEL", "OTR")
	assert.ErrorContains(t, err, "tipo_servicio")

	_, err = NewSequenceKey("BID", "PRU", "EST", 0, "TEL", "OTR")
	assert.Error(t, err)

	_, err = NewSequenceKey("BID", "PRU", "EST", 3, "TEL", "O-TR")
	assert.ErrorContains(t, err, "proyecto")
}

func TestFormatAndParseCode(t *testing.T) {
	k, err := NewSequenceKey("BID", "PRU", "EST", 3, "TEL", "OTR")
	require.NoError(t, err)

	tests := []struct {
		n    int
		want string
	}{
		{1, "BID-PRU-EST-3-TEL-OTR-001"},
		{42, "BID-PRU-EST-3-TEL-OTR-042"},
		{999, "BID-PRU-EST-3-TEL-OTR-999"},
	}
	for _, tt := range tests {
		code, err := FormatCode(k, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, code)

		gotKey, gotN, err := ParseCode(code)
		require.NoError(t, err)
		assert.Equal(t, k, gotKey)
		assert.Equal(t, tt.n, gotN)
	}

	_, err = FormatCode(k, 1000)
	assert.Error(t, err)
}

func TestParseCode_Invalid(t *testing.T) {
	for _, code := range []string{
		"",
		"BID-PRU-EST-3-TEL-OTR",
		"BID-PRU-EST-3-TEL-OTR-1",
		"BID-PRU-EST-3-TEL-OTR-ABC",
		"BID-PRU-EST-3-TEL-OTR-000",
		"BID-PRU-EST-3-TEL-OTR-X-001",
	} {
		_, _, err := ParseCode(code)
		assert.Error(t, err, code)
	}
}
