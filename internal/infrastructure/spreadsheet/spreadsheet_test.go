package spreadsheet

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// newForm returns a workbook whose request sheet holds cells, keyed by A1 ref.
func newForm(t *testing.T, cells map[string]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", submission.DefaultSheetName))
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue(submission.DefaultSheetName, ref, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func newExtractor() *Extractor {
	return NewExtractor(submission.DefaultLayout(), logger.Nop())
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6.0, "6"},
		{3, "3"},
		{-2, "-2"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{math.NaN(), ""},
		{math.Inf(1), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeNumber(tt.in), "%v", tt.in)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  TEL ", "TEL"},
		{"", ""},
		{"   ", ""},
		{"NaN", ""},
		{"3.0", "3"},
		{"12.000", "12"},
		{"1.10", "1.10"},
		{"v2.0", "v2.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), "%q", tt.in)
	}
}

func TestContainsFolded(t *testing.T) {
	assert.True(t, containsFolded("Justificación del cambio", "Justificación"))
	assert.True(t, containsFolded("JUSTIFICACION:", "Justificación"))
	assert.True(t, containsFolded("  justificación ", "JUSTIFICACIÓN"))
	assert.False(t, containsFolded("Detalle", "Justificación"))
}

func TestDefaultLayoutRefsMatchCoordinates(t *testing.T) {
	for name, cell := range submission.DefaultLayout().Cells {
		ref, err := excelize.CoordinatesToCellName(cell.Col+1, cell.Row+1)
		require.NoError(t, err)
		assert.Equal(t, ref, cell.Ref, string(name))
	}
}

func TestExtractor_ExampleForm(t *testing.T) {
	buf := newForm(t, map[string]interface{}{
		"C5":  "5",
		"H5":  12,
		"D8":  3.0,
		"D12": " Ana López ",
		"J12": "Luis Pérez",
		"D17": "Web",
		"M17": 2.5,
		"D20": "Alta de usuarios",
		"D21": "Login",
		"D22": "Cambio 1",
		"D23": "Cambio 2",
		"C25": "Justificación:",
		"D26": "Requerido por auditoría",
		"D27": "Fecha límite Q3",
	})

	fields, err := newExtractor().Extract(context.Background(), buf)
	require.NoError(t, err)

	assert.Equal(t, "5", fields[submission.FieldClient])
	assert.Equal(t, "12", fields[submission.FieldProject])
	assert.Equal(t, "3", fields[submission.FieldTestType])
	assert.Equal(t, "Ana López", fields[submission.FieldRequester])
	assert.Equal(t, "Luis Pérez", fields[submission.FieldProjectLead])
	assert.Equal(t, "Web", fields[submission.FieldApplicationType])
	assert.Equal(t, "2.5", fields[submission.FieldVersion])
	assert.Equal(t, "Alta de usuarios\nLogin", fields[submission.FieldReleaseFunctionality])
	assert.Equal(t, "Cambio 1\nCambio 2", fields[submission.FieldChangeDetail])
	assert.Equal(t, "Requerido por auditoría\nFecha límite Q3", fields[submission.FieldChangeJustification])
	assert.Len(t, fields, len(submission.AllFields()))
}

func TestExtractor_ScanStopsAtCeiling(t *testing.T) {
	cells := map[string]interface{}{}
	// change_detail scans rows 21..29 (D22..D30); D31 is past the ceiling.
	for row := 22; row <= 31; row++ {
		ref, _ := excelize.CoordinatesToCellName(4, row)
		cells[ref] = "line"
	}
	fields, err := newExtractor().Extract(context.Background(), newForm(t, cells))
	require.NoError(t, err)

	lines := bytes.Count([]byte(fields[submission.FieldChangeDetail]), []byte("\n")) + 1
	assert.Equal(t, 9, lines)
	// release_functionality starts at D20, which is empty.
	assert.Equal(t, "", fields[submission.FieldReleaseFunctionality])
}

func TestExtractor_ScanStopsAtFirstEmpty(t *testing.T) {
	fields, err := newExtractor().Extract(context.Background(), newForm(t, map[string]interface{}{
		"D22": "uno",
		"D24": "tres",
	}))
	require.NoError(t, err)
	assert.Equal(t, "uno", fields[submission.FieldChangeDetail])
}

func TestExtractor_DateCellsYieldSerialNumbers(t *testing.T) {
	fields, err := newExtractor().Extract(context.Background(), newForm(t, map[string]interface{}{
		"D20": time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)
	assert.Equal(t, "45122", fields[submission.FieldReleaseFunctionality])
}

func TestExtractor_MissingLabelLeavesJustificationEmpty(t *testing.T) {
	fields, err := newExtractor().Extract(context.Background(), newForm(t, map[string]interface{}{
		"C5":  "5",
		"D26": "orphan text",
	}))
	require.NoError(t, err)
	assert.Equal(t, "", fields[submission.FieldChangeJustification])
	assert.Equal(t, "", fields[submission.FieldProject])
}

func TestExtractor_SheetNotFound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = newExtractor().Extract(context.Background(), buf)
	var sheetErr *submission.SheetNotFoundError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, submission.DefaultSheetName, sheetErr.Sheet)
	assert.Equal(t, []string{"Sheet1"}, sheetErr.Available)
}

func TestExtractor_NotAWorkbook(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), bytes.NewBufferString("plain text"))
	assert.Error(t, err)
}

func TestExtractor_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", submission.DefaultSheetName))
	require.NoError(t, f.SetCellValue(submission.DefaultSheetName, "C5", 5))
	require.NoError(t, f.SetCellValue(submission.DefaultSheetName, "D20", "Alta"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	e := newExtractor()
	first, err := e.ExtractFile(context.Background(), path)
	require.NoError(t, err)
	second, err := e.ExtractFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.Canonical(), second.Canonical())
}

func TestWriteTickets(t *testing.T) {
	require.NoError(t, biztime.Init("America/Mexico_City"))

	created := time.Date(2025, 1, 15, 18, 30, 0, 0, time.UTC)
	rows := []TicketRow{{
		ID:            1,
		Code:          "BID-PRU-EST-3-TEL-OTR-001",
		Status:        "Generado",
		Client:        "Telcel",
		Project:       "Otro",
		ServiceType:   "Estres",
		Requester:     "Ana",
		ChangeDetail:  "a\nb",
		CreatedAt:     created,
		UpdatedAt:     created,
		Justification: "porque",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteTickets(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(TicketSheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Código", header)

	got, err := f.GetRows(TicketSheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0], 14)
	assert.Equal(t, "BID-PRU-EST-3-TEL-OTR-001", got[1][1])
	assert.Equal(t, "a\nb", got[1][10])
	assert.Equal(t, "15/01/2025 12:30", got[1][12])
}
