package spreadsheet

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bid-labs/ticketgen/internal/shared/biztime"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
)

const TicketSheetName = "Tickets"

var ticketSheetHeaders = []string{
	"ID", "Código", "Estado", "Cliente", "Proyecto", "Tipo de servicio",
	"Responsable", "Líder de proyecto", "Versión",
	"Funcionalidad", "Detalle de cambios", "Justificación",
	"Creado", "Actualizado",
}

var ticketSheetWidths = []float64{8, 30, 12, 20, 20, 18, 22, 22, 10, 40, 40, 40, 17, 17}

// TicketRow is one line of the ticket report. Text fields are written as
// given; timestamps are rendered in the business timezone.
type TicketRow struct {
	ID            uint
	Code          string
	Status        string
	Client        string
	Project       string
	ServiceType   string
	Requester     string
	ProjectLead   string
	Version       string
	Functionality string
	ChangeDetail  string
	Justification string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r TicketRow) values() []interface{} {
	return []interface{}{
		r.ID, r.Code, r.Status, r.Client, r.Project, r.ServiceType,
		r.Requester, r.ProjectLead, r.Version,
		r.Functionality, r.ChangeDetail, r.Justification,
		biztime.Format(r.CreatedAt, constants.ExportDisplayTimeFormat),
		biztime.Format(r.UpdatedAt, constants.ExportDisplayTimeFormat),
	}
}

// BuildTicketWorkbook lays out rows under a styled header. The caller owns
// the returned file and must close it.
func BuildTicketWorkbook(rows []TicketRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", TicketSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1F4E78"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create body style: %w", err)
	}

	sw, err := f.NewStreamWriter(TicketSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open stream writer: %w", err)
	}

	for i, w := range ticketSheetWidths {
		if err := sw.SetColWidth(i+1, i+1, w); err != nil {
			f.Close()
			return nil, err
		}
	}

	header := make([]interface{}, len(ticketSheetHeaders))
	for i, h := range ticketSheetHeaders {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := row.values()
		styled := make([]interface{}, len(values))
		for j, v := range values {
			styled[j] = excelize.Cell{StyleID: wrapStyle, Value: v}
		}
		if err := sw.SetRow(cell, styled); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}
	return f, nil
}

// WriteTickets streams the ticket report as an xlsx document to w.
func WriteTickets(w io.Writer, rows []TicketRow) error {
	f, err := BuildTicketWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
