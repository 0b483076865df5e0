package export

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
	"github.com/bid-labs/ticketgen/internal/infrastructure/repository"
	"github.com/bid-labs/ticketgen/internal/infrastructure/spreadsheet"
	"github.com/bid-labs/ticketgen/internal/shared/db"
)

// TicketReport assembles report rows from tickets, the catalog names they
// reference and the free text of their submissions.
type TicketReport struct {
	db *gorm.DB
}

func NewTicketReport(db *gorm.DB) *TicketReport {
	return &TicketReport{db: db}
}

// Rows applies the ticket list filters, ignoring pagination, newest first.
func (r *TicketReport) Rows(ctx context.Context, filter ticket.Filter) ([]spreadsheet.TicketRow, error) {
	q := db.GetTxFromContext(ctx, r.db)

	var tickets []models.TicketModel
	err := q.Model(&models.TicketModel{}).
		Scopes(repository.TicketFilterScope(filter)).
		Order("created_at DESC").Order("id DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets for report: %w", err)
	}

	var clientIDs, projectIDs, serviceIDs, submissionIDs []uint
	for _, t := range tickets {
		clientIDs = appendID(clientIDs, t.ClientID)
		projectIDs = appendID(projectIDs, t.ProjectID)
		serviceIDs = appendID(serviceIDs, t.ServiceTypeID)
		submissionIDs = appendID(submissionIDs, t.SubmissionID)
	}

	clients := map[uint]string{}
	var clientRows []models.ClientModel
	if err := findByIDs(q, clientIDs, &clientRows); err != nil {
		return nil, err
	}
	for _, c := range clientRows {
		clients[c.ID] = c.Name
	}

	projects := map[uint]string{}
	var projectRows []models.ProjectModel
	if err := findByIDs(q, projectIDs, &projectRows); err != nil {
		return nil, err
	}
	for _, p := range projectRows {
		projects[p.ID] = p.Name
	}

	services := map[uint]string{}
	var serviceRows []models.ServiceTypeModel
	if err := findByIDs(q, serviceIDs, &serviceRows); err != nil {
		return nil, err
	}
	for _, s := range serviceRows {
		services[s.ID] = s.Name
	}

	submissions := map[uint]models.SubmissionModel{}
	var submissionRows []models.SubmissionModel
	if err := findByIDs(q, submissionIDs, &submissionRows); err != nil {
		return nil, err
	}
	for _, s := range submissionRows {
		submissions[s.ID] = s
	}

	rows := make([]spreadsheet.TicketRow, 0, len(tickets))
	for _, t := range tickets {
		row := spreadsheet.TicketRow{
			ID:          t.ID,
			Code:        t.Codigo,
			Status:      vo.TicketStatus(t.Estado).Label(),
			Client:      lookup(clients, t.ClientID),
			Project:     lookup(projects, t.ProjectID),
			ServiceType: lookup(services, t.ServiceTypeID),
			Requester:   t.Requester,
			ProjectLead: t.ProjectLead,
			Version:     t.VersionNumber,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
		if t.SubmissionID != nil {
			if s, ok := submissions[*t.SubmissionID]; ok {
				row.Functionality = s.ReleaseFunctionality
				row.ChangeDetail = s.ChangeDetail
				row.Justification = s.ChangeJustification
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteXLSX writes the filtered report as a workbook to w.
func (r *TicketReport) WriteXLSX(ctx context.Context, filter ticket.Filter, w io.Writer) error {
	rows, err := r.Rows(ctx, filter)
	if err != nil {
		return err
	}
	return spreadsheet.WriteTickets(w, rows)
}

func appendID(ids []uint, id *uint) []uint {
	if id == nil {
		return ids
	}
	return append(ids, *id)
}

func findByIDs(q *gorm.DB, ids []uint, dest interface{}) error {
	if len(ids) == 0 {
		return nil
	}
	if err := q.Where("id IN ?", ids).Find(dest).Error; err != nil {
		return fmt.Errorf("failed to load report references: %w", err)
	}
	return nil
}

func lookup(names map[uint]string, id *uint) string {
	if id == nil {
		return ""
	}
	return names[*id]
}
