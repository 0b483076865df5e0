package dto

import (
	"time"

	submissionDTO "github.com/bid-labs/ticketgen/internal/application/submission/dto"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
)

type TicketDTO struct {
	ID            uint              `json:"id"`
	Code          string            `json:"codigo"`
	Status        string            `json:"estado"`
	StatusLabel   string            `json:"estado_label"`
	Consecutive   int               `json:"consecutivo"`
	Parts         map[string]string `json:"parts"`
	ClientID      *uint             `json:"client_id"`
	ProjectID     *uint             `json:"project_id"`
	ServiceTypeID *uint             `json:"service_type_id"`
	Requester     string            `json:"requester"`
	ProjectLead   string            `json:"project_lead"`
	VersionNumber string            `json:"version_number"`
	SubmissionID  *uint             `json:"submission_id"`
	Submission    *SnapshotDTO      `json:"submission,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type TicketListItemDTO struct {
	ID          uint   `json:"id"`
	Code        string `json:"codigo"`
	Status      string `json:"estado"`
	StatusLabel string `json:"estado_label"`
	Requester   string `json:"requester"`
	ProjectLead string `json:"project_lead"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SnapshotDTO is the raw form a ticket was issued from.
type SnapshotDTO = submissionDTO.SnapshotDTO

type TicketStatsDTO struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	refs := t.References()
	details := t.Details()
	return &TicketDTO{
		ID:            t.ID(),
		Code:          t.Code(),
		Status:        t.Status().String(),
		StatusLabel:   t.Status().Label(),
		Consecutive:   t.Consecutive(),
		Parts:         t.Parts(),
		ClientID:      refs.ClientID,
		ProjectID:     refs.ProjectID,
		ServiceTypeID: refs.ServiceTypeID,
		Requester:     details.Requester,
		ProjectLead:   details.ProjectLead,
		VersionNumber: details.VersionNumber,
		SubmissionID:  t.SubmissionID(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) *TicketListItemDTO {
	if t == nil {
		return nil
	}

	return &TicketListItemDTO{
		ID:          t.ID(),
		Code:        t.Code(),
		Status:      t.Status().String(),
		StatusLabel: t.Status().Label(),
		Requester:   t.Details().Requester,
		ProjectLead: t.Details().ProjectLead,
		CreatedAt:   t.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt().Format(time.RFC3339),
	}
}

func ToSnapshotDTO(s *submission.Snapshot) *SnapshotDTO {
	return submissionDTO.ToSnapshotDTO(s)
}
