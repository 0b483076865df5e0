package dto

import (
	"time"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
)

// ResolvedDTO lists the catalog rows a form resolved to and the codes they
// contribute to the ticket code.
type ResolvedDTO struct {
	ClientID     uint   `json:"client_id"`
	ClientCode   string `json:"client_code"`
	ProjectID    uint   `json:"project_id"`
	ProjectCode  string `json:"project_code"`
	TestTypeID   uint   `json:"test_type_id"`
	TestTypeCode string `json:"test_type_code"`
	TestTypeName string `json:"test_type_name"`
	ClientName   string `json:"client_name"`
	ProjectName  string `json:"project_name"`
}

type SubmissionResultDTO struct {
	SubmissionID uint              `json:"submission_id"`
	TicketID     uint              `json:"ticket_id"`
	TicketCode   string            `json:"ticket_code"`
	Consecutive  int               `json:"consecutivo"`
	Fields       map[string]string `json:"fields"`
	Resolved     ResolvedDTO       `json:"resolved"`
}

type PreviewDTO struct {
	Fields   map[string]string `json:"fields"`
	Resolved ResolvedDTO       `json:"resolved"`
	// NextCode is set when a service type tag was supplied.
	NextCode string `json:"next_code,omitempty"`
}

type SnapshotDTO struct {
	ID          uint              `json:"id"`
	ServiceTag  string            `json:"service_type"`
	SourceName  string            `json:"source_name"`
	TicketCode  string            `json:"ticket_code"`
	Fields      map[string]string `json:"fields"`
	ExtractedAt time.Time         `json:"extracted_at"`
}

func FieldsToMap(fields submission.FieldMap) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[string(k)] = v
	}
	return out
}

func ToResolvedDTO(client *catalog.Client, project *catalog.Project, testType *catalog.ServiceType) ResolvedDTO {
	return ResolvedDTO{
		ClientID:     client.ID(),
		ClientCode:   client.Code(),
		ClientName:   client.Name(),
		ProjectID:    project.ID(),
		ProjectCode:  project.Code(),
		ProjectName:  project.Name(),
		TestTypeID:   testType.ID(),
		TestTypeCode: testType.Nomenclature(),
		TestTypeName: testType.Name(),
	}
}

func ToSnapshotDTO(s *submission.Snapshot) *SnapshotDTO {
	if s == nil {
		return nil
	}
	return &SnapshotDTO{
		ID:          s.ID(),
		ServiceTag:  s.ServiceTag(),
		SourceName:  s.SourceName(),
		TicketCode:  s.TicketCode(),
		Fields:      FieldsToMap(s.Fields()),
		ExtractedAt: s.ExtractedAt(),
	}
}
