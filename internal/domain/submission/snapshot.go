package submission

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is the raw, unresolved copy of a submitted form kept for audit.
// Client, project and test type stay as the text typed in the workbook; the
// resolved catalog rows live on the ticket.
type Snapshot struct {
	id          uint
	fields      FieldMap
	serviceTag  string
	sourceName  string
	ticketCode  string
	extractedAt time.Time
}

func NewSnapshot(fields FieldMap, serviceTag, sourceName string) (*Snapshot, error) {
	serviceTag = strings.ToUpper(strings.TrimSpace(serviceTag))
	if serviceTag == "" {
		return nil, fmt.Errorf("service type tag is required")
	}
	if len(serviceTag) > 10 {
		return nil, fmt.Errorf("service type tag cannot exceed 10 characters")
	}
	all := NewFieldMap()
	for k, v := range fields {
		all[k] = v
	}
	return &Snapshot{
		fields:      all,
		serviceTag:  serviceTag,
		sourceName:  sourceName,
		extractedAt: time.Now().UTC(),
	}, nil
}

func ReconstructSnapshot(id uint, fields FieldMap, serviceTag, sourceName, ticketCode string, extractedAt time.Time) *Snapshot {
	return &Snapshot{
		id:          id,
		fields:      fields.Clone(),
		serviceTag:  serviceTag,
		sourceName:  sourceName,
		ticketCode:  ticketCode,
		extractedAt: extractedAt,
	}
}

func (s *Snapshot) ID() uint                 { return s.id }
func (s *Snapshot) Fields() FieldMap         { return s.fields.Clone() }
func (s *Snapshot) Field(f FieldName) string { return s.fields.Get(f) }
func (s *Snapshot) ServiceTag() string       { return s.serviceTag }
func (s *Snapshot) SourceName() string       { return s.sourceName }
func (s *Snapshot) TicketCode() string       { return s.ticketCode }
func (s *Snapshot) ExtractedAt() time.Time   { return s.extractedAt }

func (s *Snapshot) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("snapshot ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("snapshot ID cannot be zero")
	}
	s.id = id
	return nil
}

// LinkTicket records the code issued for this snapshot. It is the only
// mutation allowed after creation and happens once.
func (s *Snapshot) LinkTicket(code string) error {
	if code == "" {
		return fmt.Errorf("ticket code is required")
	}
	if s.ticketCode != "" && s.ticketCode != code {
		return fmt.Errorf("snapshot already linked to ticket %s", s.ticketCode)
	}
	s.ticketCode = code
	return nil
}
