package ticket

import (
	"fmt"
	"time"

	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
)

// References point at the catalog rows a ticket was issued for. They are
// nulled when the referent is deleted; the code segments keep the history.
type References struct {
	ClientID      *uint
	ProjectID     *uint
	ServiceTypeID *uint
}

// Details is free-text metadata copied from the request.
type Details struct {
	Requester     string
	ProjectLead   string
	VersionNumber string
}

type Ticket struct {
	id           uint
	codigo       string
	key          vo.SequenceKey
	consecutivo  int
	status       vo.TicketStatus
	refs         References
	details      Details
	submissionID *uint
	createdAt    time.Time
	updatedAt    time.Time
}

// NewTicket builds an unsaved ticket in GENERADO state.
func NewTicket(key vo.SequenceKey, consecutivo int, refs References, details Details) (*Ticket, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	codigo, err := vo.FormatCode(key, consecutivo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Ticket{
		codigo:      codigo,
		key:         key,
		consecutivo: consecutivo,
		status:      vo.StatusGenerado,
		refs:        refs,
		details:     details,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	codigo string,
	key vo.SequenceKey,
	consecutivo int,
	status vo.TicketStatus,
	refs References,
	details Details,
	submissionID *uint,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if codigo == "" {
		return nil, fmt.Errorf("ticket code is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	return &Ticket{
		id:           id,
		codigo:       codigo,
		key:          key,
		consecutivo:  consecutivo,
		status:       status,
		refs:         refs,
		details:      details,
		submissionID: submissionID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Code() string            { return t.codigo }
func (t *Ticket) Key() vo.SequenceKey     { return t.key }
func (t *Ticket) Consecutive() int        { return t.consecutivo }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) References() References  { return t.refs }
func (t *Ticket) Details() Details        { return t.details }
func (t *Ticket) SubmissionID() *uint     { return t.submissionID }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }

// Parts returns the code segments, with the consecutive zero-padded.
func (t *Ticket) Parts() map[string]string {
	return map[string]string{
		"empresa":       t.key.Empresa,
		"tipo_servicio": t.key.TipoServicio,
		"funcion":       t.key.Funcion,
		"version":       t.key.Version,
		"cliente":       t.key.Cliente,
		"proyecto":      t.key.Proyecto,
		"consecutivo":   fmt.Sprintf("%03d", t.consecutivo),
	}
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// LinkSubmission attaches the snapshot the ticket was issued from. A ticket
// links to at most one snapshot.
func (t *Ticket) LinkSubmission(submissionID uint) error {
	if submissionID == 0 {
		return fmt.Errorf("submission ID cannot be zero")
	}
	if t.submissionID != nil && *t.submissionID != submissionID {
		return fmt.Errorf("ticket %s is already linked to submission %d", t.codigo, *t.submissionID)
	}
	t.submissionID = &submissionID
	return nil
}

// ChangeStatus moves the ticket to newStatus. It reports false when the
// ticket already had that status, in which case nothing changes.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return false, nil
	}
	if !t.status.CanTransitionTo(newStatus) {
		return false, fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	t.status = newStatus
	t.updatedAt = time.Now().UTC()
	return true, nil
}
