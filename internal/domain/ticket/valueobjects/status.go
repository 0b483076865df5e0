package valueobjects

import "fmt"

// TicketStatus is the estado of a ticket.
type TicketStatus string

const (
	StatusGenerado   TicketStatus = "GENERADO"
	StatusEnProceso  TicketStatus = "EN_PROCESO"
	StatusCompletado TicketStatus = "COMPLETADO"
	StatusCancelado  TicketStatus = "CANCELADO"
)

var statusLabels = map[TicketStatus]string{
	StatusGenerado:   "Generado",
	StatusEnProceso:  "En Proceso",
	StatusCompletado: "Completado",
	StatusCancelado:  "Cancelado",
}

// AllStatuses lists the states in display order.
func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusGenerado, StatusEnProceso, StatusCompletado, StatusCancelado}
}

func NewTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %q", s)
	}
	return status, nil
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	_, ok := statusLabels[ts]
	return ok
}

// Label is the human readable name used in exports.
func (ts TicketStatus) Label() string {
	if l, ok := statusLabels[ts]; ok {
		return l
	}
	return string(ts)
}

// CanTransitionTo allows any move between valid states, including reopening
// completed or cancelled tickets.
func (ts TicketStatus) CanTransitionTo(next TicketStatus) bool {
	return ts.IsValid() && next.IsValid()
}
