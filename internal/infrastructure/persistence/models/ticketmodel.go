package models

import "time"

// TicketModel stores each code segment in its own column. The seven
// idx_tickets_sequence columns are unique together so two writers cannot
// claim the same consecutive.
type TicketModel struct {
	ID               uint      `gorm:"primaryKey"`
	Codigo           string    `gorm:"uniqueIndex:idx_tickets_codigo;size:100;not null"`
	EmpresaCode      string    `gorm:"size:10;not null;default:BID;uniqueIndex:idx_tickets_sequence,priority:1"`
	TipoServicioCode string    `gorm:"size:10;not null;uniqueIndex:idx_tickets_sequence,priority:2"`
	FuncionCode      string    `gorm:"size:20;not null;uniqueIndex:idx_tickets_sequence,priority:3"`
	VersionCode      string    `gorm:"size:10;not null;uniqueIndex:idx_tickets_sequence,priority:4"`
	ClienteCode      string    `gorm:"size:10;not null;uniqueIndex:idx_tickets_sequence,priority:5"`
	ProyectoCode     string    `gorm:"size:20;not null;uniqueIndex:idx_tickets_sequence,priority:6"`
	Consecutivo      int       `gorm:"not null;uniqueIndex:idx_tickets_sequence,priority:7"`
	Estado           string    `gorm:"size:20;not null;default:GENERADO;index"`
	Requester        string    `gorm:"size:255"`
	ProjectLead      string    `gorm:"size:255"`
	VersionNumber    string    `gorm:"size:255"`
	ClientID         *uint     `gorm:"index"`
	ProjectID        *uint     `gorm:"index"`
	ServiceTypeID    *uint     `gorm:"index"`
	SubmissionID     *uint     `gorm:"uniqueIndex:idx_tickets_submission"`
	CreatedAt        time.Time `gorm:"not null;index"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (TicketModel) TableName() string {
	return "tickets"
}
