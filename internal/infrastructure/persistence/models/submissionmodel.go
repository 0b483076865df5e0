package models

import "time"

// SubmissionModel is the audit copy of a submitted request form. Identifier
// columns hold the raw text from the workbook, not foreign keys.
type SubmissionModel struct {
	ID                   uint      `gorm:"primaryKey"`
	Client               string    `gorm:"size:255"`
	Project              string    `gorm:"size:255"`
	TestType             string    `gorm:"size:255"`
	ServiceTag           string    `gorm:"size:10;not null"`
	Requester            string    `gorm:"size:255"`
	ProjectLead          string    `gorm:"size:255"`
	ApplicationType      string    `gorm:"size:255"`
	Version              string    `gorm:"size:255"`
	ReleaseFunctionality string    `gorm:"type:text"`
	ChangeDetail         string    `gorm:"type:text"`
	ChangeJustification  string    `gorm:"type:text"`
	SourceName           string    `gorm:"size:255"`
	TicketCode           string    `gorm:"size:100;index"`
	ExtractedAt          time.Time `gorm:"not null;index"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}
