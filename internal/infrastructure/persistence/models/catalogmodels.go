package models

import "time"

type ClientModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Code      string    `gorm:"uniqueIndex:idx_clients_code;size:5;not null"`
	Active    bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ClientModel) TableName() string {
	return "clients"
}

type ServiceTypeModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Nomenclature string    `gorm:"uniqueIndex:idx_service_types_nomenclature;size:10;not null"`
	Active       bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (ServiceTypeModel) TableName() string {
	return "service_types"
}

type ProjectModel struct {
	ID            uint       `gorm:"primaryKey"`
	ClientID      uint       `gorm:"not null;uniqueIndex:idx_projects_client_name,priority:1"`
	Name          string     `gorm:"size:255;not null;uniqueIndex:idx_projects_client_name,priority:2"`
	Code          string     `gorm:"uniqueIndex:idx_projects_code;size:20;not null"`
	Nomenclature  string     `gorm:"size:10"`
	ServiceTypeID *uint      `gorm:"index"`
	Description   string     `gorm:"type:text"`
	Active        bool       `gorm:"not null;default:true;index"`
	StartDate     *time.Time `gorm:"type:date"`
	EndDate       *time.Time `gorm:"type:date"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`

	// Note: No foreign key constraints or associations.
	// Cascades on client deletion are applied by the repository.
}

func (ProjectModel) TableName() string {
	return "projects"
}
