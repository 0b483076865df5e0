package dto

import (
	"time"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
)

// ClientResponse represents a client
type ClientResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClientRequest represents the request to create a client
type CreateClientRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Code string `json:"code" binding:"required,max=5"`
}

// UpdateClientRequest carries the fields to change; nil fields are kept.
type UpdateClientRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=255"`
	Code   *string `json:"code" binding:"omitempty,max=5"`
	Active *bool   `json:"active"`
}

type ServiceTypeResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Nomenclature string    `json:"nomenclature"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateServiceTypeRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Nomenclature string `json:"nomenclature" binding:"required,max=10"`
}

type UpdateServiceTypeRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	Nomenclature *string `json:"nomenclature" binding:"omitempty,max=10"`
	Active       *bool   `json:"active"`
}

type ProjectResponse struct {
	ID            uint      `json:"id"`
	ClientID      uint      `json:"client_id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Nomenclature  string    `json:"nomenclature"`
	ServiceTypeID *uint     `json:"service_type_id"`
	Description   string    `json:"description"`
	Active        bool      `json:"active"`
	StartDate     *string   `json:"start_date"`
	EndDate       *string   `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateProjectRequest uses YYYY-MM-DD for dates.
type CreateProjectRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	Name          string `json:"name" binding:"required,max=255"`
	Code          string `json:"code" binding:"required,max=20"`
	Nomenclature  string `json:"nomenclature" binding:"omitempty,max=10"`
	ServiceTypeID *uint  `json:"service_type_id"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate       string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProjectRequest replaces a field only when it is present. An empty
// date string clears the date; ClearServiceType removes the service type.
type UpdateProjectRequest struct {
	ClientID         *uint   `json:"client_id"`
	Name             *string `json:"name" binding:"omitempty,max=255"`
	Code             *string `json:"code" binding:"omitempty,max=20"`
	Nomenclature     *string `json:"nomenclature" binding:"omitempty,max=10"`
	ServiceTypeID    *uint   `json:"service_type_id"`
	ClearServiceType bool    `json:"clear_service_type"`
	Description      *string `json:"description"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	Active           *bool   `json:"active"`
}

// ListRequest is shared by the catalog listings.
type ListRequest struct {
	Active   *bool
	Search   string
	ClientID *uint
	Sort     string
	Page     int
	PageSize int
}

func (r ListRequest) Filter() catalog.ListFilter {
	return catalog.ListFilter{
		Active:   r.Active,
		Search:   r.Search,
		ClientID: r.ClientID,
		Sort:     r.Sort,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

// ListResponse is a page of catalog rows.
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

func ToClientResponse(c *catalog.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID(),
		Name:      c.Name(),
		Code:      c.Code(),
		Active:    c.IsActive(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func ToServiceTypeResponse(s *catalog.ServiceType) *ServiceTypeResponse {
	return &ServiceTypeResponse{
		ID:           s.ID(),
		Name:         s.Name(),
		Nomenclature: s.Nomenclature(),
		Active:       s.IsActive(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

func ToProjectResponse(p *catalog.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:            p.ID(),
		ClientID:      p.ClientID(),
		Name:          p.Name(),
		Code:          p.Code(),
		Nomenclature:  p.Nomenclature(),
		ServiceTypeID: p.ServiceTypeID(),
		Description:   p.Description(),
		Active:        p.IsActive(),
		StartDate:     formatDate(p.StartDate()),
		EndDate:       formatDate(p.EndDate()),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.Format(*t, time.DateOnly)
	return &s
}
