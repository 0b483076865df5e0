package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Project belongs to exactly one client. Its code becomes the PROYECTO
// segment of a ticket code. Names are unique per client.
type Project struct {
	id            uint
	clientID      uint
	name          string
	code          string
	nomenclature  string
	serviceTypeID *uint
	description   string
	active        bool
	startDate     *time.Time
	endDate       *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// ProjectDetails carries the editable attributes of a project.
type ProjectDetails struct {
	ClientID      uint
	Name          string
	Code          string
	Nomenclature  string
	ServiceTypeID *uint
	Description   string
	StartDate     *time.Time
	EndDate       *time.Time
}

func NewProject(d ProjectDetails) (*Project, error) {
	p := &Project{active: true}
	if err := p.Update(d); err != nil {
		return nil, err
	}
	p.createdAt = p.updatedAt
	return p, nil
}

func ReconstructProject(id uint, d ProjectDetails, active bool, createdAt, updatedAt time.Time) *Project {
	return &Project{
		id:            id,
		clientID:      d.ClientID,
		name:          d.Name,
		code:          d.Code,
		nomenclature:  d.Nomenclature,
		serviceTypeID: d.ServiceTypeID,
		description:   d.Description,
		active:        active,
		startDate:     d.StartDate,
		endDate:       d.EndDate,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Project) ID() uint              { return p.id }
func (p *Project) ClientID() uint        { return p.clientID }
func (p *Project) Name() string          { return p.name }
func (p *Project) Code() string          { return p.code }
func (p *Project) Nomenclature() string  { return p.nomenclature }
func (p *Project) ServiceTypeID() *uint  { return p.serviceTypeID }
func (p *Project) Description() string   { return p.description }
func (p *Project) IsActive() bool        { return p.active }
func (p *Project) StartDate() *time.Time { return p.startDate }
func (p *Project) EndDate() *time.Time   { return p.endDate }
func (p *Project) CreatedAt() time.Time  { return p.createdAt }
func (p *Project) UpdatedAt() time.Time  { return p.updatedAt }

// BelongsTo reports whether the project is owned by clientID.
func (p *Project) BelongsTo(clientID uint) bool {
	return p.clientID == clientID
}

func (p *Project) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("project ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("project ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Project) Update(d ProjectDetails) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = NormalizeCode(d.Code)
	d.Nomenclature = NormalizeCode(d.Nomenclature)

	if d.ClientID == 0 {
		return fmt.Errorf("client is required")
	}
	if err := validateName("project name", d.Name); err != nil {
		return err
	}
	if err := validateCode("project code", d.Code, MaxProjectCodeLen); err != nil {
		return err
	}
	if d.Nomenclature != "" {
		if err := validateCode("project nomenclature", d.Nomenclature, MaxProjectNomenclature); err != nil {
			return err
		}
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return fmt.Errorf("end date cannot be before start date")
	}

	p.clientID = d.ClientID
	p.name = d.Name
	p.code = d.Code
	p.nomenclature = d.Nomenclature
	p.serviceTypeID = d.ServiceTypeID
	p.description = strings.TrimSpace(d.Description)
	p.startDate = d.StartDate
	p.endDate = d.EndDate
	p.updatedAt = now()
	return nil
}

func (p *Project) SetActive(active bool) {
	if p.active == active {
		return
	}
	p.active = active
	p.updatedAt = now()
}
