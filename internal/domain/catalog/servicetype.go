package catalog

import (
	"fmt"
	"strings"
	"time"
)

// ServiceType is a kind of test service. Its nomenclature doubles as the
// FUNCION segment of a ticket code and its id as the VERSION segment.
type ServiceType struct {
	id           uint
	name         string
	nomenclature string
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewServiceType(name, nomenclature string) (*ServiceType, error) {
	s := &ServiceType{active: true}
	if err := s.Update(name, nomenclature); err != nil {
		return nil, err
	}
	s.createdAt = s.updatedAt
	return s, nil
}

func ReconstructServiceType(id uint, name, nomenclature string, active bool, createdAt, updatedAt time.Time) *ServiceType {
	return &ServiceType{
		id:           id,
		name:         name,
		nomenclature: nomenclature,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *ServiceType) ID() uint             { return s.id }
func (s *ServiceType) Name() string         { return s.name }
func (s *ServiceType) Nomenclature() string { return s.nomenclature }
func (s *ServiceType) IsActive() bool       { return s.active }
func (s *ServiceType) CreatedAt() time.Time { return s.createdAt }
func (s *ServiceType) UpdatedAt() time.Time { return s.updatedAt }

func (s *ServiceType) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("service type ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("service type ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *ServiceType) Update(name, nomenclature string) error {
	name = strings.TrimSpace(name)
	nomenclature = NormalizeCode(nomenclature)
	if err := validateName("service type name", name); err != nil {
		return err
	}
	if err := validateCode("nomenclature", nomenclature, MaxServiceNomenclature); err != nil {
		return err
	}
	s.name = name
	s.nomenclature = nomenclature
	s.updatedAt = now()
	return nil
}

func (s *ServiceType) SetActive(active bool) {
	if s.active == active {
		return
	}
	s.active = active
	s.updatedAt = now()
}
