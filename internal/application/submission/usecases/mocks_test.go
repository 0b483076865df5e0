package usecases

import (
	"context"
	"time"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	apperrors "github.com/bid-labs/ticketgen/internal/shared/errors"
)

// Catalog fakes keyed by id. Only the lookups used by validation are backed;
// the rest satisfy the interfaces.

type mockClientRepository struct {
	catalog.ClientRepository
	rows    map[uint]*catalog.Client
	GetFunc func(ctx context.Context, id uint) (*catalog.Client, error)
}

func (m *mockClientRepository) GetByID(ctx context.Context, id uint) (*catalog.Client, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	if c, ok := m.rows[id]; ok {
		return c, nil
	}
	return nil, apperrors.NewNotFoundError("client not found")
}

type mockProjectRepository struct {
	catalog.ProjectRepository
	rows map[uint]*catalog.Project
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id uint) (*catalog.Project, error) {
	if p, ok := m.rows[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("project not found")
}

type mockServiceTypeRepository struct {
	catalog.ServiceTypeRepository
	rows map[uint]*catalog.ServiceType
}

func (m *mockServiceTypeRepository) GetByID(ctx context.Context, id uint) (*catalog.ServiceType, error) {
	if s, ok := m.rows[id]; ok {
		return s, nil
	}
	return nil, apperrors.NewNotFoundError("service type not found")
}

type catalogFixture struct {
	clients  *mockClientRepository
	projects *mockProjectRepository
	services *mockServiceTypeRepository
}

// newCatalogFixture holds client 5 TEL, project 12 OTR of client 5, service
// type 3 EST, inactive client 6 and project 20 of client 6.
func newCatalogFixture() *catalogFixture {
	now := time.Now().UTC()
	return &catalogFixture{
		clients: &mockClientRepository{rows: map[uint]*catalog.Client{
			5: catalog.ReconstructClient(5, "Telcel", "TEL", true, now, now),
			6: catalog.ReconstructClient(6, "Inactivo", "INA", false, now, now),
		}},
		projects: &mockProjectRepository{rows: map[uint]*catalog.Project{
			12: catalog.ReconstructProject(12, catalog.ProjectDetails{ClientID: 5, Name: "Otro", Code: "OTR"}, true, now, now),
			20: catalog.ReconstructProject(20, catalog.ProjectDetails{ClientID: 6, Name: "Ajeno", Code: "AJE"}, true, now, now),
		}},
		services: &mockServiceTypeRepository{rows: map[uint]*catalog.ServiceType{
			3: catalog.ReconstructServiceType(3, "Estres", "EST", true, now, now),
		}},
	}
}
