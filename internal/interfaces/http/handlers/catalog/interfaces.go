package catalog

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
)

// Service is the catalog application service used by the handler.
type Service interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	UpdateClient(ctx context.Context, id uint, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id uint) error
	GetClient(ctx context.Context, id uint) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[*dto.ClientResponse], error)
	ClientProjects(ctx context.Context, clientID uint) ([]*dto.ProjectResponse, error)

	CreateServiceType(ctx context.Context, req dto.CreateServiceTypeRequest) (*dto.ServiceTypeResponse, error)
	UpdateServiceType(ctx context.Context, id uint, req dto.UpdateServiceTypeRequest) (*dto.ServiceTypeResponse, error)
	DeleteServiceType(ctx context.Context, id uint) error
	GetServiceType(ctx context.Context, id uint) (*dto.ServiceTypeResponse, error)
	ListServiceTypes(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[*dto.ServiceTypeResponse], error)

	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, id uint, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, id uint) error
	GetProject(ctx context.Context, id uint) (*dto.ProjectResponse, error)
	ListProjects(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[*dto.ProjectResponse], error)
}
