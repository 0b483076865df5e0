package mappers

import (
	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
)

// CatalogMapper converts catalog entities to and from persistence models.
type CatalogMapper interface {
	ClientToModel(c *catalog.Client) *models.ClientModel
	ClientToDomain(m *models.ClientModel) *catalog.Client
	ProjectToModel(p *catalog.Project) *models.ProjectModel
	ProjectToDomain(m *models.ProjectModel) *catalog.Project
	ServiceTypeToModel(s *catalog.ServiceType) *models.ServiceTypeModel
	ServiceTypeToDomain(m *models.ServiceTypeModel) *catalog.ServiceType
}

type CatalogMapperImpl struct{}

func NewCatalogMapper() CatalogMapper {
	return &CatalogMapperImpl{}
}

func (m *CatalogMapperImpl) ClientToModel(c *catalog.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:        c.ID(),
		Name:      c.Name(),
		Code:      c.Code(),
		Active:    c.IsActive(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func (m *CatalogMapperImpl) ClientToDomain(model *models.ClientModel) *catalog.Client {
	if model == nil {
		return nil
	}
	return catalog.ReconstructClient(model.ID, model.Name, model.Code, model.Active, model.CreatedAt, model.UpdatedAt)
}

func (m *CatalogMapperImpl) ProjectToModel(p *catalog.Project) *models.ProjectModel {
	return &models.ProjectModel{
		ID:            p.ID(),
		ClientID:      p.ClientID(),
		Name:          p.Name(),
		Code:          p.Code(),
		Nomenclature:  p.Nomenclature(),
		ServiceTypeID: p.ServiceTypeID(),
		Description:   p.Description(),
		Active:        p.IsActive(),
		StartDate:     p.StartDate(),
		EndDate:       p.EndDate(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func (m *CatalogMapperImpl) ProjectToDomain(model *models.ProjectModel) *catalog.Project {
	if model == nil {
		return nil
	}
	return catalog.ReconstructProject(model.ID, catalog.ProjectDetails{
		ClientID:      model.ClientID,
		Name:          model.Name,
		Code:          model.Code,
		Nomenclature:  model.Nomenclature,
		ServiceTypeID: model.ServiceTypeID,
		Description:   model.Description,
		StartDate:     model.StartDate,
		EndDate:       model.EndDate,
	}, model.Active, model.CreatedAt, model.UpdatedAt)
}

func (m *CatalogMapperImpl) ServiceTypeToModel(s *catalog.ServiceType) *models.ServiceTypeModel {
	return &models.ServiceTypeModel{
		ID:           s.ID(),
		Name:         s.Name(),
		Nomenclature: s.Nomenclature(),
		Active:       s.IsActive(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

func (m *CatalogMapperImpl) ServiceTypeToDomain(model *models.ServiceTypeModel) *catalog.ServiceType {
	if model == nil {
		return nil
	}
	return catalog.ReconstructServiceType(model.ID, model.Name, model.Nomenclature, model.Active, model.CreatedAt, model.UpdatedAt)
}
