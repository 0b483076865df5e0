package catalog

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

// =====================================================================
// Service types
// =====================================================================

func (s *Service) CreateServiceType(ctx context.Context, req dto.CreateServiceTypeRequest) (*dto.ServiceTypeResponse, error) {
	s.logger.Infow("executing create service type", "nomenclature", req.Nomenclature)

	st, err := catalog.NewServiceType(req.Name, req.Nomenclature)
	if err != nil {
		return nil, domainError(err)
	}
	if err := s.ensureNomenclatureFree(ctx, st.Nomenclature(), 0); err != nil {
		return nil, err
	}
	if err := s.serviceTypes.Create(ctx, st); err != nil {
		s.logger.Errorw("failed to create service type", "nomenclature", st.Nomenclature(), "error", err)
		return nil, internalError(err, "failed to create service type")
	}
	return dto.ToServiceTypeResponse(st), nil
}

func (s *Service) UpdateServiceType(ctx context.Context, id uint, req dto.UpdateServiceTypeRequest) (*dto.ServiceTypeResponse, error) {
	st, err := s.serviceTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, nomenclature := st.Name(), st.Nomenclature()
	if req.Name != nil {
		name = *req.Name
	}
	if req.Nomenclature != nil {
		nomenclature = *req.Nomenclature
	}
	if err := st.Update(name, nomenclature); err != nil {
		return nil, domainError(err)
	}
	if req.Active != nil {
		st.SetActive(*req.Active)
	}
	if err := s.ensureNomenclatureFree(ctx, st.Nomenclature(), id); err != nil {
		return nil, err
	}
	if err := s.serviceTypes.Update(ctx, st); err != nil {
		s.logger.Errorw("failed to update service type", "id", id, "error", err)
		return nil, internalError(err, "failed to update service type")
	}
	return dto.ToServiceTypeResponse(st), nil
}

func (s *Service) DeleteServiceType(ctx context.Context, id uint) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.serviceTypes.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warnw("failed to delete service type", "id", id, "error", err)
		return internalError(err, "failed to delete service type")
	}
	return nil
}

func (s *Service) GetServiceType(ctx context.Context, id uint) (*dto.ServiceTypeResponse, error) {
	st, err := s.serviceTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToServiceTypeResponse(st), nil
}

func (s *Service) ListServiceTypes(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[*dto.ServiceTypeResponse], error) {
	list, total, err := s.serviceTypes.List(ctx, req.Filter())
	if err != nil {
		s.logger.Errorw("failed to list service types", "error", err)
		return nil, errors.NewInternalError("failed to list service types")
	}

	items := make([]*dto.ServiceTypeResponse, 0, len(list))
	for _, st := range list {
		items = append(items, dto.ToServiceTypeResponse(st))
	}
	return &dto.ListResponse[*dto.ServiceTypeResponse]{Items: items, Total: total}, nil
}

func (s *Service) ensureNomenclatureFree(ctx context.Context, nomenclature string, excludeID uint) error {
	taken, err := s.serviceTypes.ExistsByNomenclature(ctx, nomenclature, excludeID)
	if err != nil {
		return errors.NewInternalError("failed to check nomenclature")
	}
	if taken {
		return errors.NewConflictError("nomenclature already exists", nomenclature)
	}
	return nil
}
