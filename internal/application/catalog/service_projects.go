package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/shared/biztime"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

// =====================================================================
// Projects
// =====================================================================

func (s *Service) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	s.logger.Infow("executing create project", "client_id", req.ClientID, "code", req.Code)

	details := catalog.ProjectDetails{
		ClientID:      req.ClientID,
		Name:          req.Name,
		Code:          req.Code,
		Nomenclature:  req.Nomenclature,
		ServiceTypeID: req.ServiceTypeID,
		Description:   req.Description,
	}
	var err error
	if details.StartDate, err = parseOptionalDate("start_date", req.StartDate); err != nil {
		return nil, err
	}
	if details.EndDate, err = parseOptionalDate("end_date", req.EndDate); err != nil {
		return nil, err
	}

	project, err := catalog.NewProject(details)
	if err != nil {
		return nil, domainError(err)
	}
	if err := s.checkProjectRefs(ctx, project, 0); err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		s.logger.Errorw("failed to create project", "code", project.Code(), "error", err)
		return nil, internalError(err, "failed to create project")
	}

	s.logger.Infow("project created", "id", project.ID(), "code", project.Code())
	return dto.ToProjectResponse(project), nil
}

func (s *Service) UpdateProject(ctx context.Context, id uint, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := catalog.ProjectDetails{
		ClientID:      project.ClientID(),
		Name:          project.Name(),
		Code:          project.Code(),
		Nomenclature:  project.Nomenclature(),
		ServiceTypeID: project.ServiceTypeID(),
		Description:   project.Description(),
		StartDate:     project.StartDate(),
		EndDate:       project.EndDate(),
	}
	if req.ClientID != nil {
		details.ClientID = *req.ClientID
	}
	if req.Name != nil {
		details.Name = *req.Name
	}
	if req.Code != nil {
		details.Code = *req.Code
	}
	if req.Nomenclature != nil {
		details.Nomenclature = *req.Nomenclature
	}
	if req.Description != nil {
		details.Description = *req.Description
	}
	if req.ClearServiceType {
		details.ServiceTypeID = nil
	} else if req.ServiceTypeID != nil {
		details.ServiceTypeID = req.ServiceTypeID
	}
	if req.StartDate != nil {
		if details.StartDate, err = parseOptionalDate("start_date", *req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if details.EndDate, err = parseOptionalDate("end_date", *req.EndDate); err != nil {
			return nil, err
		}
	}

	if err := project.Update(details); err != nil {
		return nil, domainError(err)
	}
	if req.Active != nil {
		project.SetActive(*req.Active)
	}
	if err := s.checkProjectRefs(ctx, project, id); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		s.logger.Errorw("failed to update project", "id", id, "error", err)
		return nil, internalError(err, "failed to update project")
	}
	return dto.ToProjectResponse(project), nil
}

func (s *Service) DeleteProject(ctx context.Context, id uint) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.projects.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warnw("failed to delete project", "id", id, "error", err)
		return internalError(err, "failed to delete project")
	}
	return nil
}

func (s *Service) GetProject(ctx context.Context, id uint) (*dto.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(project), nil
}

func (s *Service) ListProjects(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[*dto.ProjectResponse], error) {
	list, total, err := s.projects.List(ctx, req.Filter())
	if err != nil {
		s.logger.Errorw("failed to list projects", "error", err)
		return nil, errors.NewInternalError("failed to list projects")
	}

	items := make([]*dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToProjectResponse(p))
	}
	return &dto.ListResponse[*dto.ProjectResponse]{Items: items, Total: total}, nil
}

// checkProjectRefs verifies the owning client and service type exist and
// that code and (client, name) stay unique.
func (s *Service) checkProjectRefs(ctx context.Context, p *catalog.Project, excludeID uint) error {
	if _, err := s.clients.GetByID(ctx, p.ClientID()); err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewValidationError(fmt.Sprintf("client %d does not exist", p.ClientID()))
		}
		return internalError(err, "failed to load client")
	}
	if id := p.ServiceTypeID(); id != nil {
		if _, err := s.serviceTypes.GetByID(ctx, *id); err != nil {
			if errors.IsNotFoundError(err) {
				return errors.NewValidationError(fmt.Sprintf("service type %d does not exist", *id))
			}
			return internalError(err, "failed to load service type")
		}
	}

	taken, err := s.projects.ExistsByCode(ctx, p.Code(), excludeID)
	if err != nil {
		return errors.NewInternalError("failed to check project code")
	}
	if taken {
		return errors.NewConflictError("project code already exists", p.Code())
	}

	taken, err = s.projects.ExistsByClientAndName(ctx, p.ClientID(), p.Name(), excludeID)
	if err != nil {
		return errors.NewInternalError("failed to check project name")
	}
	if taken {
		return errors.NewConflictError("client already has a project with this name", p.Name())
	}
	return nil
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(value)
	if err != nil {
		return nil, errors.NewValidationError(field + ": " + err.Error())
	}
	return &t, nil
}
