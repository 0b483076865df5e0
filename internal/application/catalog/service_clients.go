package catalog

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

// =====================================================================
// Clients
// =====================================================================

func (s *Service) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	s.logger.Infow("executing create client", "code", req.Code)

	client, err := catalog.NewClient(req.Name, req.Code)
	if err != nil {
		return nil, domainError(err)
	}
	if err := s.ensureClientCodeFree(ctx, client.Code(), 0); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, client); err != nil {
		s.logger.Errorw("failed to create client", "code", client.Code(), "error", err)
		return nil, internalError(err, "failed to create client")
	}

	s.logger.Infow("client created", "id", client.ID(), "code", client.Code())
	return dto.ToClientResponse(client), nil
}

func (s *Service) UpdateClient(ctx context.Context, id uint, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, code := client.Name(), client.Code()
	if req.Name != nil {
		name = *req.Name
	}
	if req.Code != nil {
		code = *req.Code
	}
	if err := client.Update(name, code); err != nil {
		return nil, domainError(err)
	}
	if req.Active != nil {
		client.SetActive(*req.Active)
	}
	if err := s.ensureClientCodeFree(ctx, client.Code(), id); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, client); err != nil {
		s.logger.Errorw("failed to update client", "id", id, "error", err)
		return nil, internalError(err, "failed to update client")
	}
	return dto.ToClientResponse(client), nil
}

// DeleteClient removes the client and its projects. Issued tickets keep
// their codes.
func (s *Service) DeleteClient(ctx context.Context, id uint) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.clients.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warnw("failed to delete client", "id", id, "error", err)
		return internalError(err, "failed to delete client")
	}
	s.logger.Infow("client deleted", "id", id)
	return nil
}

func (s *Service) GetClient(ctx context.Context, id uint) (*dto.ClientResponse, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToClientResponse(client), nil
}

func (s *Service) ListClients(ctx context.Context, req dto.ListRequest) (*dto.ListResponse[*dto.ClientResponse], error) {
	clients, total, err := s.clients.List(ctx, req.Filter())
	if err != nil {
		s.logger.Errorw("failed to list clients", "error", err)
		return nil, errors.NewInternalError("failed to list clients")
	}

	items := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, dto.ToClientResponse(c))
	}
	return &dto.ListResponse[*dto.ClientResponse]{Items: items, Total: total}, nil
}

// ClientProjects returns the active projects of a client.
func (s *Service) ClientProjects(ctx context.Context, clientID uint) ([]*dto.ProjectResponse, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	active := true
	projects, _, err := s.projects.List(ctx, catalog.ListFilter{ClientID: &clientID, Active: &active})
	if err != nil {
		s.logger.Errorw("failed to list client projects", "client_id", clientID, "error", err)
		return nil, errors.NewInternalError("failed to list projects")
	}

	items := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, dto.ToProjectResponse(p))
	}
	return items, nil
}

func (s *Service) ensureClientCodeFree(ctx context.Context, code string, excludeID uint) error {
	taken, err := s.clients.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return errors.NewInternalError("failed to check client code")
	}
	if taken {
		return errors.NewConflictError("client code already exists", code)
	}
	return nil
}
