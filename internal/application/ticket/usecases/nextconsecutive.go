package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// NextConsecutiveQuery previews the number the next ticket for a key would get.
type NextConsecutiveQuery struct {
	ClientID      uint
	ProjectID     uint
	ServiceTypeID uint
	ServiceCode   string
}

type NextConsecutiveResult struct {
	Key         string `json:"key"`
	Consecutive int    `json:"consecutivo"`
	Code        string `json:"codigo"`
}

type NextConsecutiveUseCase struct {
	clients      catalog.ClientRepository
	projects     catalog.ProjectRepository
	serviceTypes catalog.ServiceTypeRepository
	allocator    *Allocator
	companyCode  string
	logger       logger.Interface
}

func NewNextConsecutiveUseCase(
	clients catalog.ClientRepository,
	projects catalog.ProjectRepository,
	serviceTypes catalog.ServiceTypeRepository,
	allocator *Allocator,
	companyCode string,
	logger logger.Interface,
) *NextConsecutiveUseCase {
	return &NextConsecutiveUseCase{
		clients:      clients,
		projects:     projects,
		serviceTypes: serviceTypes,
		allocator:    allocator,
		companyCode:  companyCode,
		logger:       logger,
	}
}

func (uc *NextConsecutiveUseCase) Execute(ctx context.Context, query NextConsecutiveQuery) (*NextConsecutiveResult, error) {
	if query.ClientID == 0 || query.ProjectID == 0 || query.ServiceTypeID == 0 {
		return nil, errors.NewValidationError("client_id, project_id and service_type_id are required")
	}

	client, err := uc.clients.GetByID(ctx, query.ClientID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByID(ctx, query.ProjectID)
	if err != nil {
		return nil, err
	}
	serviceType, err := uc.serviceTypes.GetByID(ctx, query.ServiceTypeID)
	if err != nil {
		return nil, err
	}

	key, err := BuildSequenceKey(uc.companyCode, query.ServiceCode, client, project, serviceType)
	if err != nil {
		return nil, err
	}

	n, err := uc.allocator.Peek(ctx, key)
	if err != nil {
		return nil, toAppError(err, "failed to compute next consecutive")
	}
	code, err := vo.FormatCode(key, n)
	if err != nil {
		return nil, errors.NewInternalError("failed to format ticket code", err.Error())
	}

	return &NextConsecutiveResult{
		Key:         key.String(),
		Consecutive: n,
		Code:        code,
	}, nil
}
