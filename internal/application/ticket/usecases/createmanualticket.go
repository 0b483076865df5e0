package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/bid-labs/ticketgen/internal/application/ticket/dto"
	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// CreateManualTicketCommand creates a ticket from catalog ids instead of a
// workbook. ServiceCode defaults to the service type nomenclature. When
// Consecutive is nil the next free number is allocated.
type CreateManualTicketCommand struct {
	ClientID      uint
	ProjectID     uint
	ServiceTypeID uint
	ServiceCode   string
	Consecutive   *int
	Requester     string
	ProjectLead   string
	VersionNumber string
}

type CreateManualTicketUseCase struct {
	clients      catalog.ClientRepository
	projects     catalog.ProjectRepository
	serviceTypes catalog.ServiceTypeRepository
	allocator    *Allocator
	txManager    TransactionRunner
	companyCode  string
	logger       logger.Interface
}

func NewCreateManualTicketUseCase(
	clients catalog.ClientRepository,
	projects catalog.ProjectRepository,
	serviceTypes catalog.ServiceTypeRepository,
	allocator *Allocator,
	txManager TransactionRunner,
	companyCode string,
	logger logger.Interface,
) *CreateManualTicketUseCase {
	return &CreateManualTicketUseCase{
		clients:      clients,
		projects:     projects,
		serviceTypes: serviceTypes,
		allocator:    allocator,
		txManager:    txManager,
		companyCode:  companyCode,
		logger:       logger,
	}
}

func (uc *CreateManualTicketUseCase) Execute(ctx context.Context, cmd CreateManualTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create manual ticket use case",
		"client_id", cmd.ClientID,
		"project_id", cmd.ProjectID,
		"service_type_id", cmd.ServiceTypeID,
		"consecutivo", cmd.Consecutive,
	)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create manual ticket command", "error", err)
		return nil, err
	}

	client, project, serviceType, err := uc.resolve(ctx, cmd)
	if err != nil {
		return nil, err
	}

	key, err := BuildSequenceKey(uc.companyCode, cmd.ServiceCode, client, project, serviceType)
	if err != nil {
		return nil, err
	}

	req := Request{
		Key:        key,
		References: referencesOf(client, project, serviceType),
		Details: ticket.Details{
			Requester:     strings.TrimSpace(cmd.Requester),
			ProjectLead:   strings.TrimSpace(cmd.ProjectLead),
			VersionNumber: strings.TrimSpace(cmd.VersionNumber),
		},
	}

	var created *ticket.Ticket
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		if cmd.Consecutive != nil {
			created, err = uc.allocator.Reserve(ctx, req, *cmd.Consecutive)
		} else {
			created, err = uc.allocator.Next(ctx, req)
		}
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to create manual ticket", "key", key.String(), "error", err)
		return nil, toAppError(err, "failed to create ticket")
	}

	uc.logger.Infow("manual ticket created", "ticket_id", created.ID(), "codigo", created.Code())

	return dto.ToTicketDTO(created), nil
}

func (uc *CreateManualTicketUseCase) validateCommand(cmd CreateManualTicketCommand) error {
	if cmd.ClientID == 0 {
		return errors.NewValidationError("client_id is required")
	}
	if cmd.ProjectID == 0 {
		return errors.NewValidationError("project_id is required")
	}
	if cmd.ServiceTypeID == 0 {
		return errors.NewValidationError("service_type_id is required")
	}
	if cmd.Consecutive != nil && (*cmd.Consecutive < 1 || *cmd.Consecutive > 999) {
		return errors.NewValidationError("consecutivo must be between 1 and 999")
	}
	return nil
}

// resolve loads the three catalog rows and checks they may issue tickets.
func (uc *CreateManualTicketUseCase) resolve(ctx context.Context, cmd CreateManualTicketCommand) (*catalog.Client, *catalog.Project, *catalog.ServiceType, error) {
	client, err := uc.clients.GetByID(ctx, cmd.ClientID)
	if err != nil {
		return nil, nil, nil, err
	}
	project, err := uc.projects.GetByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, nil, nil, err
	}
	serviceType, err := uc.serviceTypes.GetByID(ctx, cmd.ServiceTypeID)
	if err != nil {
		return nil, nil, nil, err
	}

	if !project.BelongsTo(client.ID()) {
		return nil, nil, nil, errors.NewValidationError(
			fmt.Sprintf("project %s does not belong to client %s", project.Code(), client.Code()))
	}

	var inactive []string
	if !client.IsActive() {
		inactive = append(inactive, "client "+client.Code())
	}
	if !project.IsActive() {
		inactive = append(inactive, "project "+project.Code())
	}
	if !serviceType.IsActive() {
		inactive = append(inactive, "service type "+serviceType.Nomenclature())
	}
	if len(inactive) > 0 {
		return nil, nil, nil, errors.NewValidationError("inactive catalog entries", strings.Join(inactive, ", "))
	}

	return client, project, serviceType, nil
}
