package usecases

import (
	"context"
	"strings"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// AllocateTicketCommand issues the next ticket for catalog rows that were
// already resolved and checked by the caller.
type AllocateTicketCommand struct {
	ServiceTag   string
	Client       *catalog.Client
	Project      *catalog.Project
	TestType     *catalog.ServiceType
	Details      ticket.Details
	SubmissionID *uint
}

type AllocateTicketResult struct {
	Ticket *ticket.Ticket
	Code   string
}

type AllocateTicketUseCase struct {
	allocator   *Allocator
	txManager   TransactionRunner
	companyCode string
	logger      logger.Interface
}

func NewAllocateTicketUseCase(
	allocator *Allocator,
	txManager TransactionRunner,
	companyCode string,
	logger logger.Interface,
) *AllocateTicketUseCase {
	return &AllocateTicketUseCase{
		allocator:   allocator,
		txManager:   txManager,
		companyCode: companyCode,
		logger:      logger,
	}
}

func (uc *AllocateTicketUseCase) Execute(ctx context.Context, cmd AllocateTicketCommand) (*AllocateTicketResult, error) {
	if cmd.Client == nil || cmd.Project == nil || cmd.TestType == nil {
		return nil, errors.NewValidationError("client, project and test type are required")
	}

	key, err := BuildSequenceKey(uc.companyCode, cmd.ServiceTag, cmd.Client, cmd.Project, cmd.TestType)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("allocating ticket", "key", key.String(), "submission_id", cmd.SubmissionID)

	var issued *ticket.Ticket
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		t, err := uc.allocator.Next(ctx, Request{
			Key:          key,
			References:   referencesOf(cmd.Client, cmd.Project, cmd.TestType),
			Details:      cmd.Details,
			SubmissionID: cmd.SubmissionID,
		})
		if err != nil {
			return err
		}
		issued = t
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to allocate ticket", "key", key.String(), "error", err)
		return nil, toAppError(err, "failed to allocate ticket")
	}

	uc.logger.Infow("ticket allocated", "ticket_id", issued.ID(), "codigo", issued.Code())

	return &AllocateTicketResult{Ticket: issued, Code: issued.Code()}, nil
}

// BuildSequenceKey is the single definition of a numbering partition used by
// every ticket entry point. An empty serviceTag falls back to the test type
// nomenclature.
func BuildSequenceKey(company, serviceTag string, client *catalog.Client, project *catalog.Project, testType *catalog.ServiceType) (vo.SequenceKey, error) {
	serviceTag = strings.TrimSpace(serviceTag)
	if serviceTag == "" {
		serviceTag = testType.Nomenclature()
	}

	key, err := vo.NewSequenceKey(company, serviceTag, testType.Nomenclature(), testType.ID(), client.Code(), project.Code())
	if err != nil {
		return vo.SequenceKey{}, errors.NewValidationError(err.Error())
	}
	return key, nil
}

func referencesOf(client *catalog.Client, project *catalog.Project, testType *catalog.ServiceType) ticket.References {
	clientID, projectID, testTypeID := client.ID(), project.ID(), testType.ID()
	return ticket.References{
		ClientID:      &clientID,
		ProjectID:     &projectID,
		ServiceTypeID: &testTypeID,
	}
}
