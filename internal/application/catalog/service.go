// Package catalog maintains the reference data submissions are resolved
// against.
package catalog

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// TransactionRunner runs fn in a single database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service aggregates client, project and service type maintenance.
type Service struct {
	clients      catalog.ClientRepository
	projects     catalog.ProjectRepository
	serviceTypes catalog.ServiceTypeRepository
	txManager    TransactionRunner
	logger       logger.Interface
}

// NewService creates a new catalog service
func NewService(
	clients catalog.ClientRepository,
	projects catalog.ProjectRepository,
	serviceTypes catalog.ServiceTypeRepository,
	txManager TransactionRunner,
	logger logger.Interface,
) *Service {
	return &Service{
		clients:      clients,
		projects:     projects,
		serviceTypes: serviceTypes,
		txManager:    txManager,
		logger:       logger,
	}
}

// domainError turns an entity invariant failure into a validation error.
// AppErrors from repositories pass through unchanged.
func domainError(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewValidationError(err.Error())
}

// internalError keeps AppErrors and hides anything else behind message.
func internalError(err error, message string) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewInternalError(message)
}
