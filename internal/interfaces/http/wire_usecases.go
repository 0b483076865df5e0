package http

import (
	catalogApp "github.com/bid-labs/ticketgen/internal/application/catalog"
	exportUsecases "github.com/bid-labs/ticketgen/internal/application/export/usecases"
	submissionUsecases "github.com/bid-labs/ticketgen/internal/application/submission/usecases"
	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Catalog
	catalogService *catalogApp.Service

	// Ticket
	allocator         *ticketUsecases.Allocator
	allocateTicketUC  *ticketUsecases.AllocateTicketUseCase
	createTicketUC    *ticketUsecases.CreateManualTicketUseCase
	changeStatusUC    *ticketUsecases.ChangeStatusUseCase
	getTicketUC       *ticketUsecases.GetTicketUseCase
	listTicketsUC     *ticketUsecases.ListTicketsUseCase
	getTicketStatsUC  *ticketUsecases.GetTicketStatsUseCase
	nextConsecutiveUC *ticketUsecases.NextConsecutiveUseCase

	// Submission
	processSubmissionUC *submissionUsecases.ProcessSubmissionUseCase
	previewSubmissionUC *submissionUsecases.PreviewSubmissionUseCase
	listSubmissionsUC   *submissionUsecases.ListSubmissionsUseCase
	getSubmissionUC     *submissionUsecases.GetSubmissionUseCase

	// Export
	exportTicketsUC *exportUsecases.ExportTicketsUseCase
	exportTableUC   *exportUsecases.ExportTableUseCase
	backupUC        *exportUsecases.BackupUseCase
}
