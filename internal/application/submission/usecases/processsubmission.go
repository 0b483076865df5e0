package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bid-labs/ticketgen/internal/application/submission/dto"
	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

const maxServiceTagLen = 10

type ProcessSubmissionCommand struct {
	File       Upload
	ServiceTag string
}

// ProcessSubmissionUseCase turns an uploaded request workbook into a ticket.
// Nothing is written unless extraction and validation succeed, and the
// snapshot, the ticket and the link between them commit together.
type ProcessSubmissionUseCase struct {
	extractor      Extractor
	validator      *FieldValidator
	allocator      TicketAllocator
	submissionRepo submission.Repository
	txManager      TransactionRunner
	uploadDir      string
	logger         logger.Interface
}

func NewProcessSubmissionUseCase(
	extractor Extractor,
	validator *FieldValidator,
	allocator TicketAllocator,
	submissionRepo submission.Repository,
	txManager TransactionRunner,
	uploadDir string,
	logger logger.Interface,
) *ProcessSubmissionUseCase {
	return &ProcessSubmissionUseCase{
		extractor:      extractor,
		validator:      validator,
		allocator:      allocator,
		submissionRepo: submissionRepo,
		txManager:      txManager,
		uploadDir:      uploadDir,
		logger:         logger,
	}
}

func (uc *ProcessSubmissionUseCase) Execute(ctx context.Context, cmd ProcessSubmissionCommand) (*dto.SubmissionResultDTO, error) {
	source := filepath.Base(cmd.File.Name)
	uc.logger.Infow("executing process submission use case", "file", source, "service_type", cmd.ServiceTag)

	tag, err := normalizeServiceTag(cmd.ServiceTag)
	if err != nil {
		return nil, err
	}

	resolved, err := extractAndValidate(ctx, uc.extractor, uc.validator, uc.uploadDir, cmd.File)
	if err != nil {
		uc.logger.Warnw("submission rejected", "file", source, "error", err)
		return nil, toAppError(err)
	}

	var (
		snapshot *submission.Snapshot
		issued   *ticket.Ticket
	)
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		snap, err := submission.NewSnapshot(resolved.Fields, tag, source)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.submissionRepo.Create(ctx, snap); err != nil {
			return err
		}

		submissionID := snap.ID()
		res, err := uc.allocator.Execute(ctx, ticketUsecases.AllocateTicketCommand{
			ServiceTag:   tag,
			Client:       resolved.Client,
			Project:      resolved.Project,
			TestType:     resolved.TestType,
			Details:      detailsOf(resolved.Fields),
			SubmissionID: &submissionID,
		})
		if err != nil {
			return err
		}

		if err := snap.LinkTicket(res.Code); err != nil {
			return err
		}
		if err := uc.submissionRepo.UpdateTicketCode(ctx, snap); err != nil {
			return err
		}

		snapshot, issued = snap, res.Ticket
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to persist submission", "file", source, "error", err)
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to persist submission", err.Error())
	}

	uc.logger.Infow("submission processed",
		"submission_id", snapshot.ID(),
		"ticket_id", issued.ID(),
		"codigo", issued.Code(),
	)

	return &dto.SubmissionResultDTO{
		SubmissionID: snapshot.ID(),
		TicketID:     issued.ID(),
		TicketCode:   issued.Code(),
		Consecutive:  issued.Consecutive(),
		Fields:       dto.FieldsToMap(resolved.Fields),
		Resolved:     dto.ToResolvedDTO(resolved.Client, resolved.Project, resolved.TestType),
	}, nil
}

// extractAndValidate stages the upload, extracts it and resolves its
// identifiers. The staged file is gone when it returns.
func extractAndValidate(ctx context.Context, extractor Extractor, validator *FieldValidator, dir string, up Upload) (*Resolved, error) {
	path, cleanup, err := stage(dir, up)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	fields, err := extractor.ExtractFile(ctx, path)
	if err != nil {
		var sheetErr *submission.SheetNotFoundError
		if stderrors.As(err, &sheetErr) {
			return nil, err
		}
		return nil, errors.NewBadRequestError("could not read workbook", err.Error())
	}

	return validator.Validate(ctx, fields)
}

func normalizeServiceTag(tag string) (string, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	switch {
	case tag == "":
		return "", errors.NewValidationError("service_type is required")
	case len(tag) > maxServiceTagLen:
		return "", errors.NewValidationError(fmt.Sprintf("service_type cannot exceed %d characters", maxServiceTagLen))
	case strings.Contains(tag, "-"):
		return "", errors.NewValidationError("service_type cannot contain '-'")
	}
	return tag, nil
}

func detailsOf(fields submission.FieldMap) ticket.Details {
	return ticket.Details{
		Requester:     fields.Get(submission.FieldRequester),
		ProjectLead:   fields.Get(submission.FieldProjectLead),
		VersionNumber: fields.Get(submission.FieldVersion),
	}
}
