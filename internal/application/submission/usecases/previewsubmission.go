package usecases

import (
	"context"
	"strings"

	"github.com/bid-labs/ticketgen/internal/application/submission/dto"
	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// PreviewSubmissionCommand validates a workbook without issuing a ticket.
// ServiceTag is optional; with it the preview includes the code the form
// would receive now.
type PreviewSubmissionCommand struct {
	File       Upload
	ServiceTag string
}

type PreviewSubmissionUseCase struct {
	extractor   Extractor
	validator   *FieldValidator
	allocator   *ticketUsecases.Allocator
	companyCode string
	uploadDir   string
	logger      logger.Interface
}

func NewPreviewSubmissionUseCase(
	extractor Extractor,
	validator *FieldValidator,
	allocator *ticketUsecases.Allocator,
	companyCode string,
	uploadDir string,
	logger logger.Interface,
) *PreviewSubmissionUseCase {
	return &PreviewSubmissionUseCase{
		extractor:   extractor,
		validator:   validator,
		allocator:   allocator,
		companyCode: companyCode,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

func (uc *PreviewSubmissionUseCase) Execute(ctx context.Context, cmd PreviewSubmissionCommand) (*dto.PreviewDTO, error) {
	var tag string
	if strings.TrimSpace(cmd.ServiceTag) != "" {
		var err error
		if tag, err = normalizeServiceTag(cmd.ServiceTag); err != nil {
			return nil, err
		}
	}

	resolved, err := extractAndValidate(ctx, uc.extractor, uc.validator, uc.uploadDir, cmd.File)
	if err != nil {
		uc.logger.Infow("submission preview rejected", "file", cmd.File.Name, "error", err)
		return nil, toAppError(err)
	}

	preview := &dto.PreviewDTO{
		Fields:   dto.FieldsToMap(resolved.Fields),
		Resolved: dto.ToResolvedDTO(resolved.Client, resolved.Project, resolved.TestType),
	}

	if tag != "" {
		key, err := ticketUsecases.BuildSequenceKey(uc.companyCode, tag, resolved.Client, resolved.Project, resolved.TestType)
		if err != nil {
			return nil, err
		}
		n, err := uc.allocator.Peek(ctx, key)
		if err != nil {
			return nil, errors.NewConflictError(err.Error())
		}
		if preview.NextCode, err = vo.FormatCode(key, n); err != nil {
			return nil, errors.NewInternalError("failed to format ticket code", err.Error())
		}
	}

	return preview, nil
}
