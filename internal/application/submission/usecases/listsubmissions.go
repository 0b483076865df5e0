package usecases

import (
	"context"

	"github.com/bid-labs/ticketgen/internal/application/submission/dto"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/query"
)

type ListSubmissionsQuery struct {
	Search   string
	Page     int
	PageSize int
}

type ListSubmissionsResult struct {
	Submissions []*dto.SnapshotDTO
	Total       int64
	Page        int
	PageSize    int
}

type ListSubmissionsUseCase struct {
	submissionRepo submission.Repository
	logger         logger.Interface
}

func NewListSubmissionsUseCase(submissionRepo submission.Repository, logger logger.Interface) *ListSubmissionsUseCase {
	return &ListSubmissionsUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (uc *ListSubmissionsUseCase) Execute(ctx context.Context, q ListSubmissionsQuery) (*ListSubmissionsResult, error) {
	snaps, total, err := uc.submissionRepo.List(ctx, submission.Filter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list submissions", "error", err)
		return nil, errors.NewInternalError("failed to list submissions")
	}

	items := make([]*dto.SnapshotDTO, 0, len(snaps))
	for _, s := range snaps {
		items = append(items, dto.ToSnapshotDTO(s))
	}

	return &ListSubmissionsResult{
		Submissions: items,
		Total:       total,
		Page:        max(q.Page, 1),
		PageSize:    query.PageFilter{PageSize: q.PageSize}.Limit(),
	}, nil
}

type GetSubmissionUseCase struct {
	submissionRepo submission.Repository
}

func NewGetSubmissionUseCase(submissionRepo submission.Repository) *GetSubmissionUseCase {
	return &GetSubmissionUseCase{submissionRepo: submissionRepo}
}

func (uc *GetSubmissionUseCase) Execute(ctx context.Context, id uint) (*dto.SnapshotDTO, error) {
	if id == 0 {
		return nil, errors.NewValidationError("submission ID is required")
	}
	snap, err := uc.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToSnapshotDTO(snap), nil
}
