package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/mappers"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
	"github.com/bid-labs/ticketgen/internal/shared/db"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

type SubmissionRepository struct {
	db     *gorm.DB
	mapper mappers.SubmissionMapper
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		mapper: mappers.NewSubmissionMapper(),
	}
}

func (r *SubmissionRepository) Create(ctx context.Context, snapshot *submission.Snapshot) error {
	model := r.mapper.ToModel(snapshot)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return snapshot.SetID(model.ID)
}

func (r *SubmissionRepository) UpdateTicketCode(ctx context.Context, snapshot *submission.Snapshot) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SubmissionModel{}).
		Where("id = ?", snapshot.ID()).
		Update("ticket_code", snapshot.TicketCode())
	if result.Error != nil {
		return fmt.Errorf("failed to link submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("submission not found")
	}
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uint) (*submission.Snapshot, error) {
	var model models.SubmissionModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("submission not found")
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SubmissionRepository) List(ctx context.Context, filter submission.Filter) ([]*submission.Snapshot, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.SubmissionModel{}).
		Scopes(db.Search(filter.Search, "requester", "project_lead", "ticket_code", "source_name"))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	var list []models.SubmissionModel
	err := q.Order("extracted_at DESC").Order("id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]*submission.Snapshot, 0, len(list))
	for i := range list {
		out = append(out, r.mapper.ToDomain(&list[i]))
	}
	return out, total, nil
}
