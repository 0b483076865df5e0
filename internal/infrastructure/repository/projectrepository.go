package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/mappers"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
	"github.com/bid-labs/ticketgen/internal/shared/db"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/query"
)

type ProjectRepository struct {
	db     *gorm.DB
	mapper mappers.CatalogMapper
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		mapper: mappers.NewCatalogMapper(),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *catalog.Project) error {
	model := r.mapper.ProjectToModel(project)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return errors.NewConflictError("project already exists", project.Code())
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return project.SetID(model.ID)
}

func (r *ProjectRepository) Update(ctx context.Context, project *catalog.Project) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ProjectModel{}).
		Where("id = ?", project.ID()).
		Updates(map[string]interface{}{
			"client_id":       project.ClientID(),
			"name":            project.Name(),
			"code":            project.Code(),
			"nomenclature":    project.Nomenclature(),
			"service_type_id": project.ServiceTypeID(),
			"description":     project.Description(),
			"active":          project.IsActive(),
			"start_date":      project.StartDate(),
			"end_date":        project.EndDate(),
			"updated_at":      project.UpdatedAt(),
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return errors.NewConflictError("project already exists", project.Code())
		}
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("project not found")
	}
	return nil
}

// Delete clears the project from tickets before removing it.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TicketModel{}).
		Where("project_id = ?", id).
		Update("project_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach project tickets: %w", err)
	}

	result := tx.Delete(&models.ProjectModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*catalog.Project, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*catalog.Project, error) {
	return r.first(ctx, "code = ?", catalog.NormalizeCode(code))
}

func (r *ProjectRepository) first(ctx context.Context, cond string, arg interface{}) (*catalog.Project, error) {
	var model models.ProjectModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return r.mapper.ProjectToDomain(&model), nil
}

func (r *ProjectRepository) ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.ProjectModel{}, excludeID, "code = ?", catalog.NormalizeCode(code))
}

func (r *ProjectRepository) ExistsByClientAndName(ctx context.Context, clientID uint, name string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.ProjectModel{}, excludeID, "client_id = ? AND name = ?", clientID, name)
}

func (r *ProjectRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Project, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ProjectModel{}).Scopes(
		db.ActiveOnly(filter.Active),
		db.Search(filter.Search, "name", "code"),
	)
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var list []models.ProjectModel
	err := q.
		Order(query.ParseSort(filter.Sort).OrderClause(allowedCatalogOrderByFields, defaultCatalogOrder)).
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]*catalog.Project, 0, len(list))
	for i := range list {
		out = append(out, r.mapper.ProjectToDomain(&list[i]))
	}
	return out, total, nil
}
