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

type ServiceTypeRepository struct {
	db     *gorm.DB
	mapper mappers.CatalogMapper
}

func NewServiceTypeRepository(db *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{
		db:     db,
		mapper: mappers.NewCatalogMapper(),
	}
}

func (r *ServiceTypeRepository) Create(ctx context.Context, st *catalog.ServiceType) error {
	model := r.mapper.ServiceTypeToModel(st)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return errors.NewConflictError("service type nomenclature already exists", st.Nomenclature())
		}
		return fmt.Errorf("failed to create service type: %w", err)
	}
	return st.SetID(model.ID)
}

func (r *ServiceTypeRepository) Update(ctx context.Context, st *catalog.ServiceType) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ServiceTypeModel{}).
		Where("id = ?", st.ID()).
		Updates(map[string]interface{}{
			"name":         st.Name(),
			"nomenclature": st.Nomenclature(),
			"active":       st.IsActive(),
			"updated_at":   st.UpdatedAt(),
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return errors.NewConflictError("service type nomenclature already exists", st.Nomenclature())
		}
		return fmt.Errorf("failed to update service type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("service type not found")
	}
	return nil
}

// Delete clears the service type from tickets and projects before removing it.
func (r *ServiceTypeRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TicketModel{}).
		Where("service_type_id = ?", id).
		Update("service_type_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach service type tickets: %w", err)
	}
	if err := tx.Model(&models.ProjectModel{}).
		Where("service_type_id = ?", id).
		Update("service_type_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach service type projects: %w", err)
	}

	result := tx.Delete(&models.ServiceTypeModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("service type not found")
	}
	return nil
}

func (r *ServiceTypeRepository) GetByID(ctx context.Context, id uint) (*catalog.ServiceType, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ServiceTypeRepository) GetByNomenclature(ctx context.Context, nomenclature string) (*catalog.ServiceType, error) {
	return r.first(ctx, "nomenclature = ?", catalog.NormalizeCode(nomenclature))
}

func (r *ServiceTypeRepository) first(ctx context.Context, cond string, arg interface{}) (*catalog.ServiceType, error) {
	var model models.ServiceTypeModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("service type not found")
		}
		return nil, fmt.Errorf("failed to find service type: %w", err)
	}
	return r.mapper.ServiceTypeToDomain(&model), nil
}

func (r *ServiceTypeRepository) ExistsByNomenclature(ctx context.Context, nomenclature string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.ServiceTypeModel{}, excludeID, "nomenclature = ?", catalog.NormalizeCode(nomenclature))
}

func (r *ServiceTypeRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.ServiceType, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ServiceTypeModel{}).Scopes(
		db.ActiveOnly(filter.Active),
		db.Search(filter.Search, "name", "nomenclature"),
	)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count service types: %w", err)
	}

	var list []models.ServiceTypeModel
	err := q.
		Order(query.ParseSort(filter.Sort).OrderClause(allowedCatalogOrderByFields, defaultCatalogOrder)).
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service types: %w", err)
	}

	out := make([]*catalog.ServiceType, 0, len(list))
	for i := range list {
		out = append(out, r.mapper.ServiceTypeToDomain(&list[i]))
	}
	return out, total, nil
}
