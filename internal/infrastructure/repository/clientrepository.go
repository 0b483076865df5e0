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

var allowedCatalogOrderByFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const defaultCatalogOrder = "name ASC"

type ClientRepository struct {
	db     *gorm.DB
	mapper mappers.CatalogMapper
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{
		db:     db,
		mapper: mappers.NewCatalogMapper(),
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *catalog.Client) error {
	model := r.mapper.ClientToModel(client)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return errors.NewConflictError("client code already exists", client.Code())
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return client.SetID(model.ID)
}

func (r *ClientRepository) Update(ctx context.Context, client *catalog.Client) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ClientModel{}).
		Where("id = ?", client.ID()).
		Updates(map[string]interface{}{
			"name":       client.Name(),
			"code":       client.Code(),
			"active":     client.IsActive(),
			"updated_at": client.UpdatedAt(),
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return errors.NewConflictError("client code already exists", client.Code())
		}
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("client not found")
	}
	return nil
}

// Delete removes the client together with its projects. Tickets survive with
// their client and project references cleared. Callers should run it inside
// a transaction.
func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	projectIDs := tx.Model(&models.ProjectModel{}).Select("id").Where("client_id = ?", id)
	if err := tx.Model(&models.TicketModel{}).
		Where("project_id IN (?)", projectIDs).
		Update("project_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach project tickets: %w", err)
	}
	if err := tx.Model(&models.TicketModel{}).
		Where("client_id = ?", id).
		Update("client_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach client tickets: %w", err)
	}
	if err := tx.Where("client_id = ?", id).Delete(&models.ProjectModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete client projects: %w", err)
	}

	result := tx.Delete(&models.ClientModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("client not found")
	}
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*catalog.Client, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ClientRepository) GetByCode(ctx context.Context, code string) (*catalog.Client, error) {
	return r.first(ctx, "code = ?", catalog.NormalizeCode(code))
}

func (r *ClientRepository) first(ctx context.Context, cond string, arg interface{}) (*catalog.Client, error) {
	var model models.ClientModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("client not found")
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return r.mapper.ClientToDomain(&model), nil
}

func (r *ClientRepository) ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.ClientModel{}, excludeID, "code = ?", catalog.NormalizeCode(code))
}

func (r *ClientRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Client, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ClientModel{}).Scopes(
		db.ActiveOnly(filter.Active),
		db.Search(filter.Search, "name", "code"),
	)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	var list []models.ClientModel
	err := q.
		Order(query.ParseSort(filter.Sort).OrderClause(allowedCatalogOrderByFields, defaultCatalogOrder)).
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*catalog.Client, 0, len(list))
	for i := range list {
		clients = append(clients, r.mapper.ClientToDomain(&list[i]))
	}
	return clients, total, nil
}

// exists counts rows matching cond, ignoring excludeID when it is non-zero.
func exists(ctx context.Context, base *gorm.DB, model interface{}, excludeID uint, cond string, args ...interface{}) (bool, error) {
	var count int64
	q := db.GetTxFromContext(ctx, base).Model(model).Where(cond, args...)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return count > 0, nil
}
