package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/mappers"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
	"github.com/bid-labs/ticketgen/internal/shared/db"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/query"
)

// allowedTicketOrderByFields maps public sort names to columns.
var allowedTicketOrderByFields = map[string]string{
	"id":          "id",
	"codigo":      "codigo",
	"estado":      "estado",
	"consecutivo": "consecutivo",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

const defaultTicketOrder = "created_at DESC"

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

// Create inserts inside a nested transaction, which gorm runs as a savepoint
// when the context already carries one. A unique violation therefore leaves
// the outer transaction usable for another attempt.
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Transaction(func(inner *gorm.DB) error {
		return inner.Create(model).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ticket.ErrConsecutiveTaken, t.Code())
		}
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", t.ID()).
		Updates(map[string]interface{}{
			"estado":        t.Status().String(),
			"submission_id": t.SubmissionID(),
			"updated_at":    t.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("ticket not found")
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	return r.first(ctx, "codigo = ?", code)
}

func (r *TicketRepository) first(ctx context.Context, cond string, arg interface{}) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func sequenceScope(key vo.SequenceKey) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"empresa_code = ? AND tipo_servicio_code = ? AND funcion_code = ? AND version_code = ? AND cliente_code = ? AND proyecto_code = ?",
			key.Empresa, key.TipoServicio, key.Funcion, key.Version, key.Cliente, key.Proyecto,
		)
	}
}

func (r *TicketRepository) MaxConsecutive(ctx context.Context, key vo.SequenceKey) (int, error) {
	var max int
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.TicketModel{}).
		Scopes(sequenceScope(key)).
		Select("COALESCE(MAX(consecutivo), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max consecutive: %w", err)
	}
	return max, nil
}

func (r *TicketRepository) ExistsConsecutive(ctx context.Context, key vo.SequenceKey, consecutivo int) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.TicketModel{}).
		Scopes(sequenceScope(key)).
		Where("consecutivo = ?", consecutivo).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check consecutive: %w", err)
	}
	return count > 0, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.TicketModel{}).Scopes(TicketFilterScope(filter))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var list []models.TicketModel
	err := q.
		Order(query.ParseSort(filter.Sort).OrderClause(allowedTicketOrderByFields, defaultTicketOrder)).
		Order("id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// TicketFilterScope applies the list filters shared by listing and export.
func TicketFilterScope(filter ticket.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.Status != nil {
			q = q.Where("estado = ?", filter.Status.String())
		}
		if filter.ClientID != nil {
			q = q.Where("client_id = ?", *filter.ClientID)
		}
		if filter.ProjectID != nil {
			q = q.Where("project_id = ?", *filter.ProjectID)
		}
		return q.Scopes(db.Search(filter.Search, "codigo", "requester", "project_lead"))
	}
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	type row struct {
		Estado string
		Total  int64
	}
	var rows []row
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Model(&models.TicketModel{}).
		Select("estado, COUNT(*) AS total").
		Group("estado").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(vo.AllStatuses()))
	for _, s := range vo.AllStatuses() {
		counts[s] = 0
	}
	for _, r := range rows {
		counts[vo.TicketStatus(r.Estado)] = r.Total
	}
	return counts, nil
}
