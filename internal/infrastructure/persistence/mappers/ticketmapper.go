package mappers

import (
	"fmt"

	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	key := t.Key()
	refs := t.References()
	details := t.Details()
	return &models.TicketModel{
		ID:               t.ID(),
		Codigo:           t.Code(),
		EmpresaCode:      key.Empresa,
		TipoServicioCode: key.TipoServicio,
		FuncionCode:      key.Funcion,
		VersionCode:      key.Version,
		ClienteCode:      key.Cliente,
		ProyectoCode:     key.Proyecto,
		Consecutivo:      t.Consecutive(),
		Estado:           t.Status().String(),
		Requester:        details.Requester,
		ProjectLead:      details.ProjectLead,
		VersionNumber:    details.VersionNumber,
		ClientID:         refs.ClientID,
		ProjectID:        refs.ProjectID,
		ServiceTypeID:    refs.ServiceTypeID,
		SubmissionID:     t.SubmissionID(),
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}
	t, err := ticket.ReconstructTicket(
		model.ID,
		model.Codigo,
		KeyFromModel(model),
		model.Consecutivo,
		vo.TicketStatus(model.Estado),
		ticket.References{
			ClientID:      model.ClientID,
			ProjectID:     model.ProjectID,
			ServiceTypeID: model.ServiceTypeID,
		},
		ticket.Details{
			Requester:     model.Requester,
			ProjectLead:   model.ProjectLead,
			VersionNumber: model.VersionNumber,
		},
		model.SubmissionID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(list))
	for i := range list {
		t, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// KeyFromModel reads the six sequence columns.
func KeyFromModel(model *models.TicketModel) vo.SequenceKey {
	return vo.SequenceKey{
		Empresa:      model.EmpresaCode,
		TipoServicio: model.TipoServicioCode,
		Funcion:      model.FuncionCode,
		Version:      model.VersionCode,
		Cliente:      model.ClienteCode,
		Proyecto:     model.ProyectoCode,
	}
}
