package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
)

func TestTicketMapper_ModelCarriesKeyColumns(t *testing.T) {
	key, err := vo.NewSequenceKey("BID", "PRU", "EST", 3, "TEL", "OTR")
	require.NoError(t, err)
	clientID := uint(5)
	tk, err := ticket.NewTicket(key, 12, ticket.References{ClientID: &clientID}, ticket.Details{VersionNumber: "2.1"})
	require.NoError(t, err)

	m := NewTicketMapper()
	model := m.ToModel(tk)
	assert.Equal(t, "BID-PRU-EST-3-TEL-OTR-012", model.Codigo)
	assert.Equal(t, "PRU", model.TipoServicioCode)
	assert.Equal(t, "3", model.VersionCode)
	assert.Equal(t, 12, model.Consecutivo)
	assert.Equal(t, "GENERADO", model.Estado)

	model.ID = 44
	back, err := m.ToDomain(model)
	require.NoError(t, err)
	assert.Equal(t, key, back.Key())
	assert.Equal(t, uint(44), back.ID())
	assert.Equal(t, "2.1", back.Details().VersionNumber)
}

func TestTicketMapper_RejectsUnknownEstado(t *testing.T) {
	_, err := NewTicketMapper().ToDomain(&models.TicketModel{ID: 1, Codigo: "X", Estado: "ABIERTO"})
	assert.Error(t, err)
}

func TestCatalogMapper_Project(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	st := uint(3)
	p, err := catalog.NewProject(catalog.ProjectDetails{ClientID: 5, Name: "Portal", Code: "OTR", ServiceTypeID: &st, StartDate: &start})
	require.NoError(t, err)

	m := NewCatalogMapper()
	model := m.ProjectToModel(p)
	model.ID = 12
	back := m.ProjectToDomain(model)

	assert.Equal(t, uint(12), back.ID())
	assert.Equal(t, "OTR", back.Code())
	assert.Equal(t, &st, back.ServiceTypeID())
	assert.Equal(t, start, *back.StartDate())
	assert.Nil(t, m.ClientToDomain(nil))
}

func TestSubmissionMapper_KeepsRawText(t *testing.T) {
	s, err := submission.NewSnapshot(submission.FieldMap{
		submission.FieldClient:              "5",
		submission.FieldTestType:            "3",
		submission.FieldChangeJustification: "línea 1\nlínea 2",
	}, "PRU", "form.xlsx")
	require.NoError(t, err)

	m := NewSubmissionMapper()
	model := m.ToModel(s)
	assert.Equal(t, "5", model.Client)
	assert.Equal(t, "línea 1\nlínea 2", model.ChangeJustification)

	back := m.ToDomain(model)
	assert.Equal(t, s.Fields(), back.Fields())
	assert.Equal(t, "PRU", back.ServiceTag())
}
