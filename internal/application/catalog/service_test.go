package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bid-labs/ticketgen/internal/application/catalog/dto"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/testdb"
	"github.com/bid-labs/ticketgen/internal/infrastructure/repository"
	"github.com/bid-labs/ticketgen/internal/shared/db"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gdb := testdb.New(t)
	return NewService(
		repository.NewClientRepository(gdb),
		repository.NewProjectRepository(gdb),
		repository.NewServiceTypeRepository(gdb),
		db.NewTransactionManager(gdb),
		logger.Nop(),
	)
}

func ptr[T any](v T) *T { return &v }

func TestService_CreateClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Telcel", Code: "tel"})
	require.NoError(t, err)
	assert.Equal(t, "TEL", created.Code)
	assert.True(t, created.Active)

	_, err = svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Otro", Code: "TEL"})
	assert.True(t, errors.IsConflictError(err))

	_, err = svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Largo", Code: "TOOLONG"})
	assert.True(t, errors.IsValidationError(err))
}

func TestService_UpdateClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tel, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Telcel", Code: "TEL"})
	require.NoError(t, err)
	ban, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Banco", Code: "BAN"})
	require.NoError(t, err)

	updated, err := svc.UpdateClient(ctx, tel.ID, dto.UpdateClientRequest{Name: ptr("Telcel MX"), Active: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Telcel MX", updated.Name)
	assert.Equal(t, "TEL", updated.Code)
	assert.False(t, updated.Active)

	_, err = svc.UpdateClient(ctx, ban.ID, dto.UpdateClientRequest{Code: ptr("tel")})
	assert.True(t, errors.IsConflictError(err))

	_, err = svc.UpdateClient(ctx, 999, dto.UpdateClientRequest{Name: ptr("X")})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_ListClients(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, c := range []dto.CreateClientRequest{{Name: "Telcel", Code: "TEL"}, {Name: "Banco", Code: "BAN"}, {Name: "Aseguradora", Code: "ASE"}} {
		_, err := svc.CreateClient(ctx, c)
		require.NoError(t, err)
	}

	all, err := svc.ListClients(ctx, dto.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	assert.Equal(t, "Aseguradora", all.Items[0].Name)

	found, err := svc.ListClients(ctx, dto.ListRequest{Search: "ban"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "BAN", found.Items[0].Code)
}

func TestService_CreateProject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tel, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Telcel", Code: "TEL"})
	require.NoError(t, err)
	est, err := svc.CreateServiceType(ctx, dto.CreateServiceTypeRequest{Name: "Estrés", Nomenclature: "est"})
	require.NoError(t, err)

	project, err := svc.CreateProject(ctx, dto.CreateProjectRequest{
		ClientID:      tel.ID,
		Name:          "Portal",
		Code:          "otr",
		ServiceTypeID: &est.ID,
		StartDate:     "2025-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "OTR", project.Code)
	require.NotNil(t, project.StartDate)
	assert.Equal(t, "2025-01-15", *project.StartDate)
	assert.Nil(t, project.EndDate)

	tests := []struct {
		name    string
		req     dto.CreateProjectRequest
		checkFn func(error) bool
	}{
		{"duplicate code", dto.CreateProjectRequest{ClientID: tel.ID, Name: "Otro", Code: "OTR"}, errors.IsConflictError},
		{"duplicate name for client", dto.CreateProjectRequest{ClientID: tel.ID, Name: "Portal", Code: "POR"}, errors.IsConflictError},
		{"unknown client", dto.CreateProjectRequest{ClientID: 99, Name: "X", Code: "X"}, errors.IsValidationError},
		{"unknown service type", dto.CreateProjectRequest{ClientID: tel.ID, Name: "X", Code: "X", ServiceTypeID: ptr(uint(99))}, errors.IsValidationError},
		{"bad date", dto.CreateProjectRequest{ClientID: tel.ID, Name: "X", Code: "X", StartDate: "15/01/2025"}, errors.IsValidationError},
		{"end before start", dto.CreateProjectRequest{ClientID: tel.ID, Name: "X", Code: "X", StartDate: "2025-02-01", EndDate: "2025-01-01"}, errors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProject(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
		})
	}
}

func TestService_UpdateProject(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tel, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Telcel", Code: "TEL"})
	require.NoError(t, err)
	est, err := svc.CreateServiceType(ctx, dto.CreateServiceTypeRequest{Name: "Estrés", Nomenclature: "EST"})
	require.NoError(t, err)
	project, err := svc.CreateProject(ctx, dto.CreateProjectRequest{ClientID: tel.ID, Name: "Portal", Code: "OTR", ServiceTypeID: &est.ID, StartDate: "2025-01-15"})
	require.NoError(t, err)

	updated, err := svc.UpdateProject(ctx, project.ID, dto.UpdateProjectRequest{
		Description:      ptr("Nuevo portal"),
		ClearServiceType: true,
		StartDate:        ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo portal", updated.Description)
	assert.Nil(t, updated.ServiceTypeID)
	assert.Nil(t, updated.StartDate)
	assert.Equal(t, "OTR", updated.Code)
}

func TestService_ClientProjects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tel, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Telcel", Code: "TEL"})
	require.NoError(t, err)
	ban, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Banco", Code: "BAN"})
	require.NoError(t, err)

	_, err = svc.CreateProject(ctx, dto.CreateProjectRequest{ClientID: tel.ID, Name: "Portal", Code: "POR"})
	require.NoError(t, err)
	old, err := svc.CreateProject(ctx, dto.CreateProjectRequest{ClientID: tel.ID, Name: "Viejo", Code: "VIE"})
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, dto.CreateProjectRequest{ClientID: ban.ID, Name: "Banca", Code: "BNC"})
	require.NoError(t, err)

	_, err = svc.UpdateProject(ctx, old.ID, dto.UpdateProjectRequest{Active: ptr(false)})
	require.NoError(t, err)

	projects, err := svc.ClientProjects(ctx, tel.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "POR", projects[0].Code)

	_, err = svc.ClientProjects(ctx, 999)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_DeleteClientCascadesProjects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tel, err := svc.CreateClient(ctx, dto.CreateClientRequest{Name: "Telcel", Code: "TEL"})
	require.NoError(t, err)
	project, err := svc.CreateProject(ctx, dto.CreateProjectRequest{ClientID: tel.ID, Name: "Portal", Code: "POR"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClient(ctx, tel.ID))

	_, err = svc.GetClient(ctx, tel.ID)
	assert.True(t, errors.IsNotFoundError(err))
	_, err = svc.GetProject(ctx, project.ID)
	assert.True(t, errors.IsNotFoundError(err))

	assert.True(t, errors.IsNotFoundError(svc.DeleteClient(ctx, tel.ID)))
}

func TestService_ServiceTypes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	est, err := svc.CreateServiceType(ctx, dto.CreateServiceTypeRequest{Name: "Estrés", Nomenclature: "EST"})
	require.NoError(t, err)
	fun, err := svc.CreateServiceType(ctx, dto.CreateServiceTypeRequest{Name: "Funcional", Nomenclature: "FUN"})
	require.NoError(t, err)

	_, err = svc.CreateServiceType(ctx, dto.CreateServiceTypeRequest{Name: "Otra", Nomenclature: "est"})
	assert.True(t, errors.IsConflictError(err))

	_, err = svc.UpdateServiceType(ctx, fun.ID, dto.UpdateServiceTypeRequest{Nomenclature: ptr("EST")})
	assert.True(t, errors.IsConflictError(err))

	renamed, err := svc.UpdateServiceType(ctx, est.ID, dto.UpdateServiceTypeRequest{Name: ptr("Carga")})
	require.NoError(t, err)
	assert.Equal(t, "Carga", renamed.Name)

	active, err := svc.ListServiceTypes(ctx, dto.ListRequest{Active: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), active.Total)

	require.NoError(t, svc.DeleteServiceType(ctx, fun.ID))
	_, err = svc.GetServiceType(ctx, fun.ID)
	assert.True(t, errors.IsNotFoundError(err))
}
