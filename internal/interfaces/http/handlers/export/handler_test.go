package export

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	ticketUsecases "github.com/bid-labs/ticketgen/internal/application/ticket/usecases"
	"github.com/bid-labs/ticketgen/internal/interfaces/http/handlers/testutil"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

type mockTicketsUC struct {
	got ticketUsecases.ListTicketsQuery
	err error
}

func (m *mockTicketsUC) Execute(_ context.Context, q ticketUsecases.ListTicketsQuery, w io.Writer) error {
	m.got = q
	if m.err != nil {
		return m.err
	}
	_, _ = io.WriteString(w, "PK-xlsx")
	return nil
}

type mockTableUC struct {
	known   map[string]bool
	written string
	err     error
}

func (m *mockTableUC) Validate(table string) error {
	if !m.known[table] {
		return errors.NewNotFoundError("unknown table", table)
	}
	return nil
}

func (m *mockTableUC) Execute(_ context.Context, table string, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	m.written = table
	_, _ = io.WriteString(w, "id,name\n1,Telcel\n")
	return nil
}

type mockBackupUC struct {
	err error
}

func (m *mockBackupUC) Execute(_ context.Context, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	_, _ = io.WriteString(w, "PK-zip")
	return nil
}

func newHandler(tickets *mockTicketsUC, tables *mockTableUC, backup *mockBackupUC) *Handler {
	return NewHandler(tickets, tables, backup, testutil.NewMockLogger())
}

func TestHandler_Tickets(t *testing.T) {
	tickets := &mockTicketsUC{}
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/exports/tickets.xlsx", nil)
	testutil.SetQueryParams(c, map[string]string{"estado": "completado", "project_id": "12"})

	newHandler(tickets, &mockTableUC{}, &mockBackupUC{}).Tickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="tickets_`)
	assert.Equal(t, "PK-xlsx", w.Body.String())
	assert.Equal(t, "COMPLETADO", tickets.got.Status)
}

func TestHandler_Tickets_Error(t *testing.T) {
	tickets := &mockTicketsUC{err: errors.NewInternalError("failed to export tickets")}
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/exports/tickets.xlsx", nil)

	newHandler(tickets, &mockTableUC{}, &mockBackupUC{}).Tickets(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestHandler_Table(t *testing.T) {
	tests := []struct {
		name       string
		param      string
		wantStatus int
		wantTable  string
	}{
		{"plain name", "client", http.StatusOK, "client"},
		{"csv suffix and case", "Client.CSV", http.StatusOK, "client"},
		{"unknown", "users", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := &mockTableUC{known: map[string]bool{"client": true}}
			c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/exports/tables/"+tt.param, nil)
			testutil.SetURLParam(c, "table", tt.param)

			newHandler(&mockTicketsUC{}, tables, &mockBackupUC{}).Table(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantTable, tables.written)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, constants.ContentTypeCSV, w.Header().Get("Content-Type"))
				assert.Contains(t, w.Body.String(), "1,Telcel")
			}
		})
	}
}

func TestHandler_Table_FailsBeforeWrite(t *testing.T) {
	tables := &mockTableUC{known: map[string]bool{"ticket": true}, err: errors.NewInternalError("failed to export table")}
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/exports/tables/ticket", nil)
	testutil.SetURLParam(c, "table", "ticket")

	newHandler(&mockTicketsUC{}, tables, &mockBackupUC{}).Table(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestHandler_Backup(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/exports/backup.zip", nil)

	newHandler(&mockTicketsUC{}, &mockTableUC{}, &mockBackupUC{}).Backup(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeZIP, w.Header().Get("Content-Type"))
	assert.Equal(t, "PK-zip", w.Body.String())
}
