package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/domain/catalog"
	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/domain/ticket"
	vo "github.com/bid-labs/ticketgen/internal/domain/ticket/valueobjects"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/testdb"
	"github.com/bid-labs/ticketgen/internal/infrastructure/repository"
)

func seed(t *testing.T, gdb *gorm.DB) *ticket.Ticket {
	t.Helper()
	ctx := context.Background()

	client, err := catalog.NewClient("Telcel, S.A.", "TEL")
	require.NoError(t, err)
	require.NoError(t, repository.NewClientRepository(gdb).Create(ctx, client))

	st, err := catalog.NewServiceType("Estres", "EST")
	require.NoError(t, err)
	require.NoError(t, repository.NewServiceTypeRepository(gdb).Create(ctx, st))

	project, err := catalog.NewProject(catalog.ProjectDetails{ClientID: client.ID(), Name: "Otro", Code: "OTR"})
	require.NoError(t, err)
	require.NoError(t, repository.NewProjectRepository(gdb).Create(ctx, project))

	fields := submission.NewFieldMap()
	fields[submission.FieldChangeDetail] = "linea 1\nlinea 2"
	snap, err := submission.NewSnapshot(fields, "PRU", "form.xlsx")
	require.NoError(t, err)
	require.NoError(t, repository.NewSubmissionRepository(gdb).Create(ctx, snap))

	key, err := vo.NewSequenceKey("BID", "PRU", "EST", st.ID(), "TEL", "OTR")
	require.NoError(t, err)
	cid, pid, sid := client.ID(), project.ID(), st.ID()
	tk, err := ticket.NewTicket(key, 1, ticket.References{ClientID: &cid, ProjectID: &pid, ServiceTypeID: &sid},
		ticket.Details{Requester: "Ana"})
	require.NoError(t, err)
	require.NoError(t, tk.LinkSubmission(snap.ID()))
	require.NoError(t, repository.NewTicketRepository(gdb).Create(ctx, tk))
	return tk
}

func readCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(raw, []byte(utf8BOM)), "missing BOM")
	records, err := csv.NewReader(bytes.NewReader(raw[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestTableExporter_WriteCSV(t *testing.T) {
	gdb := testdb.New(t)
	seed(t, gdb)
	e := NewTableExporter(gdb)

	var buf bytes.Buffer
	require.NoError(t, e.WriteCSV(context.Background(), TableClient, &buf))
	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "name", "code", "active", "created_at", "updated_at"}, records[0])
	assert.Equal(t, "Telcel, S.A.", records[1][1])
	assert.Equal(t, "true", records[1][3])

	buf.Reset()
	require.NoError(t, e.WriteCSV(context.Background(), TableTicket, &buf))
	records = readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "BID-PRU-EST-1-TEL-OTR-001", records[1][1])
	assert.Equal(t, "1", records[1][8])

	buf.Reset()
	require.NoError(t, e.WriteCSV(context.Background(), TableProject, &buf))
	records = readCSV(t, buf.Bytes())
	assert.Equal(t, "", records[1][5], "null service type renders empty")
}

func TestTableExporter_UnknownTable(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableExporter(testdb.New(t)).WriteCSV(context.Background(), "users", &buf)
	assert.ErrorIs(t, err, ErrUnknownTable)
	assert.Zero(t, buf.Len())
	assert.False(t, IsTable("users"))
	assert.True(t, IsTable(TableSnapshot))
}

func TestTableExporter_WriteBackup(t *testing.T) {
	gdb := testdb.New(t)
	seed(t, gdb)

	var buf bytes.Buffer
	require.NoError(t, NewTableExporter(gdb).WriteBackup(context.Background(), &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		assert.Equal(t, zip.Deflate, f.Method)
	}
	assert.Equal(t, []string{"client.csv", "project.csv", "servicetype.csv", "snapshot.csv", "ticket.csv"}, names)

	rc, err := zr.File[3].Open()
	require.NoError(t, err)
	defer rc.Close()
	var snap bytes.Buffer
	_, err = snap.ReadFrom(rc)
	require.NoError(t, err)
	assert.True(t, strings.Contains(snap.String(), "linea 1\nlinea 2"))
}

func TestTicketReport_Rows(t *testing.T) {
	gdb := testdb.New(t)
	tk := seed(t, gdb)

	rows, err := NewTicketReport(gdb).Rows(context.Background(), ticket.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, tk.ID(), row.ID)
	assert.Equal(t, "Generado", row.Status)
	assert.Equal(t, "Telcel, S.A.", row.Client)
	assert.Equal(t, "Otro", row.Project)
	assert.Equal(t, "Estres", row.ServiceType)
	assert.Equal(t, "linea 1\nlinea 2", row.ChangeDetail)

	status := vo.StatusCancelado
	rows, err = NewTicketReport(gdb).Rows(context.Background(), ticket.Filter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
