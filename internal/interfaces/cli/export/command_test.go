package export

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bid-labs/ticketgen/internal/infrastructure/export"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/seeds"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/testdb"
)

func TestWriteBackup(t *testing.T) {
	gdb := testdb.New(t)
	_, err := seeds.SeedCatalog(gdb, &seeds.CatalogFile{
		Clients: []seeds.ClientSeed{{ID: 5, Name: "Telcel", Code: "TEL"}},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.zip")
	require.NoError(t, writeBackup(context.Background(), gdb, path, &bytes.Buffer{}))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	for _, table := range export.Tables() {
		assert.Contains(t, names, table+".csv")
	}
}

func TestWriteTable_Stdout(t *testing.T) {
	gdb := testdb.New(t)
	_, err := seeds.SeedCatalog(gdb, &seeds.CatalogFile{
		Clients: []seeds.ClientSeed{{ID: 5, Name: "Telcel", Code: "TEL"}},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeTable(context.Background(), gdb, "client", "-", &out))
	assert.Contains(t, out.String(), "Telcel")
}
