package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_ReadsYAMLAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
spreadsheet:
  sheet_name: "Formulario"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadFile("production", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "Formulario", cfg.Spreadsheet.SheetName)
	assert.Equal(t, "BID", cfg.Ticket.CompanyCode)
	assert.Equal(t, 5, cfg.Ticket.MaxAllocationAttempts)
	assert.Same(t, cfg, Get())
}

func TestLoadFile_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ticket:\n  company_code: BID\n"), 0o600))
	t.Setenv("TICKETGEN_TICKET_MAX_ALLOCATION_ATTEMPTS", "9")

	cfg, err := LoadFile("", path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Ticket.MaxAllocationAttempts)
}

func TestLoadFile_MissingExplicitFile(t *testing.T) {
	_, err := LoadFile("", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
