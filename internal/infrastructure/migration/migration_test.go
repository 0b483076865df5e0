package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bid-labs/ticketgen/internal/shared/config"
	"github.com/bid-labs/ticketgen/internal/shared/constants"
)

func openFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestNewManager_StrategySelection(t *testing.T) {
	m, err := NewManager(config.DriverPostgres, constants.EnvDevelopment)
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())
	_, err = m.Goose()
	assert.Error(t, err)

	m, err = NewManager(config.DriverPostgres, constants.EnvProduction)
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())

	_, err = NewManager("oracle", constants.EnvProduction)
	assert.Error(t, err)
}

func TestGooseStrategy_SQLiteUpAndDown(t *testing.T) {
	gdb := openFileDB(t)

	m, err := NewManager(config.DriverSQLite, constants.EnvProduction)
	require.NoError(t, err)
	require.NoError(t, m.Migrate(gdb))

	for _, table := range Tables() {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	g, err := m.Goose()
	require.NoError(t, err)
	version, err := g.GetVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	require.NoError(t, g.MigrateDown(gdb, 1))
	assert.False(t, gdb.Migrator().HasTable("tickets"))
	assert.True(t, gdb.Migrator().HasTable("clients"))
}

func TestGooseStrategy_SequenceIndexIsUnique(t *testing.T) {
	gdb := openFileDB(t)

	m, err := NewManager(config.DriverSQLite, constants.EnvTest)
	require.NoError(t, err)
	require.NoError(t, m.Migrate(gdb))

	insert := `INSERT INTO tickets (codigo, empresa_code, tipo_servicio_code, funcion_code, version_code,
		cliente_code, proyecto_code, consecutivo, estado, created_at, updated_at)
		VALUES (?, 'BID', 'PRU', 'EST', '3', 'TEL', 'OTR', 1, 'GENERADO', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	require.NoError(t, gdb.Exec(insert, "BID-PRU-EST-3-TEL-OTR-001").Error)
	assert.Error(t, gdb.Exec(insert, "BID-PRU-EST-3-TEL-OTR-001-B").Error)
}

func TestAutoMigrateMatchesTables(t *testing.T) {
	gdb := openFileDB(t)

	m := NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	require.NoError(t, m.Migrate(gdb))

	for _, table := range Tables() {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
	assert.True(t, gdb.Migrator().HasIndex("tickets", "idx_tickets_sequence"))
}

func TestSequenceFixer_NotApplicableOnSQLite(t *testing.T) {
	gdb := openFileDB(t)

	f := NewSequenceFixer(gdb)
	assert.False(t, f.Applicable())

	reports, err := f.Fix(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
