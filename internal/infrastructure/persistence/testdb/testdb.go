// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bid-labs/ticketgen/internal/infrastructure/database"
	"github.com/bid-labs/ticketgen/internal/infrastructure/migration"
	"github.com/bid-labs/ticketgen/internal/shared/config"
)

// New returns a fresh schema on a private in-memory database. The pool holds
// a single connection, so everything inside a transaction must go through
// the transaction handle.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := database.Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	m := migration.NewManagerWithStrategy(migration.NewGormAutoMigrateStrategy())
	require.NoError(t, m.Migrate(gdb))
	return gdb
}
