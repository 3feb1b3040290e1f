// Package dbtest opens throwaway SQLite databases migrated with the
// production schema.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"inkwell/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite returns a connection to an empty database file under t.TempDir().
// The schema is not applied.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(path)), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// MigratedSQLite returns a database with every migration applied.
func MigratedSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db := OpenSQLite(t)
	require.NoError(t, database.RunMigrations(context.Background(), db, database.DriverSQLite))
	return db
}
