package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testPostgres *DB
)

// OpenTestDB opens a migrated sqlite database in a per-test temporary
// directory. The database is closed when the test finishes.
func OpenTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), Options{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		TeardownTestDB(db)
	})
	return db
}

// GetTestPostgres returns the shared postgres test database, or nil when
// TEST_DATABASE_URL was not set for this run.
func GetTestPostgres() *DB {
	return testPostgres
}

// TestBackends returns every backend the storage tests should run against:
// a fresh sqlite database always, plus the shared postgres database when
// available. Each returned DB starts empty.
func TestBackends(t *testing.T) map[Dialect]*DB {
	t.Helper()

	backends := map[Dialect]*DB{
		DialectSQLite: OpenTestDB(t),
	}
	if pg := GetTestPostgres(); pg != nil {
		CleanupTestDB(t, pg)
		backends[DialectPostgres] = pg
	}
	return backends
}

// CleanupTestDB deletes every row for a fresh test state.
// Fails the test if deletion fails.
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx := context.Background()
	_, err := db.ExecContext(ctx, "DELETE FROM tasks")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "DELETE FROM projects")
	require.NoError(t, err)
}

// TeardownTestDB closes the test database connection.
// Safe to call with nil DB (no-op).
func TeardownTestDB(db *DB) {
	if db != nil {
		db.Close()
	}
}
