// Package testdb provides helpers for tests that need a real PostgreSQL database.
// Tests using it are skipped unless a database URL is configured.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/osu-parks/parks-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// URLEnvVars are checked in order for a test database URL.
var URLEnvVars = []string{"PARKS_TEST_DATABASE_URL", "DATABASE_URL"}

// Timeout bounds connection setup and migrations.
const Timeout = 30 * time.Second

// URL returns the first non-empty test database URL, or "".
func URL() string {
	for _, name := range URLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Available reports whether integration tests can reach a database.
func Available() bool {
	return URL() != ""
}

// Open connects to the test database, migrates it to the latest version and
// registers cleanup. The test is skipped when no database is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skip("no test database configured, set PARKS_TEST_DATABASE_URL")
	}

	db, err := sql.Open(postgres.DriverName, url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "test database unreachable")

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, postgres.Migrate(ctx, db, quiet, "up"), "failed to migrate test database")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// sharing a database do not see each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
