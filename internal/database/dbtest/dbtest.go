// Package dbtest provides isolated, migrated databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/isdelr/accounts-be/internal/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// New opens a fresh in-memory SQLite database with the accounts table in place.
// The database is closed when the test ends.
func New(tb testing.TB) *sqlx.DB {
	tb.Helper()

	uri := "sqlite://file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.New(context.Background(), uri)
	require.NoError(tb, err)
	tb.Cleanup(func() { db.Close() })

	require.NoError(tb, database.Migrate(context.Background(), db))
	return db
}
