package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// testDB represents a test database connection
type testDB struct {
	Pool *pgxpool.Pool
}

func newTestDB(t *testing.T) *testDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, pool.Ping(ctx), "Failed to ping test database")

	return &testDB{Pool: pool}
}

func (db *testDB) cleanup(t *testing.T) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(), "TRUNCATE content_documents")
	require.NoError(t, err, "Failed to truncate content_documents table")
}

// runTest runs testFunc against a fresh content_documents table
func runTest(t *testing.T, testFunc func(t *testing.T, store *Store, db *testDB)) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	db := newTestDB(t)
	defer db.Pool.Close()

	store := NewWithPool(db.Pool)
	require.NoError(t, store.EnsureSchema(context.Background()))
	db.cleanup(t)

	testFunc(t, store, db)
}
