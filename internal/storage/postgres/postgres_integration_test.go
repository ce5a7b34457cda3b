//go:build integration

package postgres

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/xenking/order-import/internal/storage/postgres/pgtest"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := pgtest.Start(ctx)
	if err != nil {
		log.Printf("start postgres: %v", err)
		return 1
	}
	defer db.Terminate()

	if err := RunMigrations(db.URL); err != nil {
		log.Printf("migrate: %v", err)
		return 1
	}
	// Applying twice is a no-op.
	if err := RunMigrations(db.URL); err != nil {
		log.Printf("migrate again: %v", err)
		return 1
	}

	testPool, err = NewPool(ctx, db.URL)
	if err != nil {
		log.Printf("pool: %v", err)
		return 1
	}
	defer testPool.Close()

	return m.Run()
}

func resetTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE order_items, orders, products RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := testPool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}
