package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/inetl/internal/db"
	"github.com/vvka-141/inetl/internal/testinfra"
	"github.com/vvka-141/inetl/pkg/inetl"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error

	tableSeq atomic.Int64
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartSimplePostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: INETL_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("INETL_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("INETL_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the parsed connection config if a database is available, otherwise skips the test.
func RequireDatabase(t *testing.T) *inetl.ConnectionConfig {
	t.Helper()

	SkipIfShort(t)
	connString := GetTestConnectionString(t)

	config, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse test connection string: %v", err)
	}
	return config
}

// UniqueTableName returns a table name no other test in this process uses.
// The table is dropped when the test completes.
func UniqueTableName(t *testing.T, config *inetl.ConnectionConfig) string {
	t.Helper()

	name := fmt.Sprintf("internet_users_test_%d_%d", os.Getpid(), tableSeq.Add(1))
	t.Cleanup(func() {
		DropTestTable(t, config, name)
	})
	return name
}

// DropTestTable drops a table. Safe to call multiple times.
func DropTestTable(t *testing.T, config *inetl.ConnectionConfig, table string) {
	t.Helper()

	pool := GetTestPool(t, config)
	_, err := pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+pgx.Identifier{table}.Sanitize())
	if err != nil {
		t.Logf("Warning: Failed to drop table %s: %v", table, err)
	}
}

// GetTestPool creates a connection pool for verification queries.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, config *inetl.ConnectionConfig) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), db.BuildConnectionString(config))
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
