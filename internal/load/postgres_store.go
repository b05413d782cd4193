package load

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/inetl/internal/db"
	"github.com/vvka-141/inetl/internal/db/manager"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// PostgresStore replaces table contents in PostgreSQL using COPY.
type PostgresStore struct {
	pool   *pgxpool.Pool
	tables *manager.Manager
	logger inetl.Logger
}

// OpenPostgres connects to PostgreSQL.
//
// Errors:
//   - inetl.ErrConnection if the server cannot be reached
func OpenPostgres(ctx context.Context, config *inetl.ConnectionConfig, logger inetl.Logger) (*PostgresStore, error) {
	pool, err := db.NewConnector(config, logger).Connect(ctx)
	if err != nil {
		return nil, err
	}
	return NewPostgresStore(pool, logger), nil
}

// NewPostgresStore wraps an existing pool. Close closes the pool.
// Panics if pool or logger is nil.
func NewPostgresStore(pool *pgxpool.Pool, logger inetl.Logger) *PostgresStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PostgresStore{pool: pool, tables: manager.New(inetl.Columns), logger: logger}
}

// ReplaceAll replaces the rows of table with records in one transaction.
//
// Errors:
//   - inetl.ErrSchemaMismatch if an existing table has a different layout
//   - inetl.ErrLoadTransaction if any step fails; the transaction is rolled back
//   - inetl.ErrConnection (with ErrLoadTransaction) if the connection is lost
func (s *PostgresStore) ReplaceAll(ctx context.Context, table string, records []inetl.Record) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, loadError("begin transaction", err)
	}
	// Rollback after Commit is a no-op; it also runs when ctx is already cancelled.
	defer tx.Rollback(context.WithoutCancel(ctx)) //nolint:errcheck

	if err := s.tables.Ensure(ctx, tx, table); err != nil {
		return 0, loadError("create table", err)
	}

	if err := s.tables.Verify(ctx, tx, table); err != nil {
		if errors.Is(err, inetl.ErrSchemaMismatch) {
			return 0, err
		}
		return 0, loadError("verify table", err)
	}

	deleted, err := s.tables.DeleteAll(ctx, tx, table)
	if err != nil {
		return 0, loadError("delete rows", err)
	}
	s.logger.Verbose("Deleted %d existing row(s) from %s", deleted, table)

	copied, err := tx.CopyFrom(ctx,
		manager.Identifier(table),
		inetl.ColumnNames(),
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return records[i].Values(), nil
		}),
	)
	if err != nil {
		return 0, loadError("copy rows", err)
	}
	if copied != int64(len(records)) {
		return 0, loadError("copy rows", fmt.Errorf("copied %d of %d rows", copied, len(records)))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, loadError("commit", err)
	}

	return copied, nil
}

// Count returns the number of rows in table.
func (s *PostgresStore) Count(ctx context.Context, table string) (int64, error) {
	return s.tables.Count(ctx, s.pool, table)
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// loadError wraps a failed transaction step. A lost connection is reported as
// a connection error as well.
func loadError(step string, err error) error {
	if db.IsConnectionError(err) {
		return fmt.Errorf("%s: %w: %w: %w", step, err, inetl.ErrLoadTransaction, inetl.ErrConnection)
	}
	return fmt.Errorf("%s: %w: %w", step, err, inetl.ErrLoadTransaction)
}

// Verify PostgresStore implements inetl.Store at compile time
var _ inetl.Store = (*PostgresStore)(nil)
