package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vvka-141/inetl/internal/db"
	"github.com/vvka-141/inetl/internal/db/manager"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// SQLiteStore replaces table contents in a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	logger inetl.Logger
}

// OpenSQLite opens (creating if needed) the database file named by config.Database.
//
// Errors:
//   - inetl.ErrConnection if the file cannot be opened
func OpenSQLite(ctx context.Context, config *inetl.ConnectionConfig, logger inetl.Logger) (*SQLiteStore, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	conn, err := sql.Open("sqlite", db.BuildSQLiteDSN(config))
	if err != nil {
		return nil, fmt.Errorf("cannot open sqlite database %s: %v: %w", config.Database, err, inetl.ErrConnection)
	}
	// One writer; a second connection would only contend for the file lock.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot open sqlite database %s: %v: %w", config.Database, err, inetl.ErrConnection)
	}

	logger.Verbose("Opened sqlite database %s", config.Database)
	return &SQLiteStore{db: conn, logger: logger}, nil
}

// quoteIdent quotes a SQLite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqliteCreateStatement(table string) string {
	defs := make([]string, len(inetl.Columns))
	for i, c := range inetl.Columns {
		def := quoteIdent(c.Name) + " " + c.SQLiteType
		if !c.Nullable {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", quoteIdent(table), strings.Join(defs, ",\n\t"))
}

func sqliteInsertStatement(table string) string {
	cols := make([]string, len(inetl.Columns))
	marks := make([]string, len(inetl.Columns))
	for i, c := range inetl.Columns {
		cols[i] = quoteIdent(c.Name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// columns reads the declared layout of table with PRAGMA table_info.
func (s *SQLiteStore) columns(ctx context.Context, tx *sql.Tx, table string) ([]manager.ColumnInfo, error) {
	rows, err := tx.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []manager.ColumnInfo
	for rows.Next() {
		var (
			cid       int
			name      string
			declType  string
			notNull   bool
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, manager.ColumnInfo{Name: name, DataType: declType, Nullable: !notNull})
	}
	return cols, rows.Err()
}

// ReplaceAll replaces the rows of table with records in one transaction.
//
// Errors:
//   - inetl.ErrSchemaMismatch if an existing table has a different layout
//   - inetl.ErrLoadTransaction if any step fails; the transaction is rolled back
func (s *SQLiteStore) ReplaceAll(ctx context.Context, table string, records []inetl.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, loadError("begin transaction", err)
	}
	// Rollback after Commit returns sql.ErrTxDone and changes nothing.
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, sqliteCreateStatement(table)); err != nil {
		return 0, loadError("create table", err)
	}

	actual, err := s.columns(ctx, tx, table)
	if err != nil {
		return 0, loadError("verify table", err)
	}
	if diffs := manager.Diff(inetl.Columns, actual, manager.SQLiteType); len(diffs) > 0 {
		return 0, fmt.Errorf("table %q does not match the expected layout (%s): %w",
			table, strings.Join(diffs, "; "), inetl.ErrSchemaMismatch)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(table))
	if err != nil {
		return 0, loadError("delete rows", err)
	}
	if deleted, err := res.RowsAffected(); err == nil {
		s.logger.Verbose("Deleted %d existing row(s) from %s", deleted, table)
	}

	stmt, err := tx.PrepareContext(ctx, sqliteInsertStatement(table))
	if err != nil {
		return 0, loadError("prepare insert", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Values()...); err != nil {
			return 0, loadError(fmt.Sprintf("insert row %d", i+1), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, loadError("commit", err)
	}
	return int64(len(records)), nil
}

// Count returns the number of rows in table.
func (s *SQLiteStore) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+quoteIdent(table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows of %q: %w", table, err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Verify SQLiteStore implements inetl.Store at compile time
var _ inetl.Store = (*SQLiteStore)(nil)
