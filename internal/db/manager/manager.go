package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/inetl/pkg/inetl"
)

const queryTableColumns = `
	SELECT column_name, data_type, is_nullable = 'YES'
	FROM information_schema.columns
	WHERE table_schema = COALESCE(NULLIF($1, ''), current_schema()) AND table_name = $2
	ORDER BY ordinal_position
`

// Conn is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ColumnInfo describes one column of an existing table.
type ColumnInfo struct {
	Name     string
	DataType string
	Nullable bool
}

// Manager implements table lifecycle operations for a fixed column layout.
type Manager struct {
	columns []inetl.Column
}

// New creates a Manager for the given column layout.
func New(columns []inetl.Column) *Manager {
	return &Manager{columns: columns}
}

// Identifier converts "table" or "schema.table" to a quoted SQL identifier.
func Identifier(table string) pgx.Identifier {
	if schema, name, ok := strings.Cut(table, "."); ok {
		return pgx.Identifier{schema, name}
	}
	return pgx.Identifier{table}
}

// CreateStatement returns the CREATE TABLE IF NOT EXISTS statement for table.
func (m *Manager) CreateStatement(table string) string {
	defs := make([]string, len(m.columns))
	for i, c := range m.columns {
		def := pgx.Identifier{c.Name}.Sanitize() + " " + c.PostgresType
		if !c.Nullable {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", Identifier(table).Sanitize(), strings.Join(defs, ",\n\t"))
}

// Ensure creates table if it does not exist.
func (m *Manager) Ensure(ctx context.Context, conn Conn, table string) error {
	if _, err := conn.Exec(ctx, m.CreateStatement(table)); err != nil {
		return fmt.Errorf("failed to create table %q: %w", table, err)
	}
	return nil
}

// Columns returns the columns of table in ordinal order. An absent table has no columns.
func (m *Manager) Columns(ctx context.Context, conn Conn, table string) ([]ColumnInfo, error) {
	schema, name := "", table
	if s, n, ok := strings.Cut(table, "."); ok {
		schema, name = s, n
	}

	rows, err := conn.Query(ctx, queryTableColumns, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %q: %w", table, err)
	}

	cols, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ColumnInfo, error) {
		var c ColumnInfo
		err := row.Scan(&c.Name, &c.DataType, &c.Nullable)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %q: %w", table, err)
	}
	return cols, nil
}

// Verify checks that table has exactly the expected columns and types.
//
// Errors:
//   - inetl.ErrSchemaMismatch listing every difference
func (m *Manager) Verify(ctx context.Context, conn Conn, table string) error {
	actual, err := m.Columns(ctx, conn, table)
	if err != nil {
		return err
	}
	if diffs := Diff(m.columns, actual, PostgresType); len(diffs) > 0 {
		return fmt.Errorf("table %q does not match the expected layout (%s): %w",
			table, strings.Join(diffs, "; "), inetl.ErrSchemaMismatch)
	}
	return nil
}

// PostgresType and SQLiteType select the declared type of a column per dialect.
func PostgresType(c inetl.Column) string { return c.PostgresType }
func SQLiteType(c inetl.Column) string { return c.SQLiteType }

// Diff lists differences between the expected columns and an existing table,
// comparing types with declaredType. Column order is not compared; the loader
// always names its columns.
func Diff(expected []inetl.Column, actual []ColumnInfo, declaredType func(inetl.Column) string) []string {
	byName := make(map[string]ColumnInfo, len(actual))
	for _, c := range actual {
		byName[c.Name] = c
	}

	var diffs []string
	for _, want := range expected {
		got, ok := byName[want.Name]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("missing column %s", want.Name))
			continue
		}
		delete(byName, want.Name)
		if wantType := declaredType(want); !strings.EqualFold(got.DataType, wantType) {
			diffs = append(diffs, fmt.Sprintf("column %s is %s, expected %s", want.Name, got.DataType, wantType))
		}
		switch {
		case !want.Nullable && got.Nullable:
			diffs = append(diffs, fmt.Sprintf("column %s must be NOT NULL", want.Name))
		case want.Nullable && !got.Nullable:
			diffs = append(diffs, fmt.Sprintf("column %s must be nullable", want.Name))
		}
	}

	for _, c := range actual {
		if _, extra := byName[c.Name]; extra {
			diffs = append(diffs, fmt.Sprintf("unexpected column %s", c.Name))
		}
	}
	return diffs
}

// DeleteAll removes every row of table and returns how many were deleted.
func (m *Manager) DeleteAll(ctx context.Context, conn Conn, table string) (int64, error) {
	tag, err := conn.Exec(ctx, "DELETE FROM "+Identifier(table).Sanitize())
	if err != nil {
		return 0, fmt.Errorf("failed to delete rows of %q: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of rows in table.
func (m *Manager) Count(ctx context.Context, conn Conn, table string) (int64, error) {
	var n int64
	err := conn.QueryRow(ctx, "SELECT count(*) FROM "+Identifier(table).Sanitize()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows of %q: %w", table, err)
	}
	return n, nil
}
