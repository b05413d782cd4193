// Package manager provides table management operations for PostgreSQL.
//
// The manager package offers the schema operations a full-replace load needs:
//   - Creating the destination table if it does not exist
//   - Reading the columns of an existing table
//   - Verifying those columns against the expected layout
//   - Deleting all rows and counting rows
//
// All operations use pgx.Identifier.Sanitize() for safe SQL identifier quoting,
// preventing SQL injection attacks while handling edge cases like table names
// with spaces, quotes, or a schema qualifier ("etl.internet_users").
//
// # Example Usage
//
//	mgr := manager.New(inetl.Columns)
//
//	tx, _ := pool.Begin(ctx)
//	defer tx.Rollback(ctx)
//
//	err := mgr.Ensure(ctx, tx, "internet_users")
//	err = mgr.Verify(ctx, tx, "internet_users")
//	deleted, err := mgr.DeleteAll(ctx, tx, "internet_users")
//
// # Thread Safety
//
// Manager holds no mutable state and is safe for concurrent use.
package manager
