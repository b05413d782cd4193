// Package load writes transformed records to the two destinations of a run:
// a CSV artifact and a relational table.
//
// Each sink is all-or-nothing on its own. The artifact is written to a
// temporary file and renamed into place; the table is replaced inside a
// single transaction (create if absent, verify layout, delete, bulk insert,
// commit). The sinks are independent: Loader.Load attempts both and reports
// every failure, and a failure in one never undoes the other.
//
// Two store backends are available: PostgreSQL through pgx (COPY for the bulk
// insert) and SQLite through modernc.org/sqlite (one prepared INSERT reused
// inside the transaction).
package load
