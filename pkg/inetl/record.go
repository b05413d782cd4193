package inetl

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// Record is one row of subject + statistics, the unit of transformation and storage.
// Nullable fields use pgtype values; Valid=false is an explicit null.
type Record struct {
	Location      string
	RateWorldBank pgtype.Float8
	YearWorldBank pgtype.Int4
	RateITU       pgtype.Float8
	YearITU       pgtype.Int4
	UsersCIA      pgtype.Int8
	YearCIA       pgtype.Int4
	Notes         pgtype.Text
}

// Column describes one field of Record in the source file and in the destination table.
type Column struct {
	// Header is the column name in the source and artifact CSV files
	Header string

	// Name is the destination table column
	Name string

	// PostgresType and SQLiteType are the declared column types
	PostgresType string
	SQLiteType   string

	// Nullable is false only for the subject column
	Nullable bool
}

// Columns lists the Record fields in source order.
// Year headers carry the duplicate-origin suffixes of the upstream export.
var Columns = []Column{
	{Header: "Location", Name: "location", PostgresType: "text", SQLiteType: "TEXT", Nullable: false},
	{Header: "Rate (WB)", Name: "rate_world_bank", PostgresType: "double precision", SQLiteType: "REAL", Nullable: true},
	{Header: "Year", Name: "year_world_bank", PostgresType: "integer", SQLiteType: "INTEGER", Nullable: true},
	{Header: "Rate (ITU)", Name: "rate_itu", PostgresType: "double precision", SQLiteType: "REAL", Nullable: true},
	{Header: "Year.1", Name: "year_itu", PostgresType: "integer", SQLiteType: "INTEGER", Nullable: true},
	{Header: "Users (CIA)", Name: "users_cia", PostgresType: "bigint", SQLiteType: "INTEGER", Nullable: true},
	{Header: "Year.2", Name: "year_cia", PostgresType: "integer", SQLiteType: "INTEGER", Nullable: true},
	{Header: "Notes", Name: "notes", PostgresType: "text", SQLiteType: "TEXT", Nullable: true},
}

// ColumnNames returns the destination column names in order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}

// SourceHeaders returns the source CSV header in order.
func SourceHeaders() []string {
	headers := make([]string, len(Columns))
	for i, c := range Columns {
		headers[i] = c.Header
	}
	return headers
}

// Values returns the record fields in column order, ready for COPY or a prepared INSERT.
// The pgtype values implement driver.Valuer, so nulls are sent as NULL.
func (r Record) Values() []any {
	return []any{
		r.Location,
		r.RateWorldBank,
		r.YearWorldBank,
		r.RateITU,
		r.YearITU,
		r.UsersCIA,
		r.YearCIA,
		r.Notes,
	}
}

// Strings renders the record as raw cells in column order. Nulls become empty cells.
func (r Record) Strings() []string {
	return []string{
		r.Location,
		formatFloat(r.RateWorldBank),
		formatInt4(r.YearWorldBank),
		formatFloat(r.RateITU),
		formatInt4(r.YearITU),
		formatInt8(r.UsersCIA),
		formatInt4(r.YearCIA),
		formatText(r.Notes),
	}
}

// Table is an ordered sequence of raw rows with their header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// RecordsToTable renders transformed records back into a raw table with the source header.
func RecordsToTable(records []Record) *Table {
	t := &Table{Header: SourceHeaders(), Rows: make([][]string, len(records))}
	for i, r := range records {
		t.Rows[i] = r.Strings()
	}
	return t
}

func formatFloat(v pgtype.Float8) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func formatInt4(v pgtype.Int4) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(int64(v.Int32), 10)
}

func formatInt8(v pgtype.Int8) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

func formatText(v pgtype.Text) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
