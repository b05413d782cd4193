package inetl

import "context"

// Extractor reads one delimited source file into a raw table.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Table, error)
}

// Transformer maps a raw table to canonical records with the same cardinality.
// Implementations must be pure and idempotent.
type Transformer interface {
	Transform(table *Table) ([]Record, error)
}

// Loader writes records to the destination file and the destination table.
type Loader interface {
	Load(ctx context.Context, config RunConfig, records []Record) (LoadResult, error)
}

// ArtifactWriter writes records to a delimited file, replacing any previous file.
// Returns the SHA-256 checksum of the written bytes.
type ArtifactWriter interface {
	Write(ctx context.Context, path string, records []Record) (string, error)
}

// Store is an open connection to a destination relational store.
// The caller must call Close when done.
type Store interface {
	// ReplaceAll creates the table if absent, deletes every row and inserts
	// records in one transaction. On error the table is left unchanged.
	ReplaceAll(ctx context.Context, table string, records []Record) (int64, error)

	// Count returns the number of rows in the table.
	Count(ctx context.Context, table string) (int64, error)

	Close() error
}

// StoreOpener connects to the destination store described by config.
type StoreOpener func(ctx context.Context, config *ConnectionConfig) (Store, error)
