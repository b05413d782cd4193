package fixtures

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// SourceHeader is the header of the upstream export, with its repeated Year columns.
var SourceHeader = []string{"Location", "Rate (WB)", "Year", "Rate (ITU)", "Year", "Users (CIA)", "Year", "Notes"}

// SourceFixtureBuilder provides a fluent API for building source CSV files.
//
// Example usage:
//
//	path := NewSourceFixtureBuilder().
//	    AddRow("Afghanistan", "11.4", "2020.0", "12.0", "2019.0", "3000000", "2021.0", "").
//	    Write(t, t.TempDir())
type SourceFixtureBuilder struct {
	header []string
	rows   [][]string
	raw    []string
	bom    bool
}

// NewSourceFixtureBuilder creates a builder with the standard source header.
func NewSourceFixtureBuilder() *SourceFixtureBuilder {
	return &SourceFixtureBuilder{header: SourceHeader}
}

// WithHeader replaces the header row.
func (b *SourceFixtureBuilder) WithHeader(header ...string) *SourceFixtureBuilder {
	b.header = header
	return b
}

// WithBOM prefixes the file with a UTF-8 byte order mark.
func (b *SourceFixtureBuilder) WithBOM() *SourceFixtureBuilder {
	b.bom = true
	return b
}

// AddRow appends a data row, quoted as needed.
func (b *SourceFixtureBuilder) AddRow(cells ...string) *SourceFixtureBuilder {
	b.rows = append(b.rows, cells)
	return b
}

// AddRawLine appends a line verbatim after the rows, for malformed input.
func (b *SourceFixtureBuilder) AddRawLine(line string) *SourceFixtureBuilder {
	b.raw = append(b.raw, line)
	return b
}

// AfghanistanAlbania adds the two reference rows used across tests.
func (b *SourceFixtureBuilder) AfghanistanAlbania() *SourceFixtureBuilder {
	return b.
		AddRow("Afghanistan", "11.4", "2020.0", "12.0", "2019.0", "3000000", "2021.0", "").
		AddRow("Albania", "NaN", "NaN", "66.0", "2021.0", "NaN", "NaN", "est.")
}

// Bytes renders the file content.
func (b *SourceFixtureBuilder) Bytes() []byte {
	var buf bytes.Buffer
	if b.bom {
		buf.Write([]byte{0xEF, 0xBB, 0xBF})
	}
	w := csv.NewWriter(&buf)
	_ = w.Write(b.header)
	_ = w.WriteAll(b.rows)
	for _, line := range b.raw {
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// Write stores the file as internet_users.csv in dir and returns its path.
func (b *SourceFixtureBuilder) Write(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "internet_users.csv")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write source fixture: %v", err)
	}
	return path
}
