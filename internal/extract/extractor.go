package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// contextCheckInterval is how many rows are read between cancellation checks.
const contextCheckInterval = 1000

// CSVExtractor reads one delimited file into an inetl.Table.
type CSVExtractor struct {
	logger    inetl.Logger
	encoding  string
	delimiter rune
	required  []string
}

// Option configures a CSVExtractor.
type Option func(*CSVExtractor)

// WithEncoding sets the source text encoding (default utf-8).
func WithEncoding(name string) Option {
	return func(e *CSVExtractor) {
		e.encoding = name
	}
}

// WithDelimiter sets the column delimiter (default ',').
func WithDelimiter(r rune) Option {
	return func(e *CSVExtractor) {
		if r != 0 {
			e.delimiter = r
		}
	}
}

// WithRequiredHeaders replaces the set of header names that must be present.
func WithRequiredHeaders(headers ...string) Option {
	return func(e *CSVExtractor) {
		e.required = headers
	}
}

// New creates a CSVExtractor requiring the inetl.Record source header.
// Panics if logger is nil.
func New(logger inetl.Logger, opts ...Option) *CSVExtractor {
	if logger == nil {
		panic("logger cannot be nil")
	}
	e := &CSVExtractor{
		logger:    logger,
		encoding:  "utf-8",
		delimiter: ',',
		required:  inetl.SourceHeaders(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads path into a table. Rows keep source order and raw cell values.
//
// Errors:
//   - inetl.ErrSourceNotFound if the file does not exist
//   - inetl.ErrSourceParse if the file is not a rectangular table with the required header
func (e *CSVExtractor) Extract(ctx context.Context, path string) (*inetl.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, inetl.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, inetl.ErrSourceParse)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	e.logger.Verbose("Reading %s (%d bytes, encoding %s)", path, info.Size(), e.encoding)

	table, err := e.read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// read parses r into a table.
func (e *CSVExtractor) read(ctx context.Context, r io.Reader) (*inetl.Table, error) {
	decoded, err := decodingReader(r, e.encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = e.delimiter
	// Every row must have as many fields as the header
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty, expected a header row: %w", inetl.ErrSourceParse)
	}
	if err != nil {
		return nil, parseError(err)
	}

	header = normalizeHeader(header)
	if err := e.checkHeader(header); err != nil {
		return nil, err
	}

	table := &inetl.Table{Header: header}
	for {
		if len(table.Rows)%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// checkHeader verifies every required column is present.
func (e *CSVExtractor) checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, want := range e.required {
		if !present[want] {
			missing = append(missing, strconv.Quote(want))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("header is missing column(s) %s: %w", strings.Join(missing, ", "), inetl.ErrSourceParse)
	}

	if extra := len(header) - len(e.required); extra > 0 {
		e.logger.Verbose("Ignoring %d extra column(s) in source header", extra)
	}
	return nil
}

// normalizeHeader trims header cells and disambiguates repeated names the
// way the upstream export does: the second "Year" becomes "Year.1", the third "Year.2".
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]bool, len(header))

	for i, h := range header {
		h = strings.TrimSpace(h)
		taken[h] = true
		out[i] = h
	}

	for i, h := range out {
		n := seen[h]
		seen[h] = n + 1
		if n == 0 {
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = true
		out[i] = name
	}
	return out
}

// parseError wraps a csv reader error with its position.
func parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("line %d, column %d: %v: %w", pe.Line, pe.Column, pe.Err, inetl.ErrSourceParse)
	}
	return fmt.Errorf("%v: %w", err, inetl.ErrSourceParse)
}

// Verify CSVExtractor implements inetl.Extractor at compile time
var _ inetl.Extractor = (*CSVExtractor)(nil)
