package inetl

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// RunConfig contains every parameter of one ETL run.
// It is built once at process start and passed by value to the pipeline.
type RunConfig struct {
	// RunID identifies the run in logs; a new one is generated when nil
	RunID uuid.UUID

	// SourcePath is the delimited file to extract
	SourcePath string

	// OutputPath is the CSV artifact written by the loader
	OutputPath string

	// TableName is the destination relational table
	TableName string

	// Connection holds the destination store parameters
	Connection ConnectionConfig

	// YearPolicy selects strict or best-effort handling of malformed values
	YearPolicy YearPolicy

	// Encoding is the text encoding of the source file (utf-8 when empty)
	Encoding string

	// Delimiter separates source columns (',' when zero)
	Delimiter rune

	// Timeout bounds the entire run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	if c.SourcePath != "" && c.OutputPath != "" && samePath(c.SourcePath, c.OutputPath) {
		errs = append(errs, fmt.Errorf("OutputPath must differ from SourcePath: %w", ErrInvalidConfig))
	}

	if c.TableName == "" {
		errs = append(errs, fmt.Errorf("TableName is required: %w", ErrInvalidConfig))
	}

	if !c.YearPolicy.IsValid() {
		errs = append(errs, fmt.Errorf("unknown year policy %v: %w", c.YearPolicy, ErrInvalidConfig))
	}

	if c.Delimiter != 0 && !validDelimiter(c.Delimiter) {
		errs = append(errs, fmt.Errorf("invalid delimiter %q: %w", c.Delimiter, ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if err := c.Connection.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// samePath reports whether a and b name the same file once made absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// validDelimiter mirrors the field delimiters encoding/csv accepts.
func validDelimiter(r rune) bool {
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return false
	}
	return utf8.ValidRune(r)
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Driver   Driver
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string
}

// Validate checks the connection parameters required by the selected driver.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if !c.Driver.IsValid() {
		errs = append(errs, fmt.Errorf("unsupported driver %v: %w", c.Driver, ErrInvalidConfig))
	}

	if c.Database == "" {
		errs = append(errs, fmt.Errorf("Database is required: %w", ErrInvalidConfig))
	}

	if c.Driver == DriverPostgres {
		if c.Host == "" {
			errs = append(errs, fmt.Errorf("Host is required: %w", ErrInvalidConfig))
		}
		if c.Port <= 0 || c.Port > 65535 {
			errs = append(errs, fmt.Errorf("port %d out of range: %w", c.Port, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// Driver selects the destination store implementation.
type Driver int

const (
	DriverPostgres Driver = iota // PostgreSQL via pgx
	DriverSQLite                 // SQLite file database
)

// String returns a human-readable string representation of the Driver.
func (d Driver) String() string {
	switch d {
	case DriverPostgres:
		return "postgres"
	case DriverSQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// IsValid returns true if the Driver is a valid, defined value.
func (d Driver) IsValid() bool {
	return d >= DriverPostgres && d <= DriverSQLite
}

// ParseDriver converts a driver name to a Driver.
func ParseDriver(s string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "postgres", "postgresql", "pg":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return 0, fmt.Errorf("unknown driver %q (expected postgres or sqlite): %w", s, ErrInvalidConfig)
	}
}

// YearPolicy controls how malformed year and numeric cells are handled.
type YearPolicy int

const (
	// YearPolicyCoerce nulls out malformed values and keeps the run going.
	YearPolicyCoerce YearPolicy = iota
	// YearPolicyStrict fails the run on the first malformed value.
	YearPolicyStrict
)

// String returns a human-readable string representation of the YearPolicy.
func (p YearPolicy) String() string {
	switch p {
	case YearPolicyCoerce:
		return "coerce"
	case YearPolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsValid returns true if the YearPolicy is a valid, defined value.
func (p YearPolicy) IsValid() bool {
	return p == YearPolicyCoerce || p == YearPolicyStrict
}

// ParseYearPolicy converts a policy name to a YearPolicy. Empty means coerce.
func ParseYearPolicy(s string) (YearPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "coerce":
		return YearPolicyCoerce, nil
	case "strict":
		return YearPolicyStrict, nil
	default:
		return 0, fmt.Errorf("unknown year policy %q (expected coerce or strict): %w", s, ErrInvalidConfig)
	}
}
