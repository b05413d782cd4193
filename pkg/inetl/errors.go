package inetl

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every failure class of a run.
// Callers distinguish them with errors.Is():
//
//	result, err := runner.Run(ctx, cfg)
//	if errors.Is(err, inetl.ErrConnection) {
//	    // destination store unreachable, table untouched
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceNotFound indicates the source file does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrSourceParse indicates the source file cannot be read as a table.
	ErrSourceParse = errors.New("source file cannot be parsed")

	// ErrInvalidYearValue indicates a year cell is not an integral year (strict mode only).
	ErrInvalidYearValue = errors.New("invalid year value")

	// ErrInvalidNumber indicates a rate or count cell is not a number (strict mode only).
	ErrInvalidNumber = errors.New("invalid numeric value")

	// ErrInvalidRecord indicates a row lacks its subject (location).
	ErrInvalidRecord = errors.New("invalid record")

	// ErrConnection indicates the destination store cannot be reached.
	ErrConnection = errors.New("connection failed")

	// ErrSchemaMismatch indicates the existing destination table is incompatible.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrLoadTransaction indicates the replace transaction failed and was rolled back.
	ErrLoadTransaction = errors.New("load transaction failed")

	// ErrArtifactWrite indicates the destination file could not be written.
	ErrArtifactWrite = errors.New("artifact write failed")
)

// Stage names a pipeline stage for diagnostics.
type Stage string

const (
	StageConfig    Stage = "config"
	StageExtract   Stage = "extract"
	StageTransform Stage = "transform"
	StageLoad      Stage = "load"
)

// StageError attributes an error to the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage an error is attributed to, or "" if none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnection):
		return ExitConnectionError
	case errors.Is(err, ErrSourceNotFound):
		return ExitSourceNotFound
	case errors.Is(err, ErrSourceParse):
		return ExitSourceParse
	case errors.Is(err, ErrInvalidYearValue),
		errors.Is(err, ErrInvalidNumber),
		errors.Is(err, ErrInvalidRecord):
		return ExitInvalidValue
	case errors.Is(err, ErrSchemaMismatch):
		return ExitSchemaMismatch
	case errors.Is(err, ErrLoadTransaction):
		return ExitLoadTransaction
	case errors.Is(err, ErrArtifactWrite):
		return ExitArtifactWrite
	}

	errStr := err.Error()

	// Cobra reports flag and argument misuse as plain errors
	usagePatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"required flag",
		"invalid argument",
		"flag needs an argument",
	}
	for _, pattern := range usagePatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
