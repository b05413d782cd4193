package transform

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// missingTokens are the cell spellings treated as "no value".
var missingTokens = map[string]struct{}{
	"":     {},
	"NaN":  {},
	"nan":  {},
	"NA":   {},
	"N/A":  {},
	"<NA>": {},
	"null": {},
	"None": {},
}

var errNotANumber = errors.New("not a number")

// IsMissing reports whether a raw cell represents a missing value.
func IsMissing(raw string) bool {
	_, ok := missingTokens[strings.TrimSpace(raw)]
	return ok
}

// parseFloat parses a finite float. Commas are not accepted: "1,5" may be a
// decimal comma, so only counts strip thousands separators.
func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, errNotANumber)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not finite: %w", raw, errNotANumber)
	}
	return f, nil
}

// parseYear converts "2023" or "2023.0" to 2023. A missing cell is null
// without error.
func parseYear(raw string) (pgtype.Int4, error) {
	if IsMissing(raw) {
		return pgtype.Int4{}, nil
	}
	f, err := parseFloat(raw)
	if err != nil {
		return pgtype.Int4{}, err
	}
	if f != math.Trunc(f) {
		return pgtype.Int4{}, fmt.Errorf("%q has a fractional part", raw)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return pgtype.Int4{}, fmt.Errorf("%q is out of range", raw)
	}
	return pgtype.Int4{Int32: int32(f), Valid: true}, nil
}

// parseRate converts a finite decimal to a float.
func parseRate(raw string) (pgtype.Float8, error) {
	if IsMissing(raw) {
		return pgtype.Float8{}, nil
	}
	f, err := parseFloat(raw)
	if err != nil {
		return pgtype.Float8{}, err
	}
	return pgtype.Float8{Float64: f, Valid: true}, nil
}

// parseCount converts a whole number such as "7,000,000" or "7000000.0".
func parseCount(raw string) (pgtype.Int8, error) {
	if IsMissing(raw) {
		return pgtype.Int8{}, nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return pgtype.Int8{Int64: n, Valid: true}, nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return pgtype.Int8{}, err
	}
	if f != math.Trunc(f) {
		return pgtype.Int8{}, fmt.Errorf("%q has a fractional part", raw)
	}
	// 2^63 is exactly representable; anything at or beyond it overflows.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return pgtype.Int8{}, fmt.Errorf("%q is out of range", raw)
	}
	return pgtype.Int8{Int64: int64(f), Valid: true}, nil
}

// parseText passes text through unless it spells a missing value.
func parseText(raw string) pgtype.Text {
	if IsMissing(raw) {
		return pgtype.Text{}
	}
	return pgtype.Text{String: raw, Valid: true}
}
