package transform

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// Transformer converts raw tables to records under a year policy.
type Transformer struct {
	policy inetl.YearPolicy
	logger inetl.Logger
}

// New creates a Transformer. The zero policy is coerce.
// Panics if logger is nil.
func New(policy inetl.YearPolicy, logger inetl.Logger) *Transformer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Transformer{policy: policy, logger: logger}
}

// Policy returns the year policy in effect.
func (t *Transformer) Policy() inetl.YearPolicy {
	return t.policy
}

// Transform maps every row of table to one record, in order.
//
// Errors (all name the 1-based data row and column):
//   - inetl.ErrInvalidRecord if a required column is absent or Location is missing
//   - inetl.ErrInvalidYearValue for a non-integral year under the strict policy
//   - inetl.ErrInvalidNumber for an unparseable rate or user count under the strict policy
func (t *Transformer) Transform(table *inetl.Table) ([]inetl.Record, error) {
	if table == nil {
		return nil, fmt.Errorf("nil table: %w", inetl.ErrInvalidRecord)
	}

	idx, err := columnIndex(table.Header)
	if err != nil {
		return nil, err
	}

	records := make([]inetl.Record, 0, len(table.Rows))
	var coerced int
	for i, row := range table.Rows {
		rec, n, err := t.record(idx, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		coerced += n
		records = append(records, rec)
	}

	if coerced > 0 {
		t.logger.Verbose("Coerced %d unparseable value(s) to null", coerced)
	}
	return records, nil
}

// fieldIndex holds the position of each canonical column in a row.
type fieldIndex struct {
	location, rateWB, yearWB, rateITU, yearITU, usersCIA, yearCIA, notes int
}

func columnIndex(header []string) (fieldIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	lookup := func(c inetl.Column) (int, error) {
		i, ok := pos[c.Header]
		if !ok {
			return 0, fmt.Errorf("column %q not in header: %w", c.Header, inetl.ErrInvalidRecord)
		}
		return i, nil
	}

	var idx fieldIndex
	targets := []*int{&idx.location, &idx.rateWB, &idx.yearWB, &idx.rateITU, &idx.yearITU, &idx.usersCIA, &idx.yearCIA, &idx.notes}
	for i, c := range inetl.Columns {
		p, err := lookup(c)
		if err != nil {
			return fieldIndex{}, err
		}
		*targets[i] = p
	}
	return idx, nil
}

// record converts one row. It returns the number of values coerced to null.
func (t *Transformer) record(idx fieldIndex, row []string) (inetl.Record, int, error) {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	var rec inetl.Record
	var coerced int

	loc := cell(idx.location)
	if IsMissing(loc) {
		return rec, 0, fmt.Errorf("column %q is empty: %w", inetl.Columns[0].Header, inetl.ErrInvalidRecord)
	}
	rec.Location = loc

	years := []struct {
		col    int
		header string
		dst    *pgtype.Int4
	}{
		{idx.yearWB, inetl.Columns[2].Header, &rec.YearWorldBank},
		{idx.yearITU, inetl.Columns[4].Header, &rec.YearITU},
		{idx.yearCIA, inetl.Columns[6].Header, &rec.YearCIA},
	}
	for _, y := range years {
		v, err := parseYear(cell(y.col))
		if err != nil {
			if t.policy == inetl.YearPolicyStrict {
				return rec, 0, fmt.Errorf("column %q: %v: %w", y.header, err, inetl.ErrInvalidYearValue)
			}
			coerced++
		}
		*y.dst = v
	}

	rates := []struct {
		col    int
		header string
		dst    *pgtype.Float8
	}{
		{idx.rateWB, inetl.Columns[1].Header, &rec.RateWorldBank},
		{idx.rateITU, inetl.Columns[3].Header, &rec.RateITU},
	}
	for _, r := range rates {
		v, err := parseRate(cell(r.col))
		if err != nil {
			if t.policy == inetl.YearPolicyStrict {
				return rec, 0, fmt.Errorf("column %q: %v: %w", r.header, err, inetl.ErrInvalidNumber)
			}
			coerced++
		}
		*r.dst = v
	}

	users, err := parseCount(cell(idx.usersCIA))
	if err != nil {
		if t.policy == inetl.YearPolicyStrict {
			return rec, 0, fmt.Errorf("column %q: %v: %w", inetl.Columns[5].Header, err, inetl.ErrInvalidNumber)
		}
		coerced++
	}
	rec.UsersCIA = users

	rec.Notes = parseText(cell(idx.notes))
	return rec, coerced, nil
}

// Verify Transformer implements inetl.Transformer at compile time
var _ inetl.Transformer = (*Transformer)(nil)
