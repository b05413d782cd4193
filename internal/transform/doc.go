// Package transform maps a raw source table to canonical inetl.Record values.
//
// Transformation is pure: it reads no files and keeps no state between calls,
// so feeding its own output (rendered with inetl.RecordsToTable) back in
// yields the same records.
//
// Year values that are not whole numbers are handled per inetl.YearPolicy:
// coerce turns them into null, strict fails the run with
// inetl.ErrInvalidYearValue. Rates and user counts follow the same policy
// with inetl.ErrInvalidNumber.
package transform
