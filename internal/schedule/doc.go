// Package schedule re-runs the job on cron expressions or when the source
// file changes.
//
// Every trigger performs a complete run. Runs never overlap: a trigger that
// fires while a run is in progress is skipped and logged, so two runs never
// race on the same destination table.
package schedule
