// Package pipeline drives one ETL run: Extract, then Transform, then Load.
//
// The Runner owns the run state machine
//
//	Start → Extracted → Transformed → Loaded → Done
//
// with Failed reachable from every non-terminal state. Stages never run
// concurrently and there is no resume: a failed run is started again from
// the beginning. Every error returned by Run is an *inetl.StageError naming
// the stage it came from.
package pipeline
