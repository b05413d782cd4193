package inetl

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunState is a state of the run state machine:
// Start → Extracted → Transformed → Loaded → Done, or Failed from any state.
type RunState int

const (
	StateStart RunState = iota
	StateExtracted
	StateTransformed
	StateLoaded
	StateDone
	StateFailed
)

// String returns a human-readable string representation of the RunState.
func (s RunState) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateExtracted:
		return "Extracted"
	case StateTransformed:
		return "Transformed"
	case StateLoaded:
		return "Loaded"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// CanTransition reports whether next is a legal successor of s.
// Failed is reachable from every non-terminal state; there is no resume.
func (s RunState) CanTransition(next RunState) bool {
	if s == StateDone || s == StateFailed {
		return false
	}
	if next == StateFailed {
		return true
	}
	return next == s+1
}

// LoadResult reports what each sink wrote.
type LoadResult struct {
	ArtifactPath     string
	ArtifactChecksum string
	ArtifactRows     int
	TableName        string
	TableRows        int64
}

// RunResult summarizes a finished run, successful or not.
type RunResult struct {
	RunID           uuid.UUID
	State           RunState
	FailedStage     Stage
	ExtractedRows   int
	TransformedRows int
	Load            LoadResult
	StartedAt       time.Time
	Duration        time.Duration
}
