package logging

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// JSONLogger emits one JSON object per message for log collectors.
// Every entry carries the run ID so lines of concurrent jobs can be told apart.
type JSONLogger struct {
	log zerolog.Logger
}

// NewJSONLogger creates a JSONLogger writing to out.
// Verbose messages are logged at debug level and dropped unless verbose is true.
func NewJSONLogger(out io.Writer, runID uuid.UUID, verbose bool) *JSONLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", runID.String()).
		Logger()

	return &JSONLogger{log: l}
}

// Verbose logs at debug level.
func (l *JSONLogger) Verbose(format string, args ...interface{}) {
	l.log.Debug().Msg(sprintf(format, args))
}

// Info logs at info level.
func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msg(sprintf(format, args))
}

// Error logs at error level.
func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msg(sprintf(format, args))
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
