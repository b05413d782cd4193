package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressTimestampFormat is the layout of the first field of every progress line,
// e.g. "2024-Jan-05-14:03:59".
const ProgressTimestampFormat = "2006-Jan-02-15:04:05"

// ProgressLogger appends "timestamp,message" lines to a progress log file.
// The file is opened per message in append mode, so a crash never loses earlier lines
// and several runs accumulate in one file.
type ProgressLogger struct {
	path    string
	verbose bool
	now     func() time.Time
	mu      sync.Mutex
}

// NewProgressLogger creates a ProgressLogger appending to path.
func NewProgressLogger(path string, verbose bool) *ProgressLogger {
	return &ProgressLogger{
		path:    path,
		verbose: verbose,
		now:     time.Now,
	}
}

// Verbose appends the message if verbose mode is enabled.
func (l *ProgressLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.append(sprintf(format, args))
}

// Info appends the message.
func (l *ProgressLogger) Info(format string, args ...interface{}) {
	l.append(sprintf(format, args))
}

// Error appends the message with an ERROR marker.
func (l *ProgressLogger) Error(format string, args ...interface{}) {
	l.append("ERROR " + sprintf(format, args))
}

func (l *ProgressLogger) append(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot write progress log %s: %v\n", l.path, err)
		return
	}
	defer f.Close()

	// One entry per line even when the message spans several lines
	msg = strings.ReplaceAll(msg, "\n", " ")
	fmt.Fprintf(f, "%s,%s\n", l.now().Format(ProgressTimestampFormat), msg)
}
