package logging

// NullLogger drops every message. Tests inject it where a component needs a
// logger but its output does not matter.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() NullLogger {
	return NullLogger{}
}

func (NullLogger) Verbose(string, ...interface{}) {}
func (NullLogger) Info(string, ...interface{}) {}
func (NullLogger) Error(string, ...interface{}) {}
