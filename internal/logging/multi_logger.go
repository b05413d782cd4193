package logging

import "github.com/vvka-141/inetl/pkg/inetl"

// MultiLogger forwards every message to each of its loggers in order.
type MultiLogger struct {
	loggers []inetl.Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are skipped.
func NewMultiLogger(loggers ...inetl.Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) Verbose(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Verbose(format, args...)
	}
}

func (m *MultiLogger) Info(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Info(format, args...)
	}
}

func (m *MultiLogger) Error(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Error(format, args...)
	}
}

var (
	_ inetl.Logger = (*ConsoleLogger)(nil)
	_ inetl.Logger = NullLogger{}
	_ inetl.Logger = (*JSONLogger)(nil)
	_ inetl.Logger = (*ProgressLogger)(nil)
	_ inetl.Logger = (*MultiLogger)(nil)
)
