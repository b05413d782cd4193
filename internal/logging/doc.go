// Package logging provides concrete implementations of the inetl.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Human-readable lines on stderr with [VERBOSE]/[ERROR] prefixes
//   - JSONLogger: One JSON object per message, built on zerolog
//   - ProgressLogger: Appends "timestamp,message" lines to the run's progress log file
//   - MultiLogger: Fans every message out to several loggers
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
