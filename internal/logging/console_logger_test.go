package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(l *ConsoleLogger)
		want    string
	}{
		{
			name:    "verbose shown when enabled",
			verbose: true,
			log:     func(l *ConsoleLogger) { l.Verbose("Reading %s", "internet_users.csv") },
			want:    "[VERBOSE] Reading internet_users.csv\n",
		},
		{
			name: "verbose dropped when disabled",
			log:  func(l *ConsoleLogger) { l.Verbose("Reading %s", "internet_users.csv") },
			want: "",
		},
		{
			name: "info has no prefix",
			log:  func(l *ConsoleLogger) { l.Info("Extracted %d row(s)", 2) },
			want: "Extracted 2 row(s)\n",
		},
		{
			name: "error prefix",
			log:  func(l *ConsoleLogger) { l.Error("load stage failed: %s", "schema mismatch") },
			want: "[ERROR] load stage failed: schema mismatch\n",
		},
		{
			name: "message without args is not formatted",
			log:  func(l *ConsoleLogger) { l.Info("Rate (WB) is a 0-100% value") },
			want: "Rate (WB) is a 0-100% value\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewConsoleLoggerTo(&buf, tt.verbose))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleLogger_LinesStayWhole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("run %d extracted", id)
			logger.Verbose("run %d transformed", id)
			logger.Error("run %d failed", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 30)
	for _, line := range lines {
		assert.Regexp(t, `^(\[VERBOSE\] |\[ERROR\] )?run \d+ (extracted|transformed|failed)$`, line)
	}
}

func TestNullLogger_ConcurrentSafety(t *testing.T) {
	logger := NewNullLogger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()
}

func BenchmarkConsoleLogger_VerboseDisabled(b *testing.B) {
	logger := NewConsoleLoggerTo(io.Discard, false)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Verbose("row %d converted", i)
	}
}

func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("Extracted 2 row(s)")
	fmt.Println("nothing logged")
	// Output:
	// nothing logged
}

func ExampleConsoleLogger() {
	logger := NewConsoleLoggerTo(os.Stdout, true)
	logger.Info("Extracted %d row(s)", 2)
	logger.Verbose("Ignoring extra column %q", "Region")
	logger.Error("load stage failed")
	// Output:
	// Extracted 2 row(s)
	// [VERBOSE] Ignoring extra column "Region"
	// [ERROR] load stage failed
}
