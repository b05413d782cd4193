package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	runID := uuid.New()
	logger := NewJSONLogger(&buf, runID, false)

	logger.Info("Loaded %d rows", 2)
	logger.Verbose("hidden")
	logger.Error("boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Loaded 2 rows", entry["message"])
	assert.Equal(t, runID.String(), entry["run_id"])
	assert.Contains(t, entry, "time")

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "error", entry["level"])
}

func TestJSONLogger_VerboseAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, uuid.New(), true)
	logger.Verbose("detail %s", "x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "detail x", entry["message"])
}

func TestProgressLogger_AppendsTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_file.txt")
	logger := NewProgressLogger(path, false)
	logger.now = func() time.Time { return time.Date(2024, time.January, 5, 14, 3, 59, 0, time.UTC) }

	logger.Info("Beginning ETL process")
	logger.Verbose("skipped")
	logger.Error("Load failed\nwith detail")

	// A second logger on the same file keeps appending
	second := NewProgressLogger(path, true)
	second.now = logger.now
	second.Verbose("next run")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"2024-Jan-05-14:03:59,Beginning ETL process\n"+
			"2024-Jan-05-14:03:59,ERROR Load failed with detail\n"+
			"2024-Jan-05-14:03:59,next run\n",
		string(data))
}

func TestProgressLogger_UnwritablePathDoesNotPanic(t *testing.T) {
	logger := NewProgressLogger(filepath.Join(t.TempDir(), "missing", "dir", "log.txt"), true)
	assert.NotPanics(t, func() { logger.Info("message") })
}

func TestMultiLogger_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	logger := NewMultiLogger(NewConsoleLoggerTo(&a, true), nil, NewConsoleLoggerTo(&b, false))

	logger.Info("one")
	logger.Verbose("two")
	logger.Error("three")

	assert.Equal(t, "one\n[VERBOSE] two\n[ERROR] three\n", a.String())
	assert.Equal(t, "one\n[ERROR] three\n", b.String())
}
