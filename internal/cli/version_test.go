package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuildVars(t *testing.T, v, c, d string) {
	t.Helper()
	origV, origC, origD := version, commit, date
	t.Cleanup(func() { version, commit, date = origV, origC, origD })
	version, commit, date = v, c, d
}

func TestResolveVersionInfo_LdflagsWin(t *testing.T) {
	setBuildVars(t, "1.2.3", "abc123", "2024-05-01")

	v, c, d := resolveVersionInfo()
	assert.Equal(t, "1.2.3", v)
	assert.Equal(t, "abc123", c)
	assert.Equal(t, "2024-05-01", d)
}

func TestResolveVersionInfo_DevFallback(t *testing.T) {
	setBuildVars(t, "dev", "unknown", "unknown")

	v, c, _ := resolveVersionInfo()
	assert.NotEmpty(t, v)
	assert.LessOrEqual(t, len(c), 12, "revision is shortened")
}

func TestPrintVersionInfo_SplitsStreams(t *testing.T) {
	setBuildVars(t, "0.4.0", "deadbeef", "2024-05-01")

	var stdout, stderr bytes.Buffer
	printVersionInfo(&stdout, &stderr)

	assert.Equal(t, "inetl 0.4.0 (deadbeef, 2024-05-01) "+runtime.GOOS+"/"+runtime.GOARCH+"\n", stdout.String())
	assert.True(t, strings.HasSuffix(stderr.String(), "Internet-usage statistics ETL job\n"))
	assert.NotContains(t, stderr.String(), "0.4.0")
}
