package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/inetl/internal/testing/fixtures"
	"github.com/vvka-141/inetl/internal/tui"
	"github.com/vvka-141/inetl/pkg/inetl"
)

func newTestScheduleCmd(t *testing.T, argv ...string) (*cobra.Command, *scheduleFlagValues) {
	t.Helper()
	f := &scheduleFlagValues{}
	cmd := &cobra.Command{Use: "schedule [source]"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	addRunFlags(cmd, &f.runFlagValues)
	addScheduleFlags(cmd, f)
	require.NoError(t, cmd.ParseFlags(argv))
	return cmd, f
}

func TestExecuteSchedule_RequiresTrigger(t *testing.T) {
	isolate(t)
	cmd, f := newTestScheduleCmd(t)

	err := executeSchedule(context.Background(), cmd, *f, nil, &bytes.Buffer{}, tui.ModePlain)
	require.Error(t, err)
	assert.Equal(t, inetl.ExitConfigError, inetl.ExitCodeForError(err))
}

func TestExecuteSchedule_InvalidCron(t *testing.T) {
	isolate(t)
	cmd, f := newTestScheduleCmd(t, "--cron", "whenever")

	err := executeSchedule(context.Background(), cmd, *f, nil, &bytes.Buffer{}, tui.ModePlain)
	assert.ErrorIs(t, err, inetl.ErrInvalidConfig)
}

func TestExecuteSchedule_RunsNowThenStops(t *testing.T) {
	dir := isolate(t)
	fixtures.NewSourceFixtureBuilder().AfghanistanAlbania().Write(t, dir)

	cmd, f := newTestScheduleCmd(t, "--driver", "sqlite", "-d", "customers.db", "--log-file", "-",
		"--cron", "@daily", "--now")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var stderr bytes.Buffer
	err := executeSchedule(ctx, cmd, *f, nil, &stderr, tui.ModePlain)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "Run triggered by --now")
	assert.Contains(t, stderr.String(), "internet_users (2 row(s), sqlite)")
	assert.Contains(t, stderr.String(), "Scheduler stopped after 1 run(s)")
}
