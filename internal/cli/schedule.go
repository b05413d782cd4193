package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/inetl/internal/pipeline"
	"github.com/vvka-141/inetl/internal/schedule"
	"github.com/vvka-141/inetl/internal/tui"
	"github.com/vvka-141/inetl/pkg/inetl"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [source]",
	Short: "Re-run the job on a schedule or when the source changes",
	Long: `Schedule keeps running and starts a complete run on every trigger:

  --cron    standard cron expressions or descriptors (@hourly, "@every 15m")
  --watch   every write to the source file

Runs never overlap; a trigger during a run is skipped. The configuration is
resolved once at startup, exactly as for "inetl run". Stop with Ctrl+C; an
in-progress run is cancelled and its transaction rolled back.

Examples:
  # Refresh the table every hour
  inetl schedule --cron @hourly

  # Reload whenever the export is replaced, and once right away
  inetl schedule --watch --now`,
	Args:              OptionalSourcePath,
	ValidArgsFunction: completeSourceFiles,
	RunE:              runSchedule,
}

type scheduleFlagValues struct {
	runFlagValues
	cron  []string
	watch bool
	now   bool
}

var scheduleFlags scheduleFlagValues

func init() {
	rootCmd.AddCommand(scheduleCmd)
	addRunFlags(scheduleCmd, &scheduleFlags.runFlagValues)
	addScheduleFlags(scheduleCmd, &scheduleFlags)
}

func addScheduleFlags(cmd *cobra.Command, f *scheduleFlagValues) {
	cmd.Flags().StringArrayVar(&f.cron, "cron", nil,
		"Cron expression (can be specified multiple times)\n"+
			`Examples: "0 * * * *", @daily, "@every 30m"`)
	cmd.Flags().BoolVar(&f.watch, "watch", false,
		"Run whenever the source file changes")
	cmd.Flags().BoolVar(&f.now, "now", false,
		"Run once immediately before waiting for triggers")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return executeSchedule(ctx, cmd, scheduleFlags, args, os.Stderr, tui.DetectMode(os.Stderr))
}

// executeSchedule resolves the configuration once and runs the scheduler until ctx ends.
func executeSchedule(ctx context.Context, cmd *cobra.Command, f scheduleFlagValues, args []string, stderr io.Writer, mode tui.Mode) error {
	setup, err := buildRunSetup(cmd, f.runFlagValues, args, getVerboseFlag(cmd))
	if err != nil {
		return err
	}
	if err := setup.Config.Validate(); err != nil {
		return err
	}
	if len(f.cron) == 0 && !f.watch {
		return fmt.Errorf("schedule needs --cron or --watch: %w", inetl.ErrInvalidConfig)
	}

	schedLogger := buildLogger(setup, uuid.New(), stderr)
	scheduler := schedule.New(scheduledJob(setup, stderr, mode), schedLogger)

	for _, expr := range f.cron {
		if err := scheduler.AddCron(expr); err != nil {
			return err
		}
	}
	if f.watch {
		if err := scheduler.WatchFile(setup.Config.SourcePath); err != nil {
			return err
		}
	}

	if f.now {
		scheduler.Trigger(ctx, "--now")
	}

	if err := scheduler.Run(ctx); err != nil {
		return err
	}

	runs, skipped := scheduler.Stats()
	schedLogger.Info("Scheduler stopped after %d run(s), %d skipped trigger(s)", runs, skipped)
	return nil
}

// scheduledJob returns a Job performing one run with a fresh run ID and logger.
func scheduledJob(setup *runSetup, stderr io.Writer, mode tui.Mode) schedule.Job {
	return func(ctx context.Context) error {
		config := setup.Config
		config.RunID = uuid.New()

		logger := buildLogger(setup, config.RunID, stderr)
		result, err := pipeline.NewDefaultRunner(logger).Run(ctx, config)
		if setup.LogFormat == LogFormatConsole {
			fmt.Fprint(stderr, tui.RenderRunSummary(tui.PaletteFor(mode), config, result, err))
		}
		return err
	}
}
