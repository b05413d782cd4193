package schedule

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// DefaultDebounce coalesces the burst of events editors and copy tools emit
// for one change of the watched file.
const DefaultDebounce = 500 * time.Millisecond

// Job performs one complete run.
type Job func(ctx context.Context) error

// Scheduler triggers a Job from cron expressions and file changes.
// Configure it with AddCron and WatchFile before calling Run.
type Scheduler struct {
	job      Job
	logger   inetl.Logger
	debounce time.Duration

	cronExprs  []string
	watchPaths []string

	running sync.Mutex
	wg      sync.WaitGroup

	mu      sync.Mutex
	runs    int
	skipped int
}

// New creates a Scheduler. Panics if job or logger is nil.
func New(job Job, logger inetl.Logger) *Scheduler {
	if job == nil {
		panic("job cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scheduler{job: job, logger: logger, debounce: DefaultDebounce}
}

// SetDebounce overrides DefaultDebounce.
func (s *Scheduler) SetDebounce(d time.Duration) {
	s.debounce = d
}

// AddCron registers a standard five-field cron expression or a descriptor
// such as @hourly or "@every 10m".
func (s *Scheduler) AddCron(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %v: %w", expr, err, inetl.ErrInvalidConfig)
	}
	s.cronExprs = append(s.cronExprs, expr)
	return nil
}

// WatchFile triggers a run whenever path is written or re-created.
func (s *Scheduler) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid watch path %q: %v: %w", path, err, inetl.ErrInvalidConfig)
	}
	s.watchPaths = append(s.watchPaths, abs)
	return nil
}

// Stats returns the number of completed and skipped runs.
func (s *Scheduler) Stats() (runs, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs, s.skipped
}

// Trigger runs the job now unless a run is already in progress.
// Returns false when the trigger was skipped.
func (s *Scheduler) Trigger(ctx context.Context, reason string) bool {
	if !s.running.TryLock() {
		s.mu.Lock()
		s.skipped++
		s.mu.Unlock()
		s.logger.Info("Skipping run triggered by %s: previous run still in progress", reason)
		return false
	}
	defer s.running.Unlock()

	if ctx.Err() != nil {
		return false
	}

	s.logger.Info("Run triggered by %s", reason)
	if err := s.job(ctx); err != nil {
		s.logger.Error("Run triggered by %s failed: %v", reason, err)
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()
	return true
}

// Run starts the cron schedule and file watchers and blocks until ctx is
// cancelled. It waits for an in-progress run before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.cronExprs) == 0 && len(s.watchPaths) == 0 {
		return fmt.Errorf("nothing to schedule: add a cron expression or a watched file: %w", inetl.ErrInvalidConfig)
	}

	var watcher *fsnotify.Watcher
	if len(s.watchPaths) > 0 {
		var err error
		if watcher, err = s.newWatcher(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if len(s.cronExprs) > 0 {
		c := cron.New()
		for _, expr := range s.cronExprs {
			if _, err := c.AddFunc(expr, func() { s.Trigger(gctx, "cron "+expr) }); err != nil {
				if watcher != nil {
					watcher.Close()
				}
				return fmt.Errorf("invalid cron expression %q: %v: %w", expr, err, inetl.ErrInvalidConfig)
			}
		}
		c.Start()
		s.logger.Info("Scheduled %d cron expression(s)", len(s.cronExprs))

		g.Go(func() error {
			<-gctx.Done()
			// Stop prevents new runs and reports when the running one returns
			<-c.Stop().Done()
			return nil
		})
	}

	if watcher != nil {
		g.Go(func() error {
			defer watcher.Close()
			return s.watch(gctx, watcher)
		})
	}

	err := g.Wait()
	s.wg.Wait()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// newWatcher watches the parent directories of every watched file, so that
// files replaced by rename are still seen.
func (s *Scheduler) newWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dirs := make(map[string]bool)
	for _, p := range s.watchPaths {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %v: %w", dir, err, inetl.ErrInvalidConfig)
		}
		dirs[dir] = true
	}
	s.logger.Info("Watching %d file(s)", len(s.watchPaths))
	return watcher, nil
}

func (s *Scheduler) watch(ctx context.Context, watcher *fsnotify.Watcher) error {
	watched := make(map[string]bool, len(s.watchPaths))
	for _, p := range s.watchPaths {
		watched[p] = true
	}

	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			if t.Stop() {
				s.wg.Done()
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || !watched[path] {
				continue
			}
			if t, exists := timers[path]; exists && t.Stop() {
				s.wg.Done()
			}
			s.wg.Add(1)
			timers[path] = time.AfterFunc(s.debounce, func() {
				defer s.wg.Done()
				s.Trigger(ctx, "change of "+path)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("File watcher: %v", err)
		}
	}
}
