package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/inetl/internal/extract"
	"github.com/vvka-141/inetl/internal/load"
	"github.com/vvka-141/inetl/internal/transform"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// ExtractorFactory builds the extractor for one run's configuration.
type ExtractorFactory func(config inetl.RunConfig) (inetl.Extractor, error)

// TransformerFactory builds the transformer for one run's configuration.
type TransformerFactory func(config inetl.RunConfig) (inetl.Transformer, error)

// StateObserver is called after every state transition.
type StateObserver func(from, to inetl.RunState)

// Runner executes runs. It holds no per-run state and may be reused.
type Runner struct {
	newExtractor   ExtractorFactory
	newTransformer TransformerFactory
	loader         inetl.Loader
	logger         inetl.Logger
	observers      []StateObserver
	now            func() time.Time
}

// NewRunner creates a Runner with all dependencies injected.
// Panics on nil dependencies; those are wiring mistakes, not run failures.
func NewRunner(
	newExtractor ExtractorFactory,
	newTransformer TransformerFactory,
	loader inetl.Loader,
	logger inetl.Logger,
) *Runner {
	if newExtractor == nil {
		panic("newExtractor cannot be nil")
	}
	if newTransformer == nil {
		panic("newTransformer cannot be nil")
	}
	if loader == nil {
		panic("loader cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Runner{
		newExtractor:   newExtractor,
		newTransformer: newTransformer,
		loader:         loader,
		logger:         logger,
		now:            time.Now,
	}
}

// NewDefaultRunner wires the CSV extractor, the value transformer and the
// file + table loader.
func NewDefaultRunner(logger inetl.Logger) *Runner {
	return NewRunner(
		CSVExtractorFactory(logger),
		TransformerFactoryFor(logger),
		load.NewLoader(load.NewCSVSink(logger), load.NewStoreOpener(logger), logger),
		logger,
	)
}

// CSVExtractorFactory returns a factory for extractors honoring the run's
// encoding and delimiter.
func CSVExtractorFactory(logger inetl.Logger) ExtractorFactory {
	return func(config inetl.RunConfig) (inetl.Extractor, error) {
		if err := extract.ValidateEncoding(config.Encoding); err != nil {
			return nil, err
		}
		opts := []extract.Option{extract.WithEncoding(config.Encoding)}
		if config.Delimiter != 0 {
			opts = append(opts, extract.WithDelimiter(config.Delimiter))
		}
		return extract.New(logger, opts...), nil
	}
}

// TransformerFactoryFor returns a factory for transformers using the run's year policy.
func TransformerFactoryFor(logger inetl.Logger) TransformerFactory {
	return func(config inetl.RunConfig) (inetl.Transformer, error) {
		return transform.New(config.YearPolicy, logger), nil
	}
}

// OnStateChange registers an observer for state transitions.
func (r *Runner) OnStateChange(observer StateObserver) {
	if observer != nil {
		r.observers = append(r.observers, observer)
	}
}

// run carries the state of a single Run call.
type run struct {
	runner *Runner
	result *inetl.RunResult
}

func (x *run) transition(to inetl.RunState) {
	from := x.result.State
	if !from.CanTransition(to) {
		panic(fmt.Sprintf("illegal run state transition %s → %s", from, to))
	}
	x.result.State = to
	x.runner.logger.Verbose("Run %s: %s → %s", x.result.RunID, from, to)
	for _, o := range x.runner.observers {
		o(from, to)
	}
}

func (x *run) fail(stage inetl.Stage, err error) error {
	x.result.FailedStage = stage
	x.transition(inetl.StateFailed)
	return &inetl.StageError{Stage: stage, Err: err}
}

// Run validates config and executes Extract → Transform → Load.
// The returned result is never nil; on error its State is Failed and
// FailedStage names the stage, as does the *inetl.StageError.
func (r *Runner) Run(ctx context.Context, config inetl.RunConfig) (*inetl.RunResult, error) {
	runID := config.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	x := &run{
		runner: r,
		result: &inetl.RunResult{
			RunID:     runID,
			State:     inetl.StateStart,
			StartedAt: r.now(),
		},
	}
	defer func() {
		x.result.Duration = r.now().Sub(x.result.StartedAt)
	}()

	if err := config.Validate(); err != nil {
		return x.result, x.fail(inetl.StageConfig, err)
	}
	extractor, err := r.newExtractor(config)
	if err != nil {
		return x.result, x.fail(inetl.StageConfig, err)
	}
	transformer, err := r.newTransformer(config)
	if err != nil {
		return x.result, x.fail(inetl.StageConfig, err)
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	r.logger.Info("Extracting %s", config.SourcePath)
	table, err := extractor.Extract(ctx, config.SourcePath)
	if err != nil {
		return x.result, x.fail(inetl.StageExtract, err)
	}
	x.result.ExtractedRows = table.Len()
	x.transition(inetl.StateExtracted)
	r.logger.Info("Extracted %d row(s)", x.result.ExtractedRows)

	records, err := transformer.Transform(table)
	if err != nil {
		return x.result, x.fail(inetl.StageTransform, err)
	}
	if len(records) != table.Len() {
		return x.result, x.fail(inetl.StageTransform,
			fmt.Errorf("transform produced %d record(s) from %d row(s)", len(records), table.Len()))
	}
	x.result.TransformedRows = len(records)
	x.transition(inetl.StateTransformed)
	r.logger.Info("Transformed %d row(s) (year policy %s)", len(records), config.YearPolicy)

	loaded, err := r.loader.Load(ctx, config, records)
	x.result.Load = loaded
	if err != nil {
		return x.result, x.fail(inetl.StageLoad, err)
	}
	x.transition(inetl.StateLoaded)

	x.transition(inetl.StateDone)
	r.logger.Info("Run %s completed", x.result.RunID)
	return x.result, nil
}
