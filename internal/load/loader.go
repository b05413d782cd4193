package load

import (
	"context"
	"errors"
	"fmt"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// Loader writes records to the artifact and then to the table.
type Loader struct {
	artifacts inetl.ArtifactWriter
	openStore inetl.StoreOpener
	logger    inetl.Logger
}

// NewLoader creates a Loader with its dependencies.
// Panics if any dependency is nil.
func NewLoader(artifacts inetl.ArtifactWriter, openStore inetl.StoreOpener, logger inetl.Logger) *Loader {
	if artifacts == nil {
		panic("artifacts cannot be nil")
	}
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{artifacts: artifacts, openStore: openStore, logger: logger}
}

// Load writes both sinks. The artifact is written first, then the table; both
// are attempted regardless of the other's outcome, and all failures are
// returned joined. The store connection lives only for the duration of Load.
func (l *Loader) Load(ctx context.Context, config inetl.RunConfig, records []inetl.Record) (inetl.LoadResult, error) {
	result := inetl.LoadResult{
		ArtifactPath: config.OutputPath,
		TableName:    config.TableName,
	}
	var errs []error

	sum, err := l.artifacts.Write(ctx, config.OutputPath, records)
	if err != nil {
		l.logger.Error("Destination file %s not written: %v", config.OutputPath, err)
		errs = append(errs, fmt.Errorf("destination file %s: %w", config.OutputPath, err))
	} else {
		result.ArtifactChecksum = sum
		result.ArtifactRows = len(records)
		l.logger.Info("Wrote %d row(s) to %s", len(records), config.OutputPath)
	}

	n, err := l.loadTable(ctx, config, records)
	if err != nil {
		l.logger.Error("Destination table %s not replaced: %v", config.TableName, err)
		errs = append(errs, fmt.Errorf("destination table %s: %w", config.TableName, err))
	} else {
		result.TableRows = n
		l.logger.Info("Replaced %s with %d row(s)", config.TableName, n)
	}

	return result, errors.Join(errs...)
}

func (l *Loader) loadTable(ctx context.Context, config inetl.RunConfig, records []inetl.Record) (int64, error) {
	store, err := l.openStore(ctx, &config.Connection)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			l.logger.Verbose("Closing store: %v", cerr)
		}
	}()

	return store.ReplaceAll(ctx, config.TableName, records)
}

// Verify Loader implements inetl.Loader at compile time
var _ inetl.Loader = (*Loader)(nil)
