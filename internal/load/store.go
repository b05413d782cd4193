package load

import (
	"context"
	"fmt"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// NewStoreOpener returns an inetl.StoreOpener that selects the backend by driver.
// Panics if logger is nil.
func NewStoreOpener(logger inetl.Logger) inetl.StoreOpener {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return func(ctx context.Context, config *inetl.ConnectionConfig) (inetl.Store, error) {
		switch config.Driver {
		case inetl.DriverPostgres:
			store, err := OpenPostgres(ctx, config, logger)
			if err != nil {
				return nil, err
			}
			return store, nil
		case inetl.DriverSQLite:
			store, err := OpenSQLite(ctx, config, logger)
			if err != nil {
				return nil, err
			}
			return store, nil
		default:
			return nil, fmt.Errorf("unsupported driver %v: %w", config.Driver, inetl.ErrInvalidConfig)
		}
	}
}
