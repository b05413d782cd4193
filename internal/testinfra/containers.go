// Package testinfra starts disposable database servers for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// PostgresImage is the server the job is deployed against.
const PostgresImage = "postgres:17-alpine"

// PostgresContainer is a running server plus a connection string for it.
type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// StartSimplePostgres starts a PostgreSQL server carrying the job's default
// database, user and password, so tests exercise the same defaults a bare
// "inetl run" resolves to.
func StartSimplePostgres(ctx context.Context) (*PostgresContainer, error) {
	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithDatabase(inetl.DefaultDBName),
		postgres.WithUsername(inetl.DefaultDBUser),
		postgres.WithPassword(inetl.DefaultDBPassword),
		// Ready is logged once by the init server and again by the real one
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", PostgresImage, err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable", "application_name="+inetl.DefaultAppName)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("connection string for %s: %w", PostgresImage, err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}
