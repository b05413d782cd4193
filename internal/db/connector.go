package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns bounds the pool; a run uses one connection at a time.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime releases connections idle past one run.
	DefaultMaxConnIdleTime = 10 * time.Minute

	// DefaultConnectTimeout applies when the connection string sets none.
	DefaultConnectTimeout = 10 * time.Second
)

func configurePool(poolConfig *pgxpool.Config, logger inetl.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	if poolConfig.ConnConfig.ConnectTimeout == 0 {
		poolConfig.ConnConfig.ConnectTimeout = DefaultConnectTimeout
	}
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("postgres %s: %s", strings.ToLower(notice.Severity), notice.Message)
	}
}

// Connector opens a PostgreSQL connection pool. A failed connection attempt
// is reported once; the job does not retry.
type Connector struct {
	config *inetl.ConnectionConfig
	logger inetl.Logger
}

// NewConnector creates a Connector for config.
// Panics if config or logger is nil.
func NewConnector(config *inetl.ConnectionConfig, logger inetl.Logger) *Connector {
	if config == nil {
		panic("config cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Connector{config: config, logger: logger}
}

// Connect establishes a connection pool and verifies it with a ping.
// Every failure wraps inetl.ErrConnection.
func (c *Connector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := BuildConnectionString(c.config)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %v: %w", err, inetl.ErrConnection)
	}
	configurePool(poolConfig, c.logger)

	c.logger.Verbose("Connecting to %s", RedactedConnectionString(c.config))

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, c.config)
	}

	return pool, nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// The result always matches inetl.ErrConnection.
func wrapConnectionError(err error, config *inetl.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	host, port, database := config.Host, config.Port, config.Database
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port (check DB_HOST and DB_PORT)
  - Firewall blocking the connection

Original error: %w: %w`, addr, host, port, err, inetl.ErrConnection)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled (check DB_HOST)
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w: %w`, host, err, inetl.ErrConnection)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check DB_PASSWORD or the .env file)
  - Wrong username (check DB_USER)
  - User does not have access to the database

Original error: %w: %w`, database, err, inetl.ErrConnection)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

To create it:
  createdb %s

Original error: %w: %w`, database, database, err, inetl.ErrConnection)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w: %w`, addr, err, inetl.ErrConnection)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but DB_SSLMODE / --sslmode is wrong
  - Certificate verification failed (try --sslmode=require)

Original error: %w: %w`, err, inetl.ErrConnection)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`too many connections to database "%s"

Possible causes:
  - max_connections limit reached in postgresql.conf
  - Stale connections from previous runs

Original error: %w: %w`, database, err, inetl.ErrConnection)

	default:
		return fmt.Errorf("failed to connect to database: %w: %w", err, inetl.ErrConnection)
	}
}
