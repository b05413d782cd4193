package db

import (
	"fmt"
	"strconv"

	"github.com/vvka-141/inetl/internal/config"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use DB_PASSWORD (environment or .env file) or a connection string instead.
type GranularConnFlags struct {
	Driver   string
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided by the user.
// Note: Database flag is excluded from this check because it can be used to override
// the database specified in a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Driver == "" && g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// ResolveConnectionParams resolves the destination connection with this precedence:
//
// 1. Connection string flag (--connection) - if provided, parse and use directly
// 2. DATABASE_URL environment variable - if no granular flags were given
// 3. Per field: granular flag > DB_* variable > inetl.yaml > default
//
// The -d flag overrides the database of a connection string.
//
// Conflict Detection:
// Returns error if BOTH --connection flag AND granular flags are provided.
// This prevents ambiguity and ensures clear user intent.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	envVars *config.EnvVars,
	projectConfig *config.ProjectConfig,
) (*inetl.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if envVars == nil {
		envVars = &config.EnvVars{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (--driver, -h, -p, -U, --sslmode)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"postgresql://admin@localhost:5432/app_db\"\n"+
				"  2. Granular flags: -h localhost -p 5432 -U admin -d app_db\n"+
				"  3. Environment variables: export DB_HOST=localhost DB_PORT=5432 DB_USER=admin: %w",
			inetl.ErrInvalidConfig,
		)
	}

	var cfg *inetl.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		cfg, err = resolveFromConnectionString(envVars.DATABASE_URL, envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, projectConfig)
	}
	if err != nil {
		return nil, err
	}

	if granularFlags.Database != "" {
		cfg.Database = granularFlags.Database
	}
	if cfg.AppName == "" && cfg.Driver == inetl.DriverPostgres {
		cfg.AppName = inetl.DefaultAppName
	}

	return cfg, nil
}

// resolveFromConnectionString parses a connection string. DB_PASSWORD fills in
// a password the string leaves out, and DB_SSLMODE an sslmode, following
// libpq's environment fallback behavior.
func resolveFromConnectionString(connStr string, envVars *config.EnvVars) (*inetl.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %v: %w", err, inetl.ErrInvalidConfig)
	}

	if cfg.Driver == inetl.DriverPostgres {
		if cfg.Password == "" {
			cfg.Password = envVars.DB_PASSWORD
		}
		if cfg.SSLMode == "" {
			cfg.SSLMode = envVars.DB_SSLMODE
		}
		if cfg.SSLMode == "" {
			cfg.SSLMode = inetl.DefaultSSLMode
		}
	}

	return cfg, nil
}

// resolveFromGranularParams builds ConnectionConfig from granular flags,
// environment variables and inetl.yaml.
//
// Precedence for each parameter:
// 1. CLI flag (highest priority)
// 2. Environment variable
// 3. inetl.yaml
// 4. Default value (lowest priority)
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *config.EnvVars,
	projectConfig *config.ProjectConfig,
) (*inetl.ConnectionConfig, error) {
	cfg := &inetl.ConnectionConfig{
		AdditionalParams: make(map[string]string),
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	driver, err := inetl.ParseDriver(firstNonEmpty(flags.Driver, envVars.DB_DRIVER, pc.Driver))
	if err != nil {
		return nil, err
	}
	cfg.Driver = driver

	// Database: flag > DB_NAME > inetl.yaml > default
	cfg.Database = firstNonEmpty(flags.Database, envVars.DB_NAME, pc.Database, inetl.DefaultDBName)

	if driver == inetl.DriverSQLite {
		return cfg, nil
	}

	cfg.Host = firstNonEmpty(flags.Host, envVars.DB_HOST, pc.Host, inetl.DefaultDBHost)

	// Port: flag > DB_PORT > inetl.yaml > default
	if flags.Port != 0 {
		cfg.Port = flags.Port
	} else if envVars.DB_PORT != "" {
		port, err := strconv.Atoi(envVars.DB_PORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $DB_PORT value '%s': must be an integer: %w", envVars.DB_PORT, inetl.ErrInvalidConfig)
		}
		cfg.Port = port
	} else if pc.Port != 0 {
		cfg.Port = pc.Port
	} else {
		cfg.Port = inetl.DefaultDBPort
	}

	cfg.Username = firstNonEmpty(flags.Username, envVars.DB_USER, pc.Username, inetl.DefaultDBUser)

	// Password never comes from a flag or inetl.yaml.
	cfg.Password = envVars.DB_PASSWORD
	if cfg.Password == "" && cfg.Username == inetl.DefaultDBUser {
		cfg.Password = inetl.DefaultDBPassword
	}

	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.DB_SSLMODE, pc.SSLMode, inetl.DefaultSSLMode)

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
