package cli

import (
	"github.com/vvka-141/inetl/internal/config"
	"github.com/vvka-141/inetl/internal/db"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// resolveConnection resolves the destination store from the connection
// string flag, granular flags, the environment snapshot and inetl.yaml.
func resolveConnection(
	f runFlagValues,
	env *config.EnvVars,
	projectConfig *config.ProjectConfig,
) (*inetl.ConnectionConfig, error) {
	granularFlags := &db.GranularConnFlags{
		Driver:   f.driver,
		Host:     f.host,
		Port:     f.port,
		Username: f.username,
		Database: f.database,
		SSLMode:  f.sslMode,
	}

	return db.ResolveConnectionParams(f.connection, granularFlags, env, projectConfig)
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
// The password never appears.
func logConnectionVerbose(logger inetl.Logger, connConfig *inetl.ConnectionConfig) {
	logger.Verbose("Connection resolved:")
	logger.Verbose("  Driver: %s", connConfig.Driver)
	if connConfig.Driver == inetl.DriverSQLite {
		logger.Verbose("  Database File: %s", connConfig.Database)
		return
	}
	logger.Verbose("  Host: %s", connConfig.Host)
	logger.Verbose("  Port: %d", connConfig.Port)
	logger.Verbose("  User: %s", connConfig.Username)
	logger.Verbose("  Database: %s", connConfig.Database)
	logger.Verbose("  SSL Mode: %s", connConfig.SSLMode)
}
