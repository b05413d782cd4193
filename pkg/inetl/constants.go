package inetl

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Run reached the Done state
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitConnectionError  = 11 // Destination store unreachable
	ExitSourceNotFound   = 20 // Source file missing
	ExitSourceParse      = 21 // Source file is not a valid table
	ExitInvalidValue     = 22 // Strict-mode transform rejected a value
	ExitSchemaMismatch   = 23 // Existing table has an incompatible schema
	ExitLoadTransaction  = 24 // Replace transaction failed and was rolled back
	ExitArtifactWrite    = 25 // Destination file could not be written
)

// Defaults used when neither flags, environment nor inetl.yaml provide a value.
const (
	DefaultDBHost     = "localhost"
	DefaultDBName     = "app_db"
	DefaultDBUser     = "admin"
	DefaultDBPassword = "admin123"
	DefaultDBPort     = 5432
	DefaultSSLMode    = "prefer"

	DefaultSourcePath  = "internet_users.csv"
	DefaultOutputPath  = "transformed_internet_users_data.csv"
	DefaultTableName   = "internet_users"
	DefaultLogFilePath = "log_file.txt"

	// DefaultTimeout guards against a hung database; the job itself is short.
	DefaultTimeout = 5 * time.Minute

	// DefaultAppName is reported to PostgreSQL as application_name.
	DefaultAppName = "inetl"
)
