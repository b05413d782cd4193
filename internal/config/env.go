package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// DotEnvFileName is loaded from the working directory when present.
const DotEnvFileName = ".env"

// EnvVars is a snapshot of the environment variables the job understands.
// It is taken once at startup so that no business logic reads the process
// environment directly.
type EnvVars struct {
	DB_HOST      string // Database server host
	DB_PORT      string // Database server port
	DB_NAME      string // Database name (file path for sqlite)
	DB_USER      string // Database user
	DB_PASSWORD  string // Database password
	DB_DRIVER    string // postgres or sqlite
	DB_SSLMODE   string // PostgreSQL sslmode
	DATABASE_URL string // Full connection string (Heroku/Rails convention)

	ETL_SOURCE      string // Source CSV path
	ETL_OUTPUT      string // Artifact CSV path
	ETL_TABLE       string // Destination table
	ETL_YEAR_POLICY string // coerce or strict
	ETL_LOG_FILE    string // Progress log path
}

// envKeys lists every variable captured by EnvVars.
var envKeys = []string{
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_DRIVER", "DB_SSLMODE", "DATABASE_URL",
	"ETL_SOURCE", "ETL_OUTPUT", "ETL_TABLE", "ETL_YEAR_POLICY", "ETL_LOG_FILE",
}

// LoadEnvironment builds the snapshot from dotenv files and the process environment.
//
// Precedence (highest first): process environment, explicit env files in
// order (later wins), .env in the working directory. A missing .env is
// ignored; a missing explicit file is an error.
func LoadEnvironment(envFiles ...string) (*EnvVars, error) {
	values := make(map[string]string)

	dotenv, err := godotenv.Read(DotEnvFileName)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DotEnvFileName, err)
	}
	for k, v := range dotenv {
		values[k] = v
	}

	for _, path := range envFiles {
		fileVals, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %v: %w", path, err, inetl.ErrInvalidConfig)
		}
		for k, v := range fileVals {
			values[k] = v
		}
	}

	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	return EnvFromMap(values), nil
}

// EnvFromMap builds a snapshot from explicit values, for tests and embedding.
func EnvFromMap(m map[string]string) *EnvVars {
	return &EnvVars{
		DB_HOST:         m["DB_HOST"],
		DB_PORT:         m["DB_PORT"],
		DB_NAME:         m["DB_NAME"],
		DB_USER:         m["DB_USER"],
		DB_PASSWORD:     m["DB_PASSWORD"],
		DB_DRIVER:       m["DB_DRIVER"],
		DB_SSLMODE:      m["DB_SSLMODE"],
		DATABASE_URL:    m["DATABASE_URL"],
		ETL_SOURCE:      m["ETL_SOURCE"],
		ETL_OUTPUT:      m["ETL_OUTPUT"],
		ETL_TABLE:       m["ETL_TABLE"],
		ETL_YEAR_POLICY: m["ETL_YEAR_POLICY"],
		ETL_LOG_FILE:    m["ETL_LOG_FILE"],
	}
}
