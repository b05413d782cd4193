package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/inetl/internal/config"
	"github.com/vvka-141/inetl/internal/logging"
	"github.com/vvka-141/inetl/pkg/inetl"
)

// Log formats accepted by --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// disabledLogFile turns the progress log off when given as --log-file.
const disabledLogFile = "-"

// runFlagValues holds the flags shared by run and config.
type runFlagValues struct {
	configFile string
	envFiles   []string

	connection, driver, host, username, database, sslMode string
	port                                                  int

	source, output, table string
	yearPolicy            string
	encoding, delimiter   string
	timeout               time.Duration

	logFormat, logFile string
}

// addRunFlags registers the job flags on cmd, bound to f.
func addRunFlags(cmd *cobra.Command, f *runFlagValues) {
	flags := cmd.Flags()

	flags.StringVar(&f.configFile, "config", "",
		"Project file (default: ./"+config.ConfigFileName+" when present)")
	flags.StringSliceVar(&f.envFiles, "env-file", nil,
		"Load variables from .env files (can be specified multiple times)\n"+
			"Later files override earlier ones; the process environment overrides all")

	// Connection string flag (mutually exclusive with granular flags)
	flags.StringVar(&f.connection, "connection", "",
		"Destination connection string (URI, key=value or sqlite://path).\n"+
			"Mutually exclusive with --driver, --host, --port, --username, --sslmode.\n"+
			"Alternative: DATABASE_URL environment variable.\n"+
			"Example: postgresql://admin@localhost:5432/app_db")
	flags.StringVar(&f.driver, "driver", "",
		"Destination store: postgres|sqlite\n"+
			"Precedence: --driver > $DB_DRIVER > inetl.yaml > postgres")

	// Granular connection flags (PostgreSQL standard)
	flags.StringVarP(&f.host, "host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $DB_HOST > inetl.yaml > "+inetl.DefaultDBHost)
	flags.IntVarP(&f.port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $DB_PORT > inetl.yaml > 5432")
	flags.StringVarP(&f.username, "username", "U", "",
		"PostgreSQL user (default: $DB_USER or "+inetl.DefaultDBUser+")")
	flags.StringVarP(&f.database, "database", "d", "",
		"Database name, or database file for sqlite\n"+
			"Overrides the database of a connection string (default: $DB_NAME or "+inetl.DefaultDBName+")")
	flags.StringVar(&f.sslMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: $DB_SSLMODE or "+inetl.DefaultSSLMode+")")

	// Job flags
	flags.StringVar(&f.source, "source", "",
		"Source CSV file (default: $ETL_SOURCE or "+inetl.DefaultSourcePath+")")
	flags.StringVarP(&f.output, "output", "o", "",
		"Destination CSV file (default: $ETL_OUTPUT or "+inetl.DefaultOutputPath+")")
	flags.StringVarP(&f.table, "table", "t", "",
		"Destination table, optionally schema-qualified (default: $ETL_TABLE or "+inetl.DefaultTableName+")")
	flags.StringVar(&f.yearPolicy, "year-policy", "",
		"Malformed value handling: coerce (null out) or strict (fail the run)\n"+
			"(default: $ETL_YEAR_POLICY or coerce)")
	flags.StringVar(&f.encoding, "encoding", "",
		"Source text encoding (default: utf-8)")
	flags.StringVar(&f.delimiter, "delimiter", "",
		"Source column delimiter: a single character or 'tab' (default: ,)")
	flags.DurationVar(&f.timeout, "timeout", inetl.DefaultTimeout,
		"Upper bound for the whole run\n"+
			"Prevents indefinite hangs from network issues or locks\n"+
			"Examples: 30s, 5m")

	// Logging flags
	flags.StringVar(&f.logFormat, "log-format", LogFormatConsole,
		"Log format on stderr: console|json")
	flags.StringVar(&f.logFile, "log-file", "",
		"Progress log appended on every run, '-' to disable\n"+
			"(default: $ETL_LOG_FILE or "+inetl.DefaultLogFilePath+")")

	_ = cmd.RegisterFlagCompletionFunc("sslmode", completeSSLModes)
	_ = cmd.RegisterFlagCompletionFunc("driver", completeFixed(driverNames))
	_ = cmd.RegisterFlagCompletionFunc("year-policy", completeFixed(yearPolicyNames))
	_ = cmd.RegisterFlagCompletionFunc("encoding", completeEncodings)
	_ = cmd.RegisterFlagCompletionFunc("log-format", completeFixed(logFormatNames))
}

// runSetup is the outcome of resolving flags, environment and inetl.yaml.
type runSetup struct {
	Config    inetl.RunConfig
	LogFormat string
	LogFile   string
}

// buildRunSetup builds the immutable RunConfig from CLI flags, environment
// and inetl.yaml. Precedence per field: flag > env > inetl.yaml > default.
// The optional positional argument is the source path and beats --source.
func buildRunSetup(cmd *cobra.Command, f runFlagValues, args []string, verbose bool) (*runSetup, error) {
	env, err := config.LoadEnvironment(f.envFiles...)
	if err != nil {
		return nil, err
	}

	projectCfg, err := loadProjectConfig(f.configFile)
	if err != nil {
		return nil, err
	}
	pc := projectCfg
	if pc == nil {
		pc = &config.ProjectConfig{}
	}

	connConfig, err := resolveConnection(f, env, projectCfg)
	if err != nil {
		return nil, err
	}

	argSource := ""
	if len(args) > 0 {
		argSource = args[0]
	}

	policy, err := inetl.ParseYearPolicy(firstNonEmpty(f.yearPolicy, env.ETL_YEAR_POLICY, pc.YearPolicy))
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(firstNonEmpty(f.delimiter, pc.Delimiter))
	if err != nil {
		return nil, err
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, f.timeout)
	if err != nil {
		return nil, err
	}

	logFormat := strings.ToLower(f.logFormat)
	if logFormat != LogFormatConsole && logFormat != LogFormatJSON {
		return nil, fmt.Errorf("unknown log format %q (expected console or json): %w", f.logFormat, inetl.ErrInvalidConfig)
	}

	logFile := firstNonEmpty(f.logFile, env.ETL_LOG_FILE, pc.LogFile, inetl.DefaultLogFilePath)
	if logFile == disabledLogFile {
		logFile = ""
	}

	return &runSetup{
		Config: inetl.RunConfig{
			SourcePath: firstNonEmpty(argSource, f.source, env.ETL_SOURCE, pc.Source, inetl.DefaultSourcePath),
			OutputPath: firstNonEmpty(f.output, env.ETL_OUTPUT, pc.Output, inetl.DefaultOutputPath),
			TableName:  firstNonEmpty(f.table, env.ETL_TABLE, pc.Table, inetl.DefaultTableName),
			Connection: *connConfig,
			YearPolicy: policy,
			Encoding:   firstNonEmpty(f.encoding, pc.Encoding),
			Delimiter:  delimiter,
			Timeout:    timeout,
			Verbose:    verbose,
		},
		LogFormat: logFormat,
		LogFile:   logFile,
	}, nil
}

// loadProjectConfig loads an explicit project file, or inetl.yaml from the
// working directory. Returns nil config if inetl.yaml does not exist (not an
// error); an explicit --config that does not exist is an error.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", path, err, inetl.ErrInvalidConfig)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, err, inetl.ErrInvalidConfig)
	}
	return cfg, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring inetl.yaml if flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, err := time.ParseDuration(projectCfg.Timeout)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout in %s: %v: %w", config.ConfigFileName, err, inetl.ErrInvalidConfig)
		}
		return parsed, nil
	}
	return flagTimeout, nil
}

// parseDelimiter converts a delimiter setting to a rune. Empty means the default.
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character: %w", s, inetl.ErrInvalidConfig)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// buildLogger assembles the run logger: console or JSON on stderr, plus the
// progress log file when enabled.
func buildLogger(setup *runSetup, runID uuid.UUID, stderr io.Writer) inetl.Logger {
	verbose := setup.Config.Verbose

	var primary inetl.Logger
	if setup.LogFormat == LogFormatJSON {
		primary = logging.NewJSONLogger(stderr, runID, verbose)
	} else {
		primary = logging.NewConsoleLoggerTo(stderr, verbose)
	}

	if setup.LogFile == "" {
		return primary
	}
	return logging.NewMultiLogger(primary, logging.NewProgressLogger(setup.LogFile, verbose))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
