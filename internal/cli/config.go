package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/inetl/internal/config"
	"github.com/vvka-141/inetl/internal/db"
	"github.com/vvka-141/inetl/pkg/inetl"
)

var configCmd = &cobra.Command{
	Use:   "config [source]",
	Short: "Show the resolved configuration",
	Long: `Config prints the configuration a run would use, after applying
flags, environment variables, .env files and inetl.yaml. The password is
masked.

With --save, the resolved settings (without the password) are written to
inetl.yaml in the current directory so later runs need no flags.

Examples:
  # Inspect what "inetl run" would do
  inetl config

  # Pin a SQLite destination for this directory
  inetl config --driver sqlite -d ./customers.db --save`,
	Args: OptionalSourcePath,
	RunE: runConfig,
}

type configFlagValues struct {
	runFlagValues
	save bool
}

var configFlags configFlagValues

func init() {
	rootCmd.AddCommand(configCmd)
	addRunFlags(configCmd, &configFlags.runFlagValues)
	configCmd.Flags().BoolVar(&configFlags.save, "save", false,
		"Write the resolved settings to ./"+config.ConfigFileName)
}

func runConfig(cmd *cobra.Command, args []string) error {
	setup, err := buildRunSetup(cmd, configFlags.runFlagValues, args, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	if err := setup.Config.Validate(); err != nil {
		return err
	}

	printResolvedConfig(os.Stdout, setup)

	if configFlags.save {
		if err := saveProjectConfig(".", setup); err != nil {
			return fmt.Errorf("failed to write %s: %w", config.ConfigFileName, err)
		}
		fmt.Fprintf(os.Stderr, "\n✓ Configuration saved to %s\n", config.ConfigFileName)
	}
	return nil
}

// printResolvedConfig writes one "key: value" line per setting.
func printResolvedConfig(w io.Writer, setup *runSetup) {
	c := setup.Config
	delimiter := ","
	if c.Delimiter != 0 {
		delimiter = string(c.Delimiter)
	}
	encoding := c.Encoding
	if encoding == "" {
		encoding = "utf-8"
	}
	logFile := setup.LogFile
	if logFile == "" {
		logFile = "(disabled)"
	}

	fmt.Fprintf(w, "source:      %s\n", c.SourcePath)
	fmt.Fprintf(w, "output:      %s\n", c.OutputPath)
	fmt.Fprintf(w, "table:       %s\n", c.TableName)
	fmt.Fprintf(w, "connection:  %s\n", db.RedactedConnectionString(&c.Connection))
	fmt.Fprintf(w, "year_policy: %s\n", c.YearPolicy)
	fmt.Fprintf(w, "encoding:    %s\n", encoding)
	fmt.Fprintf(w, "delimiter:   %q\n", delimiter)
	fmt.Fprintf(w, "timeout:     %s\n", c.Timeout)
	fmt.Fprintf(w, "log_format:  %s\n", setup.LogFormat)
	fmt.Fprintf(w, "log_file:    %s\n", logFile)
}

// saveProjectConfig saves the resolved settings to inetl.yaml in dir,
// merging with any existing file. The password is never written.
func saveProjectConfig(dir string, setup *runSetup) error {
	cfg, err := config.Load(dir)
	if err != nil {
		cfg = &config.ProjectConfig{}
	}

	c := setup.Config
	conn := config.ConnectionConfig{
		Driver:   c.Connection.Driver.String(),
		Database: c.Connection.Database,
	}
	if c.Connection.Driver == inetl.DriverPostgres {
		conn.Host = c.Connection.Host
		conn.Port = c.Connection.Port
		conn.Username = c.Connection.Username
		conn.SSLMode = c.Connection.SSLMode
	}

	cfg.Connection = conn
	cfg.Source = c.SourcePath
	cfg.Output = c.OutputPath
	cfg.Table = c.TableName
	cfg.YearPolicy = c.YearPolicy.String()
	cfg.Encoding = c.Encoding
	if c.Delimiter != 0 {
		cfg.Delimiter = string(c.Delimiter)
	}
	if c.Timeout != inetl.DefaultTimeout {
		cfg.Timeout = c.Timeout.String()
	}
	if setup.LogFile != "" && setup.LogFile != inetl.DefaultLogFilePath {
		cfg.LogFile = setup.LogFile
	}

	return config.Save(dir, cfg)
}
