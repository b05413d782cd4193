package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const banner = `  _            _   _
 (_)_ __   ___| |_| |
 | | '_ \ / _ \ __| |
 | | | | |  __/ |_| |
 |_|_| |_|\___|\__|_|`

var rootCmd = &cobra.Command{
	Use:   "inetl",
	Short: "Internet-usage statistics ETL job",
	Long: banner + `

inetl extracts internet-usage statistics from one CSV file, normalizes the
rate, year and user-count columns, and writes the result both to a CSV file
and to a relational table. Each run fully replaces both destinations.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Destination database unreachable
  20 - Source file not found
  21 - Source file cannot be parsed
  22 - Invalid value (strict year policy)
  23 - Destination table has an incompatible schema
  24 - Load transaction failed and was rolled back
  25 - Destination file could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	// -h is the PostgreSQL host flag; help keeps only its long form
	rootCmd.PersistentFlags().Bool("help", false, "Help for inetl")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
