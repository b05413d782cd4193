package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/inetl/internal/extract"
)

// sslModes contains valid PostgreSQL SSL modes for shell completion.
var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

var (
	driverNames     = []string{"postgres", "sqlite"}
	yearPolicyNames = []string{"coerce", "strict"}
	logFormatNames  = []string{LogFormatConsole, LogFormatJSON}
)

// completeSSLModes provides shell completion for SSL mode flag values.
func completeSSLModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return matchPrefix(sslModes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeEncodings provides shell completion for source encodings.
func completeEncodings(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return matchPrefix(extract.SupportedEncodings(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeFixed completes from a fixed list of values.
func completeFixed(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return matchPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeSourceFiles restricts the positional source argument to CSV files.
func completeSourceFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"csv", "txt"}, cobra.ShellCompDirectiveFilterFileExt
}

func matchPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
