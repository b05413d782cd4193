package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalSourcePath accepts zero or one source path argument.
// Returns a helpful error message with usage and examples if there are too many.
func OptionalSourcePath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./internet_users.csv --output ./transformed_internet_users_data.csv`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
