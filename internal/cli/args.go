package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireDocumentPath validates that exactly one document path argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireDocumentPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <path>

Usage: %s

Example:
  %s ./packages/abc/info.json`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// OptionalPath accepts zero or one path argument.
func OptionalPath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 arg(s), received %d\n\nUsage: %s", len(args), cmd.UseLine())
	}
	return nil
}
