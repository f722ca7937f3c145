package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `┌─┐┬┌─┌─┐┌┬┐┌─┐┌┬┐┌─┐
├─┘├┴┐│ ┬│││├┤  │ ├─┤
┴  ┴ ┴└─┘┴ ┴└─┘ ┴ ┴ ┴`

var rootCmd = &cobra.Command{
	Use:   "pkgmeta",
	Short: "Outernet package metadata validator, migrator and template generator",
	Long: asciiLogo + `

pkgmeta checks the info.json metadata of Outernet content packages against
the field rules of their generation, upgrades old documents to the latest
generation and writes new metadata skeletons.

Exit Codes:
  0  - Success
  1  - General error (a document is missing, malformed or invalid)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (pkgmeta.yaml)
  11 - Package directory already exists and is not empty
  12 - Overwrite of an existing file was not approved`,
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
	rootCmd.PersistentFlags().Bool("help", false, "Help for pkgmeta")
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
