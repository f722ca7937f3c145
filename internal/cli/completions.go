package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgmeta/internal/metadata"
)

// completeLicenses provides shell completion for the --license flag.
func completeLicenses(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return matchPrefix(metadata.Licenses, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeGenerations provides shell completion for the --generation flag.
func completeGenerations(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	gens := make([]string, 0, metadata.LatestGeneration+1)
	for gen := 0; gen <= metadata.LatestGeneration; gen++ {
		gens = append(gens, strconv.Itoa(gen))
	}
	return matchPrefix(gens, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
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
