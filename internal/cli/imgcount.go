package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/internal/imgcount"
)

var imgcountFlags struct {
	update bool
}

var imgcountCmd = &cobra.Command{
	Use:   "imgcount [path]",
	Short: "Count the images of a content package",
	Long: `Count image files (.jpg .jpeg .png .gif .svg) below a package directory.

The path defaults to the working directory. With --update the count is
stored as the images field of PATH/info.json; only generations that track
images accept the update.`,
	Example: `  pkgmeta imgcount packages/abc
  pkgmeta imgcount --update packages/abc`,
	Args:              OptionalPath,
	RunE:              runImgcount,
	ValidArgsFunction: completeDirectories,
}

func init() {
	rootCmd.AddCommand(imgcountCmd)

	imgcountCmd.Flags().BoolVarP(&imgcountFlags.update, "update", "u", false,
		"Write the count into the package's info.json")
}

func runImgcount(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	verbose := getVerboseFlag(cmd)
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	fsys := filesystem.NewOSFileSystem()
	counter := imgcount.NewCounter(fsys, logger)

	count, err := counter.Count(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "images found: %d\n", count)

	if !imgcountFlags.update {
		return nil
	}

	cfg, err := loadProjectConfig(configDir)
	if err != nil {
		return err
	}

	dir := path
	if info, err := fsys.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	updated, err := counter.UpdateDocument(dir, count, cfg.Indent)
	if err != nil {
		return err
	}
	logger.Info("Updated %s", updated)
	return nil
}
