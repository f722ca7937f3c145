package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/internal/metadata"
)

var migrateFlags struct {
	write bool
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <path>",
	Short: "Upgrade a metadata document to the latest generation",
	Long: `Upgrade an info.json document to the latest metadata generation.

The migrated document is written to stdout. With --write the file is
rewritten in place. Documents already at the latest generation are left
unchanged. The migrated document is not validated; run 'pkgmeta validate'
afterwards.`,
	Example: `  pkgmeta migrate packages/abc/info.json
  pkgmeta migrate --write packages/abc/info.json`,
	Args: RequireDocumentPath,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVarP(&migrateFlags.write, "write", "w", false,
		"Rewrite the document in place instead of printing it")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	path := args[0]
	verbose := getVerboseFlag(cmd)
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := loadProjectConfig(configDir)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOSFileSystem()
	doc, err := metadata.Load(fsys, path)
	if err != nil {
		return err
	}

	from, err := metadata.CurrentGeneration(doc)
	if err != nil {
		return err
	}

	migrated, err := metadata.MigrateToLatest(doc)
	if err != nil {
		return err
	}
	logger.Verbose("Migrated %s from generation %d to %d", path, from, metadata.LatestGeneration)

	if !migrateFlags.write {
		return metadata.Encode(cmd.OutOrStdout(), migrated, cfg.Indent)
	}

	if from == metadata.LatestGeneration {
		logger.Info("%s is already at generation %d", path, from)
		return nil
	}
	if err := metadata.Save(fsys, path, migrated, cfg.Indent); err != nil {
		return err
	}
	logger.Info("Updated %s", path)
	return nil
}
