package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/internal/metadata"
	"github.com/vvka-141/pkgmeta/internal/params"
	"github.com/vvka-141/pkgmeta/internal/scaffold"
	"github.com/vvka-141/pkgmeta/internal/tui"
	"github.com/vvka-141/pkgmeta/internal/tui/wizards"
	"github.com/vvka-141/pkgmeta/internal/ui"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

var templateFlags struct {
	generation  int
	output      string
	packageDir  string
	force       bool
	interactive bool
	set         []string
	valuesFiles []string
}

// fieldFlag binds one document field to a command line flag.
type fieldFlag struct {
	field string
	flag  string
	kind  metadata.Kind
}

// fieldFlags is built once from every known generation.
var fieldFlags = templateFieldFlags()

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Generate a metadata document skeleton",
	Long: `Generate an info.json skeleton for a new content package.

Every field of the metadata specification has a flag of the same name
(underscores become dashes). Required fields without a value are left empty
and optional fields get their default.

Values are layered, later sources winning:
  1. defaults in pkgmeta.yaml
  2. --values files (KEY=VALUE per line)
  3. --set key=value
  4. field flags such as --title

Values from --values and --set that are valid JSON are decoded, so
--set images=3 stores a number. Text fields such as title always stay
strings.

The document is written to stdout, to --output FILE, or with --package DIR
into DIR/<md5 of url>/info.json. --package refuses to write into a
directory that already has content.`,
	Example: `  pkgmeta template --title "Hello" --url http://example.com/ --license CC-BY
  pkgmeta template --generation 0 --images 3 --multipage
  pkgmeta template --package packages --url http://example.com/
  pkgmeta template --values site.env --set 'content={"html": {"main": "a.html"}}'
  pkgmeta template --interactive`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	flags := templateCmd.Flags()
	flags.IntVar(&templateFlags.generation, "generation", metadata.LatestGeneration,
		"Metadata generation of the skeleton (default from pkgmeta.yaml)")
	flags.StringVarP(&templateFlags.output, "output", "o", "",
		"Write the document to this file instead of stdout")
	flags.StringVar(&templateFlags.packageDir, "package", "",
		"Create a package directory named after the url under this directory")
	flags.BoolVar(&templateFlags.force, "force", false,
		"Overwrite an existing --output file without asking")
	flags.BoolVarP(&templateFlags.interactive, "interactive", "i", false,
		"Fill in the text fields with an interactive form")
	flags.StringArrayVar(&templateFlags.set, "set", nil,
		"Set a field as key=value (can be specified multiple times)")
	flags.StringArrayVar(&templateFlags.valuesFiles, "values", nil,
		"Read key=value overrides from a file (can be specified multiple times)")
	templateCmd.MarkFlagsMutuallyExclusive("output", "package")

	for _, ff := range fieldFlags {
		usage := fmt.Sprintf("Value of the %s field", ff.field)
		switch ff.kind {
		case metadata.KindBool:
			flags.Bool(ff.flag, false, usage)
		case metadata.KindInt:
			flags.Int(ff.flag, 0, usage)
		default:
			flags.String(ff.flag, "", usage)
		}
	}

	_ = templateCmd.RegisterFlagCompletionFunc("license", completeLicenses)
	_ = templateCmd.RegisterFlagCompletionFunc("generation", completeGenerations)
}

// templateFieldFlags collects the fields of all generations that can be set
// from a flag. Object fields and the generation tag are left out.
func templateFieldFlags() []fieldFlag {
	seen := make(map[string]bool)
	var out []fieldFlag

	for gen := 0; gen <= metadata.LatestGeneration; gen++ {
		spec, err := metadata.SpecificationFor(gen)
		if err != nil {
			continue
		}
		for _, name := range spec.FieldNames() {
			if seen[name] || name == metadata.GenerationKey {
				continue
			}
			seen[name] = true

			chain, _ := spec.Chain(name)
			kind := metadata.KindString
			if def, ok := chain.Default(); ok {
				switch def.(type) {
				case bool:
					kind = metadata.KindBool
				case int:
					kind = metadata.KindInt
				case map[string]any:
					continue
				}
			}
			out = append(out, fieldFlag{
				field: name,
				flag:  strings.ReplaceAll(name, "_", "-"),
				kind:  kind,
			})
		}
	}
	return out
}

func runTemplate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := loadProjectConfig(configDir)
	if err != nil {
		return err
	}

	gen := cfg.Generation
	if cmd.Flags().Changed("generation") {
		gen = templateFlags.generation
	}
	spec, err := metadata.SpecificationFor(gen)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOSFileSystem()

	overrides, err := collectOverrides(cmd, fsys, cfg.Defaults, logger)
	if err != nil {
		return err
	}
	for name := range overrides {
		if !spec.Has(name) {
			logger.Verbose("Ignoring %s: generation %d has no such field", name, gen)
		}
	}

	if templateFlags.interactive {
		if !tui.IsInteractive() {
			return fmt.Errorf("--interactive requires a terminal")
		}
		overrides, err = wizards.RunTemplateWizard(spec, overrides)
		if err != nil {
			return err
		}
	}

	doc, err := metadata.GenerateTemplateFor(gen, overrides)
	if err != nil {
		return err
	}
	logger.Verbose("Generated generation %d template with %d field(s)", gen, len(doc))

	switch {
	case templateFlags.packageDir != "":
		scaffolder := scaffold.NewScaffolder(fsys, logger, cfg.Indent)
		dir, err := scaffolder.CreatePackage(templateFlags.packageDir, doc)
		if err != nil {
			return err
		}
		if verbose {
			if tree, err := scaffold.BuildFileTree(fsys, dir); err == nil {
				fmt.Fprint(cmd.ErrOrStderr(), tree)
			}
		}
		fmt.Fprintln(cmd.ErrOrStderr(), tui.Success("Created package "+dir))
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil

	case templateFlags.output != "":
		if err := approveOverwrite(cmd, fsys, templateFlags.output, templateFlags.force, verbose); err != nil {
			return err
		}
		if err := metadata.Save(fsys, templateFlags.output, doc, cfg.Indent); err != nil {
			return err
		}
		logger.Verbose("Wrote %s", templateFlags.output)
		return nil

	default:
		return metadata.Encode(cmd.OutOrStdout(), doc, cfg.Indent)
	}
}

// collectOverrides layers values files, --set pairs and the field flags that
// were set on the command line over the configured defaults.
func collectOverrides(cmd *cobra.Command, fsys filesystem.FileSystemProvider, defaults map[string]any, logger pkgmeta.Logger) (map[string]any, error) {
	overrides := make(map[string]any, len(defaults))
	for k, v := range defaults {
		overrides[k] = v
	}

	fileValues, err := loadValuesFiles(fsys, templateFlags.valuesFiles, logger)
	if err != nil {
		return nil, err
	}
	for k, v := range params.Typed(fileValues, isTextField) {
		overrides[k] = v
	}

	setPairs, err := params.ParseKeyValuePairs(templateFlags.set)
	if err != nil {
		return nil, fmt.Errorf("invalid argument for --set: %w", err)
	}
	for k, v := range params.Typed(setPairs, isTextField) {
		overrides[k] = v
	}
	if len(setPairs) > 0 {
		logger.Verbose("--set overrides %d value(s)", len(setPairs))
	}

	flags := cmd.Flags()
	for _, ff := range fieldFlags {
		if !flags.Changed(ff.flag) {
			continue
		}

		var (
			value any
			err   error
		)
		switch ff.kind {
		case metadata.KindBool:
			value, err = flags.GetBool(ff.flag)
		case metadata.KindInt:
			value, err = flags.GetInt(ff.flag)
		default:
			value, err = flags.GetString(ff.flag)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid argument for --%s: %w", ff.flag, err)
		}
		overrides[ff.field] = value
	}
	return overrides, nil
}

// isTextField reports whether name is a field whose value is always a string.
func isTextField(name string) bool {
	for _, ff := range fieldFlags {
		if ff.field == name {
			return ff.kind == metadata.KindString
		}
	}
	return false
}

// loadValuesFiles reads KEY=VALUE files in order. Later files override
// earlier ones.
func loadValuesFiles(fsys filesystem.FileSystemProvider, paths []string, logger pkgmeta.Logger) (map[string]string, error) {
	values := make(map[string]string)

	for _, path := range paths {
		content, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read values file '%s': %w\n\nTip: Verify the path or use --set to set fields directly:\n  pkgmeta template --set title=Hello", path, err)
		}

		fileValues, err := params.ParseValuesFile(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse values file '%s': %w\n\nTip: Verify the file format (KEY=VALUE)", path, err)
		}

		for k, v := range fileValues {
			values[k] = v
		}

		logger.Verbose("Loaded %d value(s) from %s (total: %d)", len(fileValues), path, len(values))
	}

	return values, nil
}

// approveOverwrite asks before an existing file is replaced. Without a
// terminal the user cannot be asked, so --force is required.
func approveOverwrite(cmd *cobra.Command, fsys filesystem.FileSystemProvider, path string, force, verbose bool) error {
	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	var approver pkgmeta.Approver
	switch {
	case force:
		approver = ui.NewForcedApprover(cmd.ErrOrStderr(), verbose)
	case tui.IsInteractive():
		approver = ui.NewInteractiveApprover(cmd.InOrStdin(), cmd.ErrOrStderr())
	default:
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", pkgmeta.ErrApprovalDenied, path)
	}

	approved, err := approver.RequestApproval(cmd.Context(), path)
	if err != nil {
		return err
	}
	if !approved {
		return fmt.Errorf("%w: %s was not overwritten", pkgmeta.ErrApprovalDenied, path)
	}
	return nil
}
