package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/internal/metadata"
	"github.com/vvka-141/pkgmeta/internal/tui"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

var validateFlags struct {
	migrate bool
	json    bool
}

// stdinIsTerminal decides whether validate reads paths from stdin.
var stdinIsTerminal = tui.StdinIsTerminal

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate package metadata documents",
	Long: `Validate info.json documents against the rules of their generation.

With no path, ./info.json is validated. When stdin is not a terminal and no
path is given, newline-separated paths are read from stdin instead.

Each failing field is reported as "field: message", sorted by field name.
Missing and malformed documents are reported as "PATH: file not found" and
"PATH: invalid JSON format".

When several documents are checked, a summary line follows the report.
The command exits with code 1 if any document failed.`,
	Example: `  pkgmeta validate
  pkgmeta validate packages/abc/info.json
  find packages -name info.json | pkgmeta validate
  pkgmeta validate --migrate --json old/info.json`,
	Args: OptionalPath,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.migrate, "migrate", false,
		"Validate the document migrated to the latest generation instead of its own generation")
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false,
		"Write a JSON report to stdout")
}

// documentResult is the outcome of validating one path.
type documentResult struct {
	Path       string             `json:"path"`
	Valid      bool               `json:"valid"`
	Generation *int               `json:"generation,omitempty"`
	Error      string             `json:"error,omitempty"`
	Failures   []metadata.Failure `json:"failures,omitempty"`

	report metadata.Report
	err    error
}

func runValidate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	stderr := cmd.ErrOrStderr()
	logger := newLogger(stderr, verbose)

	paths, err := validatePaths(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	logger.Verbose("Validating %d document(s), migrate=%v", len(paths), validateFlags.migrate)

	fsys := filesystem.NewOSFileSystem()
	results := make([]documentResult, 0, len(paths))
	failed := 0
	for _, path := range paths {
		res := validatePath(fsys, path, validateFlags.migrate)
		if res.err != nil {
			logger.Verbose("%v", res.err)
		}
		if !res.Valid {
			failed++
		}
		results = append(results, res)
	}

	if validateFlags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
	} else {
		printResults(stderr, results)
	}

	if failed > 0 {
		summary := fmt.Sprintf("%d of %d document(s) failed validation", failed, len(results))
		if !validateFlags.json && len(results) > 1 {
			fmt.Fprintln(stderr, tui.Failure(summary))
		}
		// The report above already names every failure.
		cmd.SilenceErrors = true
		return fmt.Errorf("%w: %s", pkgmeta.ErrInvalidDocument, summary)
	}
	return nil
}

// validatePaths returns the explicit path, the paths piped on stdin, or the
// default document in the working directory.
func validatePaths(stdin io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if stdinIsTerminal() {
		return []string{pkgmeta.DocumentFileName}, nil
	}

	var paths []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paths from stdin: %w", err)
	}
	if len(paths) == 0 {
		return []string{pkgmeta.DocumentFileName}, nil
	}
	return paths, nil
}

func validatePath(fsys filesystem.FileSystemProvider, path string, migrate bool) documentResult {
	res := documentResult{Path: path}

	doc, err := metadata.Load(fsys, path)
	if err != nil {
		return res.failWith(err)
	}

	var report metadata.Report
	if migrate {
		migrated, err := metadata.MigrateToLatest(doc)
		if err != nil {
			return res.failWith(err)
		}
		report = metadata.Validate(migrated, metadata.LatestSpecification())
		gen := metadata.LatestGeneration
		res.Generation = &gen
	} else {
		report, err = metadata.ValidateDocument(doc)
		if err != nil {
			return res.failWith(err)
		}
		gen, _ := metadata.CurrentGeneration(doc)
		res.Generation = &gen
	}

	res.report = report
	res.Valid = report.Valid()
	for _, name := range report.Fields() {
		res.Failures = append(res.Failures, report[name])
	}
	return res
}

func (r documentResult) failWith(err error) documentResult {
	r.err = err
	r.Valid = false
	switch {
	case errors.Is(err, pkgmeta.ErrDocumentNotFound):
		r.Error = pkgmeta.ErrDocumentNotFound.Error()
	case errors.Is(err, pkgmeta.ErrMalformedDocument):
		r.Error = pkgmeta.ErrMalformedDocument.Error()
	default:
		r.Error = err.Error()
	}
	return r
}

// printResults writes the human-readable report. Failure lines of several
// documents are grouped under their path.
func printResults(w io.Writer, results []documentResult) {
	grouped := len(results) > 1
	for _, res := range results {
		if res.Error != "" {
			fmt.Fprintf(w, "%s: %s\n", res.Path, res.Error)
			continue
		}
		if res.Valid {
			continue
		}
		if grouped {
			fmt.Fprintf(w, "%s:\n", res.Path)
		}
		for _, line := range res.report.Lines() {
			if grouped {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprintln(w, line)
		}
	}
}
