package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/pkgmeta/internal/checksum"
	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/internal/metadata"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// Scaffolder creates content package directories from metadata documents.
type Scaffolder struct {
	fs     filesystem.FileSystemProvider
	calc   checksum.Calculator
	logger pkgmeta.Logger
	indent int
}

// NewScaffolder creates a new Scaffolder instance
func NewScaffolder(fsys filesystem.FileSystemProvider, logger pkgmeta.Logger, indent int) *Scaffolder {
	return &Scaffolder{
		fs:     fsys,
		calc:   checksum.New(),
		logger: logger,
		indent: indent,
	}
}

// PackageDir returns the directory a package with the given URL lives in.
func (s *Scaffolder) PackageDir(parent, url string) string {
	return filepath.Join(parent, s.calc.CalculateNormalized([]byte(url)))
}

// CreatePackage writes doc to <parent>/<md5(url)>/info.json and returns the
// package directory. It refuses to touch a directory that already has content.
func (s *Scaffolder) CreatePackage(parent string, doc metadata.Document) (string, error) {
	url, _ := doc["url"].(string)
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%w: url is required to name the package directory", pkgmeta.ErrInvalidDocument)
	}

	dir := s.PackageDir(parent, url)

	isEmpty, err := isDirectoryEmpty(s.fs, dir)
	if err != nil {
		return "", fmt.Errorf("failed to check package directory: %w", err)
	}
	if !isEmpty {
		return "", fmt.Errorf("%w: '%s' is not empty\n\nA package for %s was already created here.\n\nOptions:\n• Choose a different parent directory\n• Remove the existing package", pkgmeta.ErrPackageExists, dir, url)
	}

	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create package directory: %w", err)
	}

	s.logger.Verbose("Creating package for %s at %s", url, dir)

	target := filepath.Join(dir, pkgmeta.DocumentFileName)
	if err := metadata.Save(s.fs, target, doc, s.indent); err != nil {
		return "", err
	}

	s.logger.Verbose("Created file: %s", target)
	return dir, nil
}

// isDirectoryEmpty checks if a directory is empty or doesn't exist.
// Returns (true, nil) if directory doesn't exist or is empty.
// Returns (false, nil) if directory exists and contains files/subdirectories.
func isDirectoryEmpty(fsys filesystem.FileSystemProvider, dir string) (bool, error) {
	info, err := fsys.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}

	if !info.IsDir() {
		return false, fmt.Errorf("path exists but is not a directory")
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}

	return len(entries) == 0, nil
}

// BuildFileTree renders the directory below rootPath as a tree, one entry
// per line, directories suffixed with "/".
func BuildFileTree(fsys filesystem.FileSystemProvider, rootPath string) (string, error) {
	dir, err := fsys.Open(rootPath)
	if err != nil {
		return "", fmt.Errorf("failed to build file tree: %w", err)
	}

	children := map[string][]string{}
	isDir := map[string]bool{}
	err = dir.Walk(func(f filesystem.File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel := filepath.ToSlash(f.RelativePath())
		if rel == "." {
			return nil
		}
		parent := path.Dir(rel)
		children[parent] = append(children[parent], rel)
		isDir[rel] = f.Info().IsDir()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to build file tree: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(dir.Path() + "/\n")

	var render func(parent, indent string)
	render = func(parent, indent string) {
		entries := children[parent]
		sort.Strings(entries)
		for i, rel := range entries {
			branch, next := "├── ", "│   "
			if i == len(entries)-1 {
				branch, next = "└── ", "    "
			}
			name := path.Base(rel)
			if isDir[rel] {
				name += "/"
			}
			sb.WriteString(indent + branch + name + "\n")
			if isDir[rel] {
				render(rel, indent+next)
			}
		}
	}
	render(".", "")

	return sb.String(), nil
}
