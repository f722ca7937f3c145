// Package imgcount counts the images shipped with a content package and
// records the count in its metadata.
package imgcount

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/internal/metadata"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// ImageExtensions are the file extensions counted as images. Matching is
// case-insensitive.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".svg"}

// ErrImagesNotTracked is returned by UpdateDocument when the document's
// generation has no images field.
var ErrImagesNotTracked = errors.New("generation does not track images")

// Counter counts image files below a path.
type Counter struct {
	fs     filesystem.FileSystemProvider
	logger pkgmeta.Logger
}

// NewCounter creates a Counter reading from fsys.
func NewCounter(fsys filesystem.FileSystemProvider, logger pkgmeta.Logger) *Counter {
	return &Counter{fs: fsys, logger: logger}
}

// IsImage reports whether name has one of ImageExtensions.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Count returns the number of images at path. A file path counts as 0 or 1;
// a directory is walked recursively.
func (c *Counter) Count(path string) (int, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if !info.IsDir() {
		if IsImage(info.Name()) {
			return 1, nil
		}
		return 0, nil
	}

	dir, err := c.fs.Open(path)
	if err != nil {
		return 0, err
	}

	count := 0
	err = dir.Walk(func(f filesystem.File, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !f.Info().IsDir() && IsImage(f.Info().Name()) {
			c.logger.Verbose("Image: %s", f.RelativePath())
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	return count, nil
}

// UpdateDocument stores count as the images field of dir/info.json and
// rewrites the file. It returns the path of the updated document.
func (c *Counter) UpdateDocument(dir string, count, indent int) (string, error) {
	path := filepath.Join(dir, pkgmeta.DocumentFileName)

	doc, err := metadata.Load(c.fs, path)
	if err != nil {
		return path, err
	}

	gen, err := metadata.CurrentGeneration(doc)
	if err != nil {
		return path, err
	}
	spec, err := metadata.SpecificationFor(gen)
	if err != nil {
		return path, err
	}
	if !spec.Has("images") {
		return path, fmt.Errorf("%s: %w (generation %d)", path, ErrImagesNotTracked, gen)
	}

	doc["images"] = count
	if err := metadata.Save(c.fs, path, doc, indent); err != nil {
		return path, err
	}

	c.logger.Verbose("Updated %s with images=%d", path, count)
	return path, nil
}
