package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvka-141/pkgmeta/internal/checksum"
	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/internal/logging"
	"github.com/vvka-141/pkgmeta/internal/metadata"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

func testDocument() metadata.Document {
	return metadata.GenerateTemplate(map[string]any{
		"title":     "T",
		"url":       "http://example.com/",
		"timestamp": "2015-04-29 13:22:00 UTC",
		"license":   "CC-BY",
	})
}

// TestIsDirectoryEmpty tests the directory emptiness validation
func TestIsDirectoryEmpty(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T) string // Returns path to test
		expectedEmpty bool
		expectedError bool
	}{
		{
			name: "nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nonexistent")
			},
			expectedEmpty: true,
		},
		{
			name: "empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			expectedEmpty: true,
		},
		{
			name: "directory with file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				if err := os.WriteFile(filepath.Join(dir, "info.json"), []byte("{}"), 0644); err != nil {
					t.Fatalf("Failed to create test file: %v", err)
				}
				return dir
			},
			expectedEmpty: false,
		},
		{
			name: "directory with subdirectory",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				if err := os.Mkdir(filepath.Join(dir, "images"), 0755); err != nil {
					t.Fatalf("Failed to create subdirectory: %v", err)
				}
				return dir
			},
			expectedEmpty: false,
		},
		{
			name: "path is a file",
			setup: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "info.json")
				if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
					t.Fatalf("Failed to create test file: %v", err)
				}
				return file
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			isEmpty, err := isDirectoryEmpty(filesystem.NewOSFileSystem(), path)
			if tt.expectedError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if isEmpty != tt.expectedEmpty {
				t.Errorf("Expected isEmpty=%v, got %v", tt.expectedEmpty, isEmpty)
			}
		})
	}
}

func TestCreatePackage(t *testing.T) {
	parent := t.TempDir()
	osfs := filesystem.NewOSFileSystem()
	scaffolder := NewScaffolder(osfs, logging.NewNullLogger(), 4)

	dir, err := scaffolder.CreatePackage(parent, testDocument())
	if err != nil {
		t.Fatalf("CreatePackage() error = %v", err)
	}

	wantDir := filepath.Join(parent, checksum.New().CalculateNormalized([]byte("http://example.com/")))
	if dir != wantDir {
		t.Errorf("CreatePackage() dir = %s, want %s", dir, wantDir)
	}

	doc, err := metadata.Load(osfs, filepath.Join(dir, pkgmeta.DocumentFileName))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc["title"] != "T" {
		t.Errorf("written title = %v, want T", doc["title"])
	}
}

func TestCreatePackage_RefusesNonEmptyDirectory(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/packages")
	scaffolder := NewScaffolder(mfs, logging.NewNullLogger(), 4)

	if _, err := scaffolder.CreatePackage("/packages", testDocument()); err != nil {
		t.Fatalf("first CreatePackage() error = %v", err)
	}

	_, err := scaffolder.CreatePackage("/packages", testDocument())
	if !errors.Is(err, pkgmeta.ErrPackageExists) {
		t.Fatalf("Expected ErrPackageExists, got: %v", err)
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("Error message should mention 'not empty', got: %s", err.Error())
	}
}

func TestCreatePackage_AcceptsEmptyDirectory(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/packages")
	scaffolder := NewScaffolder(mfs, logging.NewNullLogger(), 2)

	dir := scaffolder.PackageDir("/packages", "http://example.com/")
	if err := mfs.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := scaffolder.CreatePackage("/packages", testDocument()); err != nil {
		t.Fatalf("Expected no error for empty directory, got: %v", err)
	}
}

func TestCreatePackage_RequiresURL(t *testing.T) {
	scaffolder := NewScaffolder(filesystem.NewMemoryFileSystem("/"), logging.NewNullLogger(), 4)

	doc := testDocument()
	doc["url"] = ""
	_, err := scaffolder.CreatePackage("/", doc)
	if !errors.Is(err, pkgmeta.ErrInvalidDocument) {
		t.Errorf("Expected ErrInvalidDocument, got: %v", err)
	}
}

// TestBuildFileTree tests the file tree generation for display
func TestBuildFileTree(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/pkg")
	mfs.AddFile("info.json", "{}")
	mfs.AddFile("index.html", "")
	mfs.AddFile("images/a.png", "")
	mfs.AddFile("images/b.png", "")

	tree, err := BuildFileTree(mfs, "/pkg")
	if err != nil {
		t.Fatalf("Failed to build file tree: %v", err)
	}

	want := "/pkg/\n" +
		"├── images/\n" +
		"│   ├── a.png\n" +
		"│   └── b.png\n" +
		"├── index.html\n" +
		"└── info.json\n"
	if tree != want {
		t.Errorf("BuildFileTree() =\n%s\nwant:\n%s", tree, want)
	}
}

// TestBuildFileTree_EmptyDirectory tests file tree generation for empty directory
func TestBuildFileTree_EmptyDirectory(t *testing.T) {
	rootDir := t.TempDir()

	tree, err := BuildFileTree(filesystem.NewOSFileSystem(), rootDir)
	if err != nil {
		t.Fatalf("Failed to build file tree: %v", err)
	}

	if !strings.HasSuffix(tree, "/\n") || strings.Count(tree, "\n") != 1 {
		t.Errorf("Expected only the root line for an empty directory, got %q", tree)
	}
}

func TestBuildFileTree_MissingDirectory(t *testing.T) {
	if _, err := BuildFileTree(filesystem.NewMemoryFileSystem("/"), "/nope"); err == nil {
		t.Error("Expected error for missing directory")
	}
}
