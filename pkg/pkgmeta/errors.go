package pkgmeta

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	doc, err := metadata.Load(fs, path)
//	if errors.Is(err, pkgmeta.ErrDocumentNotFound) {
//	    // report "file not found" and move on to the next path
//	}
var (
	// ErrDocumentNotFound indicates the metadata file does not exist or cannot be read.
	ErrDocumentNotFound = errors.New("file not found")

	// ErrMalformedDocument indicates the file is not a JSON object.
	ErrMalformedDocument = errors.New("invalid JSON format")

	// ErrInvalidDocument indicates at least one field failed validation.
	ErrInvalidDocument = errors.New("invalid metadata")

	// ErrUnsupportedGeneration indicates a generation tag newer than the latest known one.
	ErrUnsupportedGeneration = errors.New("unsupported generation")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPackageExists indicates the package directory already contains files.
	ErrPackageExists = errors.New("package directory not empty")

	// ErrApprovalDenied indicates the user declined to overwrite a file.
	ErrApprovalDenied = errors.New("approval denied")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrPackageExists):
		return ExitPackageConflict
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrInvalidDocument),
		errors.Is(err, ErrDocumentNotFound),
		errors.Is(err, ErrMalformedDocument),
		errors.Is(err, ErrUnsupportedGeneration):
		return ExitGeneralError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"accepts at most",
	"required flag",
	"invalid argument",
	"missing required argument",
}
