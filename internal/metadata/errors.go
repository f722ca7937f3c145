package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// DocumentError represents a document that could not be loaded, with the
// file path, optional line/column numbers and an actionable hint.
// It unwraps to one of the pkgmeta sentinel errors.
type DocumentError struct {
	Path    string // Path to the document
	Line    int    // Line number (0 if unknown)
	Column  int    // Column number (0 if unknown)
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
	Err     error  // Sentinel error for errors.Is
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	location := e.Path
	if location == "" {
		location = "<input>"
	}

	msg := fmt.Sprintf("%s: %s", location, e.Message)
	if e.Line > 0 {
		if e.Column > 0 {
			msg = fmt.Sprintf("%s (line %d, col %d)", msg, e.Line, e.Column)
		} else {
			msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
		}
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

// Unwrap returns the sentinel error.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// wrapJSONError converts encoding/json errors to a DocumentError with the
// line and column of the offending byte.
func wrapJSONError(err error, data []byte, path string) error {
	var offset int64 = -1

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	docErr := &DocumentError{
		Path:    path,
		Message: pkgmeta.ErrMalformedDocument.Error(),
		Hint:    "Metadata must be a single JSON object, e.g. {\"title\": \"...\", \"url\": \"...\"}.",
		Err:     pkgmeta.ErrMalformedDocument,
	}
	if offset >= 0 {
		docErr.Line, docErr.Column = position(data, offset)
	}
	return docErr
}

// position converts a byte offset to a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

// notFound reports a document that could not be read.
func notFound(path string, cause error) error {
	return &DocumentError{
		Path:    path,
		Message: fmt.Sprintf("%s (%v)", pkgmeta.ErrDocumentNotFound.Error(), cause),
		Err:     pkgmeta.ErrDocumentNotFound,
	}
}
