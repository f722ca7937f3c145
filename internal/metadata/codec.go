package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

// Decode parses a JSON object into a Document.
//
// Integral numbers become int and all other numbers float64, so rules see
// the same values regardless of how the number was written.
func Decode(data []byte) (Document, error) {
	return decode(data, "")
}

// DecodeReader is Decode for a stream. name is used in error messages.
func DecodeReader(r io.Reader, name string) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return decode(data, name)
}

func decode(data []byte, name string) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, wrapJSONError(err, data, name)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, wrapJSONError(&json.SyntaxError{Offset: dec.InputOffset()}, data, name)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, wrapJSONError(errors.New("top-level value is not an object"), data, name)
	}
	return Document(normalize(obj).(map[string]any)), nil
}

// DecodeValue parses s as a single JSON value with the number handling of
// Decode. It returns false if s is not valid JSON.
func DecodeValue(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return normalize(raw), true
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = normalize(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = normalize(inner)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	default:
		return v
	}
}

// Load reads and decodes the document at path.
// Errors unwrap to pkgmeta.ErrDocumentNotFound or pkgmeta.ErrMalformedDocument.
func Load(fsys filesystem.FileSystemProvider, path string) (Document, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DocumentError{
				Path:    path,
				Message: pkgmeta.ErrDocumentNotFound.Error(),
				Err:     pkgmeta.ErrDocumentNotFound,
			}
		}
		return nil, notFound(path, err)
	}
	return decode(data, path)
}

// Encode writes doc as indented JSON with sorted keys and a trailing newline.
// HTML characters are not escaped.
func Encode(w io.Writer, doc Document, indent int) error {
	if indent < 0 {
		indent = 0
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(doc Document, indent int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes doc and writes it to path.
func Save(fsys filesystem.FileSystemProvider, path string, doc Document, indent int) error {
	data, err := Marshal(doc, indent)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
