package metadata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pkgmeta/internal/files/filesystem"
	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

func TestDecode_NormalizesNumbers(t *testing.T) {
	doc, err := Decode([]byte(`{"a": 1, "b": 1.5, "c": [1, {"d": 2}], "e": null, "f": 1e2}`))
	require.NoError(t, err)

	assert.Equal(t, 1, doc["a"])
	assert.Equal(t, 1.5, doc["b"])
	assert.Equal(t, []any{1, map[string]any{"d": 2}}, doc["c"])
	assert.Nil(t, doc["e"])
	assert.Contains(t, doc, "e")
	assert.Equal(t, float64(100), doc["f"])
}

func TestDecode_Malformed(t *testing.T) {
	inputs := map[string]string{
		"array":          `[1, 2]`,
		"string":         `"x"`,
		"null":           `null`,
		"trailing comma": "{\n  \"a\": 1,\n}",
		"trailing data":  `{} {}`,
		"empty":          ``,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(input))
			assert.ErrorIs(t, err, pkgmeta.ErrMalformedDocument)
		})
	}
}

func TestDecode_ErrorPosition(t *testing.T) {
	_, err := DecodeReader(strings.NewReader("{\n  \"a\": 1,\n}"), "pkg/info.json")

	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, "pkg/info.json", docErr.Path)
	assert.Equal(t, 3, docErr.Line)
	assert.True(t, strings.HasPrefix(err.Error(), "pkg/info.json: invalid JSON format"))
}

func TestLoad(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/packages")
	mfs.AddFile("abc/info.json", `{"title": "T", "images": 0}`)
	mfs.AddFile("bad/info.json", `{"title": }`)

	doc, err := Load(mfs, "abc/info.json")
	require.NoError(t, err)
	assert.Equal(t, Document{"title": "T", "images": 0}, doc)

	_, err = Load(mfs, "missing/info.json")
	assert.ErrorIs(t, err, pkgmeta.ErrDocumentNotFound)
	assert.Equal(t, "missing/info.json: file not found", err.Error())

	_, err = Load(mfs, "bad/info.json")
	assert.ErrorIs(t, err, pkgmeta.ErrMalformedDocument)
}

func TestEncode_SortedIndented(t *testing.T) {
	doc := Document{
		"title":   "a & b",
		"archive": "core",
		"content": map[string]any{"html": map[string]any{"main": "index.html", "keep_formatting": false}},
		"gen":     1,
	}

	data, err := Marshal(doc, 4)
	require.NoError(t, err)

	want := `{
    "archive": "core",
    "content": {
        "html": {
            "keep_formatting": false,
            "main": "index.html"
        }
    },
    "gen": 1,
    "title": "a & b"
}
`
	assert.Equal(t, want, string(data))
}

func TestEncode_Deterministic(t *testing.T) {
	doc := GenerateTemplate(map[string]any{"title": "T", "keywords": "a, b"})

	first, err := Marshal(doc, 2)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Marshal(doc.Clone(), 2)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestSaveAndLoad(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/packages")
	doc := GenerateTemplate(map[string]any{"title": "T"})

	require.NoError(t, Save(mfs, "abc/info.json", doc, 4))

	loaded, err := Load(mfs, "abc/info.json")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
		ok    bool
	}{
		{`3`, 3, true},
		{`2.5`, 2.5, true},
		{`true`, true, true},
		{`"quoted"`, "quoted", true},
		{`{"html": {"main": "a.html"}}`, map[string]any{"html": map[string]any{"main": "a.html"}}, true},
		{`plain text`, nil, false},
		{`1 2`, nil, false},
		{``, nil, false},
	}

	for _, tt := range tests {
		got, ok := DecodeValue(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}
