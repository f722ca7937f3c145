package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTemplate_Defaults(t *testing.T) {
	doc := GenerateTemplate(nil)

	assert.Equal(t, Document{
		"title":        "",
		"url":          "",
		"timestamp":    "",
		"license":      "",
		"broadcast":    "$BROADCAST",
		"archive":      "core",
		"is_partner":   false,
		"is_sponsored": false,
		"gen":          1,
		"content":      defaultContent(DefaultIndex, false),
	}, doc)

	for _, name := range []string{"language", "keywords", "partner", "publisher"} {
		assert.NotContains(t, doc, name, "optional fields without a default are left out")
	}
}

func TestGenerateTemplate_Overrides(t *testing.T) {
	doc := GenerateTemplate(map[string]any{
		"title":    "T",
		"language": "en",
		"archive":  "ephem",
		"bogus":    "ignored",
	})

	assert.Equal(t, "T", doc["title"])
	assert.Equal(t, "en", doc["language"])
	assert.Equal(t, "ephem", doc["archive"])
	assert.NotContains(t, doc, "bogus")
}

func TestGenerateTemplate_BroadcastPlaceholder(t *testing.T) {
	assert.Equal(t, "$BROADCAST", GenerateTemplate(map[string]any{"broadcast": ""})["broadcast"])
	assert.Equal(t, "2015-04-29", GenerateTemplate(map[string]any{"broadcast": "2015-04-29"})["broadcast"])
}

func TestGenerateTemplate_RoundTrip(t *testing.T) {
	doc := GenerateTemplate(map[string]any{
		"title":     "T",
		"url":       "http://x/",
		"timestamp": "2015-04-29 13:22:00 UTC",
		"license":   "CC-BY",
		"broadcast": "2015-04-29",
	})

	assert.Empty(t, Validate(doc, LatestSpecification()))
}

func TestGenerateTemplate_EmptyIsNotValid(t *testing.T) {
	report := Validate(GenerateTemplate(nil), LatestSpecification())
	assert.Equal(t, []string{"license", "timestamp", "title", "url"}, report.Fields())
}

func TestGenerateTemplate_DefaultsAreCopied(t *testing.T) {
	first := GenerateTemplate(nil)
	first["content"].(map[string]any)["html"].(map[string]any)["main"] = "changed.html"

	second := GenerateTemplate(nil)
	assert.Equal(t, DefaultIndex, second["content"].(map[string]any)["html"].(map[string]any)["main"])

	override := map[string]any{"content": map[string]any{"html": map[string]any{"main": "a.html"}}}
	doc := GenerateTemplate(override)
	doc["content"].(map[string]any)["html"].(map[string]any)["main"] = "b.html"
	assert.Equal(t, "a.html", override["content"].(map[string]any)["html"].(map[string]any)["main"])
}

func TestGenerateTemplateFor(t *testing.T) {
	doc, err := GenerateTemplateFor(0, map[string]any{"images": 2})
	require.NoError(t, err)

	assert.Equal(t, 2, doc["images"])
	assert.Equal(t, false, doc["multipage"])
	assert.Equal(t, DefaultIndex, doc["index"])
	assert.Equal(t, false, doc["keep_formatting"])
	assert.NotContains(t, doc, "gen")
	assert.NotContains(t, doc, "content")

	_, err = GenerateTemplateFor(5, nil)
	assert.Error(t, err)
}
