package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExprInvariant(t *testing.T) {
	inv, err := NewExprInvariant("archive-core", `!has(doc.archive) || doc.archive == "core"`,
		Failure{Field: "archive", Reason: ReasonInvalidValue, Message: "must be core"})
	require.NoError(t, err)

	assert.Empty(t, inv.Check(Document{}))
	assert.Empty(t, inv.Check(Document{"archive": "core"}))

	failures := inv.Check(Document{"archive": "ephem"})
	require.Len(t, failures, 1)
	assert.Equal(t, "archive", failures[0].Field)
}

func TestNewExprInvariant_Errors(t *testing.T) {
	_, err := NewExprInvariant("syntax", `doc.(`)
	assert.Error(t, err)

	_, err = NewExprInvariant("not-bool", `doc.title`)
	assert.Error(t, err)
}

func TestExprInvariant_EvaluationErrorFails(t *testing.T) {
	inv := MustExprInvariant("title-x", `doc.title == "x"`,
		Failure{Field: "title", Reason: ReasonInvalidValue})

	assert.Len(t, inv.Check(Document{}), 1, "missing key is an evaluation error")
}

func TestExprInvariant_FailuresAreCopied(t *testing.T) {
	inv := matchingFields("publisher", "partner")

	failures := inv.Check(Document{"publisher": "a", "partner": "b"})
	require.Len(t, failures, 2)
	failures[0].Message = "changed"

	again := inv.Check(Document{"publisher": "a", "partner": "b"})
	assert.Equal(t, "must match partner", again[0].Message)
}

func TestMustExprInvariant_Panics(t *testing.T) {
	assert.Panics(t, func() { MustExprInvariant("bad", `1 +`) })
}
