package metadata

import (
	"errors"
	"fmt"

	"github.com/vvka-141/pkgmeta/pkg/pkgmeta"
)

const (
	// GenerationKey is the document key holding the generation tag.
	GenerationKey = "gen"

	// LatestGeneration is the newest generation this package knows.
	LatestGeneration = 1

	// DefaultIndex is the main HTML file assumed when a document names none.
	DefaultIndex = "index.html"
)

// ErrInvalidGeneration is returned when the generation tag is not an integer.
var ErrInvalidGeneration = errors.New("invalid generation tag")

// generation pairs the specification of one generation with the step that
// upgrades a document of that generation to the next one.
type generation struct {
	spec    *Specification
	upgrade func(Document) Document
}

// generations is indexed by generation number and never modified after init.
var generations = []generation{
	{spec: generationZero(), upgrade: upgradeZeroToOne},
	{spec: generationOne()},
}

// CurrentGeneration reads the generation tag of doc. Documents without a
// tag are generation 0.
func CurrentGeneration(doc Document) (int, error) {
	raw, ok := doc.Lookup(GenerationKey)
	if !ok {
		return 0, nil
	}
	if _, isBool := raw.(bool); isBool {
		return 0, fmt.Errorf("%w: %v", ErrInvalidGeneration, raw)
	}
	n, ok := asInt(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrInvalidGeneration, raw)
	}
	return int(n), nil
}

// SpecificationFor returns the specification of generation gen.
func SpecificationFor(gen int) (*Specification, error) {
	if gen < 0 || gen >= len(generations) {
		return nil, unsupported(gen)
	}
	return generations[gen].spec, nil
}

// LatestSpecification returns the specification of LatestGeneration.
func LatestSpecification() *Specification {
	return generations[LatestGeneration].spec
}

// MigrateToLatest upgrades doc one generation at a time until it reaches
// LatestGeneration. The input is not modified. A document already at the
// latest generation comes back as an unchanged copy; a tag beyond the latest
// fails with pkgmeta.ErrUnsupportedGeneration.
func MigrateToLatest(doc Document) (Document, error) {
	gen, err := CurrentGeneration(doc)
	if err != nil {
		return nil, err
	}
	if gen < 0 || gen > LatestGeneration {
		return nil, unsupported(gen)
	}

	out := doc.Clone()
	if out == nil {
		out = Document{}
	}
	for gen < LatestGeneration {
		out = generations[gen].upgrade(out)
		gen++
	}
	return out, nil
}

func unsupported(gen int) error {
	return fmt.Errorf("generation %d (latest known is %d): %w", gen, LatestGeneration, pkgmeta.ErrUnsupportedGeneration)
}

// upgradeZeroToOne drops the image bookkeeping keys and moves the HTML entry
// point settings under content.html.
func upgradeZeroToOne(doc Document) Document {
	main, ok := doc["index"]
	if !ok {
		main = DefaultIndex
	}
	keepFormatting, ok := doc["keep_formatting"]
	if !ok {
		keepFormatting = false
	}

	for _, legacy := range []string{"images", "multipage", "index", "keep_formatting"} {
		delete(doc, legacy)
	}

	doc["content"] = defaultContent(main, keepFormatting)
	doc[GenerationKey] = 1
	return doc
}
