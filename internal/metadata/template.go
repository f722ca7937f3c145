package metadata

import "github.com/vvka-141/pkgmeta/pkg/pkgmeta"

// GenerateTemplate builds a skeleton document for the latest generation.
//
// Required fields get the override or an empty string, so a template without
// overrides does not validate; it is a scaffold to be filled in. Optional
// fields with a declared default get the override or the default. Optional
// fields without a default appear only when overridden. Overrides for fields
// the specification does not declare are ignored. An empty broadcast becomes
// the $BROADCAST placeholder.
func GenerateTemplate(overrides map[string]any) Document {
	return buildTemplate(LatestSpecification(), overrides)
}

// GenerateTemplateFor is GenerateTemplate for a specific generation.
func GenerateTemplateFor(gen int, overrides map[string]any) (Document, error) {
	spec, err := SpecificationFor(gen)
	if err != nil {
		return nil, err
	}
	return buildTemplate(spec, overrides), nil
}

func buildTemplate(spec *Specification, overrides map[string]any) Document {
	doc := make(Document)

	for _, name := range spec.FieldNames() {
		chain, _ := spec.Chain(name)
		override, overridden := overrides[name]

		switch {
		case chain.Required():
			if overridden {
				doc[name] = cloneValue(override)
			} else {
				doc[name] = ""
			}
		case overridden:
			doc[name] = cloneValue(override)
		default:
			if def, ok := chain.Default(); ok {
				doc[name] = cloneValue(def)
			}
		}
	}

	if spec.Has("broadcast") {
		if s, ok := doc["broadcast"].(string); ok && s == "" {
			doc["broadcast"] = pkgmeta.BroadcastPlaceholder
		}
	}

	return doc
}
