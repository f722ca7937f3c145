package metadata

import "sort"

// Specification is the field table of one metadata generation: an ordered
// rule chain per field plus whole-document invariants.
//
// A Specification is immutable once built and safe for concurrent use.
type Specification struct {
	generation int
	fields     map[string]Chain
	invariants []Invariant
}

// NewSpecification builds a specification. The field map is copied.
func NewSpecification(generation int, fields map[string]Chain, invariants ...Invariant) *Specification {
	copied := make(map[string]Chain, len(fields))
	for name, chain := range fields {
		copied[name] = append(Chain(nil), chain...)
	}
	return &Specification{
		generation: generation,
		fields:     copied,
		invariants: append([]Invariant(nil), invariants...),
	}
}

// Generation returns the generation tag this specification applies to.
func (s *Specification) Generation() int { return s.generation }

// Chain returns the rule chain of a field.
func (s *Specification) Chain(name string) (Chain, bool) {
	c, ok := s.fields[name]
	return c, ok
}

// Has returns true if the specification declares the field.
func (s *Specification) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// FieldNames returns the declared field names in sorted order.
func (s *Specification) FieldNames() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiredFields returns the sorted names of fields whose chain starts with Required.
func (s *Specification) RequiredFields() []string {
	var names []string
	for _, name := range s.FieldNames() {
		if s.fields[name].Required() {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks doc against spec and returns the failures per field.
//
// Every declared field runs its rule chain; the first failing rule is
// recorded. Invariants run afterwards and never replace a failure a field
// already has. Fields the specification does not declare are ignored.
func Validate(doc Document, spec *Specification) Report {
	report := make(Report)

	for name, chain := range spec.fields {
		value, present := doc.Lookup(name)
		f := Field{Name: name, Value: value, Present: present}
		if failure := chain.Run(f, doc); failure != nil {
			report.add(*failure)
		}
	}

	for _, inv := range spec.invariants {
		for _, failure := range inv.Check(doc) {
			report.add(failure)
		}
	}

	return report
}

// CheckValue runs the rule chain of one field against a single value, as if
// the field were present in an otherwise empty document. Unknown fields pass.
func CheckValue(spec *Specification, name string, value any) *Failure {
	chain, ok := spec.Chain(name)
	if !ok {
		return nil
	}
	doc := Document{name: value}
	return chain.Run(Field{Name: name, Value: value, Present: true}, doc)
}

// ValidateDocument validates doc against the specification of its own
// generation.
func ValidateDocument(doc Document) (Report, error) {
	gen, err := CurrentGeneration(doc)
	if err != nil {
		return nil, err
	}
	spec, err := SpecificationFor(gen)
	if err != nil {
		return nil, err
	}
	return Validate(doc, spec), nil
}
