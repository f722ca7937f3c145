package metadata

import (
	"fmt"
	"sort"
)

// Document is one content package's metadata record, keyed by field name.
//
// Values are the shapes produced by Decode: string, int, float64, bool,
// nil, []any and nested map[string]any objects.
type Document map[string]any

// Lookup returns the value stored under name and whether the field is present.
func (d Document) Lookup(name string) (any, bool) {
	v, ok := d[name]
	return v, ok
}

// Clone returns a deep copy of the document. Nested objects and lists are
// copied so the result can be modified without touching the original.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case Document:
		return map[string]any(t.Clone())
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// Field is the value of one document field as seen by a Rule.
type Field struct {
	Name    string
	Value   any
	Present bool
}

// Failure describes why a field is invalid.
//
// Reason is a short category ("required", "invalid format", "must match")
// and Message the human-readable text printed by the CLI.
type Failure struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (f Failure) Error() string {
	if f.Message != "" {
		return f.Message
	}
	return f.Reason
}

// Report maps failing field names to their first failure.
// An empty report means the document is valid.
type Report map[string]Failure

// Valid returns true if no field failed.
func (r Report) Valid() bool {
	return len(r) == 0
}

// Fields returns the failing field names in sorted order.
func (r Report) Fields() []string {
	fields := make([]string, 0, len(r))
	for name := range r {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Lines renders the report as "field: message" lines sorted by field name.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r))
	for _, name := range r.Fields() {
		lines = append(lines, fmt.Sprintf("%s: %s", name, r[name].Error()))
	}
	return lines
}

// add records f unless the field already has a failure.
func (r Report) add(f Failure) {
	if _, exists := r[f.Field]; exists {
		return
	}
	r[f.Field] = f
}
