// Package wizards holds the interactive flows built from tui components.
package wizards

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vvka-141/pkgmeta/internal/metadata"
	"github.com/vvka-141/pkgmeta/internal/tui"
	"github.com/vvka-141/pkgmeta/internal/tui/components"
)

// ErrCancelled is returned when the user leaves the wizard without submitting.
var ErrCancelled = errors.New("template wizard cancelled")

var fieldHints = map[string]string{
	"url":       "http(s)://, ftp(s):// or outernet://",
	"timestamp": "YYYY-MM-DD HH:MM:SS UTC",
	"broadcast": "YYYY-MM-DD, empty for $BROADCAST",
	"license":   strings.Join(metadata.Licenses, " "),
	"language":  "e.g. en or pt_BR",
	"keywords":  "comma separated",
}

// TemplateFields lists the fields of spec the wizard asks for: every field
// whose value is text. Required fields come first.
func TemplateFields(spec *metadata.Specification) []string {
	var required, optional []string
	for _, name := range spec.FieldNames() {
		chain, _ := spec.Chain(name)
		if def, ok := chain.Default(); ok {
			if _, isString := def.(string); !isString {
				continue
			}
		}
		if chain.Required() {
			required = append(required, name)
		} else {
			optional = append(optional, name)
		}
	}
	return append(required, optional...)
}

// NewTemplateForm builds the form for spec, prefilled from initial. Every
// input is checked with the field's rule chain as it is typed.
func NewTemplateForm(spec *metadata.Specification, initial map[string]any, now time.Time) components.Form {
	var fields []components.TextField
	for _, name := range TemplateFields(spec) {
		chain, _ := spec.Chain(name)
		required := chain.Required() && name != "broadcast"

		field := components.NewTextField(name, name, "").
			WithRequired(required).
			WithValidator(fieldValidator(spec, name, required)).
			WithHint(fieldHints[name])

		if v, ok := initial[name].(string); ok {
			field = field.WithValue(v)
		} else if name == "timestamp" {
			field = field.WithValue(now.UTC().Format(metadata.TimestampLayout))
		}
		fields = append(fields, field)
	}

	title := fmt.Sprintf("New package metadata (generation %d)", spec.Generation())
	return components.NewForm(title, fields...)
}

func fieldValidator(spec *metadata.Specification, name string, required bool) func(string) error {
	return func(value string) error {
		if value == "" && !required {
			return nil
		}
		if failure := metadata.CheckValue(spec, name, value); failure != nil {
			return failure
		}
		return nil
	}
}

// Overrides converts submitted form values into template overrides. Empty
// values are left out so that template defaults apply.
func Overrides(values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for name, value := range values {
		if value != "" {
			out[name] = value
		}
	}
	return out
}

// RunTemplateWizard asks for the text fields of spec and returns the
// resulting template overrides merged over initial.
func RunTemplateWizard(spec *metadata.Specification, initial map[string]any) (map[string]any, error) {
	final, err := tui.Run(NewTemplateForm(spec, initial, time.Now()))
	if err != nil {
		return nil, err
	}

	form, ok := final.(components.Form)
	if !ok || form.Cancelled() || !form.Submitted() {
		return nil, ErrCancelled
	}

	merged := make(map[string]any, len(initial))
	for k, v := range initial {
		merged[k] = v
	}
	for k, v := range Overrides(form.Values()) {
		merged[k] = v
	}
	return merged, nil
}
