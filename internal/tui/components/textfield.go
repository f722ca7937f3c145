package components

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pkgmeta/internal/tui"
)

// ErrFieldRequired is returned when a required field is empty.
var ErrFieldRequired = errors.New("this field is required")

// TextField is a labeled text input bound to one document field.
type TextField struct {
	key       string
	label     string
	hint      string
	input     textinput.Model
	focused   bool
	required  bool
	validator func(string) error
	err       error
}

var (
	labelStyle   = lipgloss.NewStyle().Foreground(tui.ColorSecondary)
	hintStyle    = lipgloss.NewStyle().Foreground(tui.ColorMuted)
	focusedStyle = lipgloss.NewStyle().Foreground(tui.ColorPrimary)
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	markerStyle  = lipgloss.NewStyle().Foreground(tui.ColorError)
)

// NewTextField creates a text field for the document field key.
func NewTextField(key, label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 56

	return TextField{
		key:   key,
		label: label,
		input: ti,
	}
}

// WithRequired marks the field as required.
func (t TextField) WithRequired(required bool) TextField {
	t.required = required
	return t
}

// WithValidator sets a validation function run on every change.
func (t TextField) WithValidator(fn func(string) error) TextField {
	t.validator = fn
	return t
}

// WithValue sets the initial value.
func (t TextField) WithValue(value string) TextField {
	t.input.SetValue(value)
	return t
}

// WithHint sets a help line shown under the label.
func (t TextField) WithHint(hint string) TextField {
	t.hint = hint
	return t
}

// Key returns the document field this input is bound to.
func (t TextField) Key() string { return t.key }

// Focus focuses the text field.
func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Blur removes focus from the text field.
func (t *TextField) Blur() {
	t.focused = false
	t.input.Blur()
}

// Update forwards msg to the input and revalidates.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.check()
	return t, cmd
}

// View renders the label, the input and any validation error.
func (t TextField) View() string {
	var b strings.Builder

	label := labelStyle.Render(t.label)
	if t.required {
		label += markerStyle.Render(" *")
	}
	b.WriteString(label)
	if t.hint != "" {
		b.WriteString(" " + hintStyle.Render(t.hint))
	}
	b.WriteString("\n")

	style := blurredStyle
	if t.focused {
		style = focusedStyle
	}
	b.WriteString(style.Render(t.input.View()))

	if t.err != nil {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(t.err.Error()))
	}
	return b.String()
}

// Value returns the current value.
func (t TextField) Value() string {
	return t.input.Value()
}

// SetValue sets the value.
func (t *TextField) SetValue(v string) {
	t.input.SetValue(v)
}

// Error returns the current validation error.
func (t TextField) Error() error {
	return t.err
}

// Validate runs validation and returns any error.
func (t *TextField) Validate() error {
	t.check()
	return t.err
}

func (t *TextField) check() {
	value := t.input.Value()
	switch {
	case t.required && strings.TrimSpace(value) == "":
		t.err = ErrFieldRequired
	case t.validator != nil:
		t.err = t.validator(value)
	default:
		t.err = nil
	}
}
