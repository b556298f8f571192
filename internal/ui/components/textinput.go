package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and a validity mark.
type TextInput struct {
	Model     textinput.Model
	Label     string
	checked   bool
	valid     bool
	errorText string
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// NewPasswordInput creates a text input that masks what is typed.
func NewPasswordInput(label, placeholder string) TextInput {
	t := NewTextInput(label, placeholder, 128)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input and any validation mark.
func (t TextInput) View() string {
	label := theme.Label.Render(t.Label)
	if t.Model.Focused() {
		label = theme.Label.Foreground(theme.Primary).Bold(true).Render(t.Label)
	}

	view := label + t.Model.View()
	if t.checked {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errorText)
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Mark records a validation result to show next to the input.
func (t *TextInput) Mark(valid bool, errorText string) {
	t.checked = true
	t.valid = valid
	t.errorText = errorText
}

// ClearMark hides the validation result.
func (t *TextInput) ClearMark() {
	t.checked = false
	t.errorText = ""
}
