package components

import (
	"strings"

	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

// Tabs is a row of mutually exclusive options, such as Login / Signup.
type Tabs struct {
	Options  []string
	Selected int
}

// NewTabs creates tabs with the given option selected.
func NewTabs(selected int, options ...string) Tabs {
	return Tabs{Options: options, Selected: selected}
}

// Next selects the following option, wrapping around.
func (t *Tabs) Next() {
	if len(t.Options) == 0 {
		return
	}
	t.Selected = (t.Selected + 1) % len(t.Options)
}

// Current returns the selected option.
func (t Tabs) Current() string {
	if t.Selected < 0 || t.Selected >= len(t.Options) {
		return ""
	}
	return t.Options[t.Selected]
}

// View renders the tabs side by side.
func (t Tabs) View() string {
	parts := make([]string, len(t.Options))
	for i, opt := range t.Options {
		if i == t.Selected {
			parts[i] = theme.ButtonActive.Render(opt)
		} else {
			parts[i] = theme.Unselected.Padding(0, 2).Render(opt)
		}
	}
	return strings.Join(parts, " ")
}
