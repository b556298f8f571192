package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

// Button is a single call-to-action, pressed with Enter or Space.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "space":
			if b.OnPress != nil {
				return b, b.OnPress()
			}
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
