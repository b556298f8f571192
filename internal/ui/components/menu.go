package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

// MenuItem is one selectable action. Key, if set, triggers the action
// directly.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a row of actions navigated with the arrow keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Update handles hotkeys and keyboard navigation. Hotkeys win over the
// vim-style movement keys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	for i, item := range m.Items {
		if item.Key != "" && item.Key == key {
			m.Selected = i
			return m, m.activate(i)
		}
	}

	switch key {
	case "left", "up", "h", "k", "shift+tab":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
		return m, nil
	case "right", "down", "l", "j", "tab":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
		return m, nil
	case "enter":
		return m, m.activate(m.Selected)
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Action == nil || item.Disabled {
		return nil
	}
	return item.Action()
}

// View renders the menu as a horizontal button row.
func (m Menu) View() string {
	parts := make([]string, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		if item.Key != "" {
			label += " (" + item.Key + ")"
		}
		if i == m.Selected {
			parts[i] = theme.ButtonActive.Render("▸ " + label)
		} else {
			parts[i] = theme.ButtonInactive.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}
