package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bloomquiz/internal/ui/layout"
)

// Screen is one page of the app: landing, auth form, quiz or dashboard.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// UserProvider is implemented by screens that know who is logged in; the
// header shows the name.
type UserProvider interface {
	Username() string
}

// EscCapturer is implemented by screens that use Esc themselves, such as
// dismissing an alert, instead of letting the app navigate back.
type EscCapturer interface {
	CapturesEsc() bool
}
