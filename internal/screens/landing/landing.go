package landing

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bloomquiz/internal/auth"
	"github.com/abhisek/bloomquiz/internal/router"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/ui/components"
	"github.com/abhisek/bloomquiz/internal/ui/layout"
	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	revealAt     = 600 * time.Millisecond
)

// Title is the headline shown above the call to action.
const Title = "Welcome to Learning Analytics"

// levels cycle under the banner while the landing page is open.
var levels = []string{"Remembering", "Understanding", "Applying"}

type tickMsg time.Time

// LandingScreen is the entry page. Its only action, Get Started, opens the
// signup form.
type LandingScreen struct {
	env       *screens.Env
	button    components.Button
	elapsed   time.Duration
	tickCount int
}

var _ screen.Screen = (*LandingScreen)(nil)
var _ screen.KeyHintProvider = (*LandingScreen)(nil)

// New creates the landing screen.
func New(env *screens.Env) *LandingScreen {
	l := &LandingScreen{env: env}
	l.button = components.NewButton("Get Started", true, l.getStarted)
	return l
}

func (l *LandingScreen) Title() string {
	return "Welcome"
}

func (l *LandingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Get Started"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LandingScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (l *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if l.elapsed < revealAt {
			l.elapsed += tickInterval
		}
		l.tickCount++
		return l, tick()

	case tea.KeyPressMsg:
		// First key during the intro only reveals the button.
		if l.elapsed < revealAt {
			l.elapsed = revealAt
			return l, nil
		}
		var cmd tea.Cmd
		l.button, cmd = l.button.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LandingScreen) getStarted() tea.Cmd {
	return router.Navigate(router.PushScreenMsg{Screen: l.env.Auth(auth.ModeSignup)})
}

// Revealed reports whether the intro has finished and the button shows.
func (l *LandingScreen) Revealed() bool {
	return l.elapsed >= revealAt
}

func (l *LandingScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width), "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(Title))

	sections = append(sections, theme.Subtitle.Render(levelLine(l.tickCount/10)))

	if l.Revealed() {
		sections = append(sections, "", l.button.View())
	} else {
		sections = append(sections, "", theme.Hint.Render("press any key"))
	}

	return layout.Center(width, height, lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// levelLine highlights one of the three levels in turn.
func levelLine(step int) string {
	parts := make([]string, len(levels))
	active := step % len(levels)
	for i, lvl := range levels {
		if i == active {
			parts[i] = theme.ScoreValue.Render(lvl)
			continue
		}
		parts[i] = lvl
	}
	return strings.Join(parts, " · ")
}
