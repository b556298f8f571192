package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/auth"
	"github.com/abhisek/bloomquiz/internal/router"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
	authscreen "github.com/abhisek/bloomquiz/internal/screens/auth"
	dashscreen "github.com/abhisek/bloomquiz/internal/screens/dashboard"
	"github.com/abhisek/bloomquiz/internal/screens/landing"
	"github.com/abhisek/bloomquiz/internal/screens/history"
	quizscreen "github.com/abhisek/bloomquiz/internal/screens/quiz"
	"github.com/abhisek/bloomquiz/internal/session"
	"github.com/abhisek/bloomquiz/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Client   api.Client
	Sessions session.Store
	Attempts screens.AttemptStore
	Log      zerolog.Logger
	Now      func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newEnv wires the screen factories together.
func newEnv(opts Options) *screens.Env {
	env := &screens.Env{
		Client:   opts.Client,
		Sessions: opts.Sessions,
		Attempts: opts.Attempts,
		Log:      opts.Log,
		Now:      opts.Now,
	}
	env.Landing = func() screen.Screen { return landing.New(env) }
	env.Auth = func(mode auth.Mode) screen.Screen { return authscreen.New(env, mode) }
	env.Quiz = func(s session.Session, notice string) screen.Screen { return quizscreen.New(env, s, notice) }
	env.Dashboard = func(s session.Session, r *api.ScoreReport) screen.Screen {
		return dashscreen.New(env, s, r)
	}
	env.History = func(s session.Session) screen.Screen { return history.New(env, s) }
	return env
}

// newAppModel creates a new AppModel starting on the landing page.
func newAppModel(opts Options) AppModel {
	env := newEnv(opts)
	return AppModel{
		router: router.New(env.Landing()),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscCapturer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Navigate(router.PopScreenMsg{})
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, username := "", ""
	if active != nil {
		title = active.Title()
	}
	if u, ok := active.(screen.UserProvider); ok {
		username = u.Username()
	}

	header := layout.RenderHeader(title, username, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := layout.ContentHeight(m.height)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
