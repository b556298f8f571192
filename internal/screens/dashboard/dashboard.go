// Package dashboard shows the score breakdown of a submitted quiz.
package dashboard

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bloomquiz/internal/api"
	dash "github.com/abhisek/bloomquiz/internal/dashboard"
	"github.com/abhisek/bloomquiz/internal/router"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/session"
	"github.com/abhisek/bloomquiz/internal/store"
	"github.com/abhisek/bloomquiz/internal/ui/components"
	"github.com/abhisek/bloomquiz/internal/ui/layout"
	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

type historyMsg struct {
	times []float64
	err   error
}

type logoutMsg struct {
	err error
}

// DashboardScreen renders one report. The report is fixed for the screen's
// lifetime; only the time history is loaded asynchronously.
type DashboardScreen struct {
	env       *screens.Env
	sess      session.Session
	breakdown dash.Breakdown
	history   []float64
	menu      components.Menu
	logoutErr string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.UserProvider = (*DashboardScreen)(nil)

// New creates the dashboard for report, which may be nil.
func New(env *screens.Env, s session.Session, report *api.ScoreReport) *DashboardScreen {
	d := &DashboardScreen{
		env:       env,
		sess:      s,
		breakdown: dash.Derive(report),
	}
	d.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retry", Key: "r", Action: d.retry},
		{Label: "History", Key: "h", Action: d.showHistory, Disabled: env.History == nil},
		{Label: "Logout", Key: "l", Action: d.logout},
	})
	return d
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) Username() string {
	return d.sess.Username
}

// Breakdown returns the derived figures being shown.
func (d *DashboardScreen) Breakdown() dash.Breakdown {
	return d.breakdown
}

// TimeHistory returns the per-session average times loaded for the time chart.
func (d *DashboardScreen) TimeHistory() []float64 {
	return d.history
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Retry"},
		{Key: "h", Description: "History"},
		{Key: "l", Description: "Logout"},
		{Key: "←→", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	if d.env.Attempts == nil || !d.sess.Active() {
		return nil
	}
	attempts, username := d.env.Attempts, d.sess.Username
	return func() tea.Msg {
		list, err := attempts.ListByUser(context.Background(), username, screens.HistoryLimit)
		if err != nil {
			return historyMsg{err: err}
		}
		return historyMsg{times: store.AverageTimes(list)}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		if msg.err != nil {
			d.env.Log.Warn().Err(msg.err).Msg("load attempt history")
			return d, nil
		}
		d.history = msg.times
		return d, nil

	case logoutMsg:
		if msg.err != nil {
			d.env.Log.Error().Err(msg.err).Msg("clear session")
			d.logoutErr = "Logout failed: " + msg.err.Error()
			return d, nil
		}
		d.env.Log.Info().Str("username", d.sess.Username).Msg("logged out")
		return d, router.Navigate(router.ResetScreenMsg{Screen: d.env.Landing()})

	case tea.KeyPressMsg:
		var cmd tea.Cmd
		d.menu, cmd = d.menu.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DashboardScreen) retry() tea.Cmd {
	return router.Navigate(router.ReplaceScreenMsg{Screen: d.env.Quiz(d.sess, "")})
}

func (d *DashboardScreen) showHistory() tea.Cmd {
	return router.Navigate(router.PushScreenMsg{Screen: d.env.History(d.sess)})
}

func (d *DashboardScreen) logout() tea.Cmd {
	sessions := d.env.Sessions
	return func() tea.Msg {
		return logoutMsg{err: sessions.Clear(context.Background())}
	}
}

func (d *DashboardScreen) View(width, height int) string {
	// Actions go first so a short terminal clips the charts, not the menu.
	rows := []string{d.menu.View()}
	if d.logoutErr != "" {
		rows = append(rows, theme.ErrorText.Render(d.logoutErr))
	}
	rows = append(rows, "", dash.Render(d.breakdown, d.history, width-4))
	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().Padding(0, 2).MaxHeight(height).Render(content)
}
