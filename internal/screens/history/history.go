// Package history lists the logged-in user's past quiz attempts.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dash "github.com/abhisek/bloomquiz/internal/dashboard"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/session"
	"github.com/abhisek/bloomquiz/internal/store"
	"github.com/abhisek/bloomquiz/internal/ui/layout"
	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

// Limit is how many attempts the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

// HistoryScreen displays past attempts, newest first.
type HistoryScreen struct {
	env      *screens.Env
	sess     session.Session
	attempts []store.Attempt
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.UserProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screens.Env, s session.Session) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		sess:     s,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.env.Attempts == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	attempts, username := s.env.Attempts, s.sess.Username
	return func() tea.Msg {
		list, err := attempts.ListByUser(context.Background(), username, Limit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		slices.Reverse(list)
		return historyLoadedMsg{Attempts: list}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Username() string {
	return s.sess.Username
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.env.Log.Warn().Err(msg.Err).Msg("load attempt history")
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Take a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		stamp := "Jan 02, 2006 15:04"
		if layout.IsCompactWidth(width) {
			stamp = "01/02 15:04"
		}
		line := fmt.Sprintf("%s%s  %d questions  total %s  avg %s ms",
			prefix,
			a.SubmittedAt.Local().Format(stamp),
			a.Questions,
			dash.Format1(a.TotalScore),
			dash.Format1(a.AverageTimeMs))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, details(a)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func details(a store.Attempt) string {
	pr, pu, pa, _ := dash.Percentages(a.RememberingScore, a.UnderstandingScore, a.ApplyingScore)
	lines := []string{
		fmt.Sprintf("    %s %s (%s%%)  %s %s (%s%%)  %s %s (%s%%)",
			dash.Remembering, dash.Format1(a.RememberingScore), dash.Format1(pr),
			dash.Understanding, dash.Format1(a.UnderstandingScore), dash.Format1(pu),
			dash.Applying, dash.Format1(a.ApplyingScore), dash.Format1(pa)),
	}
	if f := strings.TrimSpace(a.Feedback); f != "" {
		lines = append(lines, "    "+f)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(lines, "\n"))
}
