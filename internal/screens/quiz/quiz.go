// Package quiz is the screen that presents questions one at a time and
// submits the timed answers.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bloomquiz/internal/api"
	qz "github.com/abhisek/bloomquiz/internal/quiz"
	"github.com/abhisek/bloomquiz/internal/router"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/session"
	"github.com/abhisek/bloomquiz/internal/ui/components"
	"github.com/abhisek/bloomquiz/internal/ui/layout"
	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

const spinInterval = 120 * time.Millisecond

var spinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// MsgNoSession is shown when the quiz is opened without logging in.
const MsgNoSession = "You are not logged in. Go back and log in to take the quiz."

type questionsMsg struct {
	questions []api.Question
	err       error
}

type reportMsg struct {
	report *api.ScoreReport
	err    error
}

type spinMsg time.Time

// QuizScreen drives a quiz.Runner from the keyboard.
type QuizScreen struct {
	env      *screens.Env
	runner   *qz.Runner
	input    components.TextInput
	inputErr string
	notice   string
	frame    int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.UserProvider = (*QuizScreen)(nil)

// New creates a quiz for the given session. Questions are fetched on Init.
// A non-empty notice is shown above the quiz until the first answer.
func New(env *screens.Env, s session.Session, notice string) *QuizScreen {
	return &QuizScreen{
		env:    env,
		notice: notice,
		runner: qz.NewRunner(s, env.Client, qz.WithClock(env.Clock())),
		input:  components.NewTextInput("Your answer", "type your answer", 500),
	}
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Username() string {
	return s.runner.Session().Username
}

// Runner exposes the underlying quiz state.
func (s *QuizScreen) Runner() *qz.Runner {
	return s.runner
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.runner.Phase() {
	case qz.PhasePresenting:
		label := "Next"
		if s.runner.IsLast() {
			label = "Submit Answers"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case qz.PhaseFailed:
		if s.retryable() {
			return []layout.KeyHint{
				{Key: "r", Description: "Retry"},
				{Key: "Esc", Description: "Back"},
			}
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.fetch(), spin())
}

func spin() tea.Cmd {
	return tea.Tick(spinInterval, func(t time.Time) tea.Msg {
		return spinMsg(t)
	})
}

func (s *QuizScreen) fetch() tea.Cmd {
	r := s.runner
	return func() tea.Msg {
		qs, err := r.FetchQuestions(context.Background())
		return questionsMsg{questions: qs, err: err}
	}
}

func (s *QuizScreen) submit() tea.Cmd {
	r, env := s.runner, s.env
	return func() tea.Msg {
		report, err := r.SubmitAnswers(context.Background())
		if err != nil {
			return reportMsg{err: err}
		}
		if env.Attempts != nil {
			data := screens.AttemptFromReport(r.Session().Username, r.Total(), report)
			if _, rerr := env.Attempts.Record(context.Background(), data); rerr != nil {
				env.Log.Warn().Err(rerr).Msg("record attempt")
			}
		}
		return reportMsg{report: report}
	}
}

func (s *QuizScreen) busy() bool {
	p := s.runner.Phase()
	return p == qz.PhaseLoading || p == qz.PhaseSubmitting
}

func (s *QuizScreen) retryable() bool {
	return s.runner.Phase() == qz.PhaseFailed && !errors.Is(s.runner.Err(), qz.ErrNoSession)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinMsg:
		if !s.busy() {
			return s, nil
		}
		s.frame++
		return s, spin()

	case questionsMsg:
		return s, s.handleQuestions(msg)

	case reportMsg:
		return s, s.handleReport(msg)

	case tea.KeyPressMsg:
		switch s.runner.Phase() {
		case qz.PhasePresenting:
			if msg.String() == "enter" {
				return s, s.answer()
			}
		case qz.PhaseFailed:
			if msg.String() == "r" && s.retryable() {
				return s, s.retry()
			}
			return s, nil
		default:
			return s, nil
		}
	}

	if s.runner.Phase() != qz.PhasePresenting {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleQuestions(msg questionsMsg) tea.Cmd {
	if msg.err != nil {
		s.runner.Fail(msg.err)
		if !errors.Is(msg.err, qz.ErrNoSession) {
			s.env.Log.Error().Err(msg.err).Str("username", s.Username()).Msg("fetch questions failed")
		}
		return nil
	}
	if err := s.runner.Begin(msg.questions); err != nil {
		s.env.Log.Warn().Err(err).Str("username", s.Username()).Msg("no questions to present")
		return nil
	}
	s.input.SetValue("")
	return s.input.Focus()
}

func (s *QuizScreen) handleReport(msg reportMsg) tea.Cmd {
	if msg.err != nil {
		s.runner.Fail(msg.err)
		s.env.Log.Error().
			Err(msg.err).
			Str("username", s.Username()).
			Int("answers", len(s.runner.Records())).
			Int("status", api.StatusCode(msg.err)).
			Msg("submit answers failed")
		return nil
	}
	s.runner.Complete(msg.report)
	return router.Navigate(router.ReplaceScreenMsg{
		Screen: s.env.Dashboard(s.runner.Session(), msg.report),
	})
}

func (s *QuizScreen) answer() tea.Cmd {
	done, err := s.runner.Answer(s.input.Value())
	if err != nil {
		s.inputErr = err.Error()
		return nil
	}
	s.inputErr = ""
	s.notice = ""
	s.input.SetValue("")
	if done {
		s.input.Blur()
		return tea.Batch(s.submit(), spin())
	}
	return nil
}

func (s *QuizScreen) retry() tea.Cmd {
	phase, err := s.runner.Retry()
	if err != nil {
		return nil
	}
	s.env.Log.Info().Str("phase", phase.String()).Msg("retrying")
	if phase == qz.PhaseSubmitting {
		return tea.Batch(s.submit(), spin())
	}
	return tea.Batch(s.fetch(), spin())
}

func (s *QuizScreen) View(width, height int) string {
	var body string
	switch s.runner.Phase() {
	case qz.PhaseLoading:
		body = s.waitingView("Loading questions...")
	case qz.PhaseSubmitting:
		body = s.waitingView("Submitting answers...")
	case qz.PhasePresenting:
		body = s.questionView(width)
	case qz.PhaseFailed:
		body = s.failedView()
	case qz.PhaseDone:
		body = theme.SuccessText.Render("Answers submitted.")
	}
	if s.notice != "" && s.runner.Phase() != qz.PhaseFailed {
		body = lipgloss.JoinVertical(lipgloss.Center, theme.SuccessText.Render("✓ "+s.notice), "", body)
	}
	return layout.Center(width, height, body)
}

func (s *QuizScreen) waitingView(text string) string {
	frame := spinFrames[s.frame%len(spinFrames)]
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(frame) + " " + theme.Body.Render(text)
}

func (s *QuizScreen) questionView(width int) string {
	q, _ := s.runner.Current()
	i, n := s.runner.Index(), s.runner.Total()

	barWidth := min(40, max(10, width-40))
	rows := []string{
		theme.Heading.Render(fmt.Sprintf("Question %d/%d", i+1, n)),
		components.NewProgressBar("", i, n, barWidth).View(),
		"",
	}
	if q.Label != "" {
		rows = append(rows, theme.Hint.Render(q.Label))
	}
	rows = append(rows,
		theme.Body.Width(min(70, max(20, width-10))).Render(q.Text),
		"",
		s.input.View(),
	)
	if s.inputErr != "" {
		rows = append(rows, theme.ErrorText.Render(s.inputErr))
	}

	label := "Next"
	if s.runner.IsLast() {
		label = "Submit Answers"
	}
	rows = append(rows, "", theme.ButtonActive.Render("▸ "+label))
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (s *QuizScreen) failedView() string {
	err := s.runner.Err()
	if errors.Is(err, qz.ErrNoSession) {
		return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.ErrorText.Render("Not logged in"),
			"",
			theme.Body.Render(MsgNoSession),
		))
	}

	what := "Could not load questions"
	if s.runner.FailedIn() == qz.PhaseSubmitting {
		what = "Could not submit answers"
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.ErrorText.Render(what),
		"",
		theme.Body.Render(api.UserMessage(err)),
		"",
		theme.Hint.Render("Press r to retry"),
	))
}
