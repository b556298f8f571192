// Package auth is the combined signup and login form.
package auth

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bloomquiz/internal/api"
	authn "github.com/abhisek/bloomquiz/internal/auth"
	"github.com/abhisek/bloomquiz/internal/router"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/ui/components"
	"github.com/abhisek/bloomquiz/internal/ui/layout"
	"github.com/abhisek/bloomquiz/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// structFields maps validation error fields onto inputs.
var structFields = map[string]field{
	"Name":            fieldName,
	"Email":           fieldEmail,
	"Password":        fieldPassword,
	"ConfirmPassword": fieldConfirm,
}

// submitResultMsg carries the outcome of an auth.Submit call.
type submitResultMsg struct {
	outcome authn.Outcome
	err     error
}

// AuthScreen collects credentials and submits them in the selected mode.
type AuthScreen struct {
	env        *screens.Env
	mode       authn.Mode
	tabs       components.Tabs
	inputs     [fieldCount]components.TextInput
	focus      int
	submitting bool

	alert      string
	alertError bool
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)
var _ screen.EscCapturer = (*AuthScreen)(nil)

// New creates the form in the given mode with the first field focused.
func New(env *screens.Env, mode authn.Mode) *AuthScreen {
	s := &AuthScreen{env: env}
	s.inputs[fieldName] = components.NewTextInput("Name", "your username", 64)
	s.inputs[fieldEmail] = components.NewTextInput("Email Address", "you@example.com", 128)
	s.inputs[fieldPassword] = components.NewPasswordInput("Password", "password")
	s.inputs[fieldConfirm] = components.NewPasswordInput("Confirm Password", "repeat password")
	s.setMode(mode)
	return s
}

func (s *AuthScreen) Title() string {
	return s.mode.Label()
}

// Mode returns the mode the form currently submits in.
func (s *AuthScreen) Mode() authn.Mode {
	return s.mode
}

// Submitting reports whether a request is in flight.
func (s *AuthScreen) Submitting() bool {
	return s.submitting
}

// Alert returns the message of the open alert, if any.
func (s *AuthScreen) Alert() string {
	return s.alert
}

// CapturesEsc keeps Esc for dismissing the alert.
func (s *AuthScreen) CapturesEsc() bool {
	return s.alert != ""
}

func (s *AuthScreen) KeyHints() []layout.KeyHint {
	if s.alert != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Dismiss"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Login/Signup"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Next/Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AuthScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *AuthScreen) visible() []field {
	if s.mode == authn.ModeSignup {
		return []field{fieldName, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []field{fieldName, fieldPassword}
}

func (s *AuthScreen) setMode(mode authn.Mode) tea.Cmd {
	s.mode = mode
	selected := 0
	if mode == authn.ModeSignup {
		selected = 1
	}
	s.tabs = components.NewTabs(selected, authn.ModeLogin.Label(), authn.ModeSignup.Label())
	for i := range s.inputs {
		s.inputs[i].ClearMark()
	}
	return s.setFocus(0)
}

func (s *AuthScreen) setFocus(i int) tea.Cmd {
	vis := s.visible()
	if i < 0 {
		i = len(vis) - 1
	}
	if i >= len(vis) {
		i = 0
	}
	s.focus = i
	for j := range s.inputs {
		s.inputs[j].Blur()
	}
	return s.inputs[vis[i]].Focus()
}

func (s *AuthScreen) onLastField() bool {
	return s.focus == len(s.visible())-1
}

func (s *AuthScreen) form() authn.Form {
	return authn.Form{
		Mode:            s.mode,
		Name:            s.inputs[fieldName].Value(),
		Email:           s.inputs[fieldEmail].Value(),
		Password:        s.inputs[fieldPassword].Value(),
		ConfirmPassword: s.inputs[fieldConfirm].Value(),
	}
}

func (s *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return s, s.handleResult(msg)

	case tea.KeyPressMsg:
		if s.alert != "" {
			s.alert = ""
			return s, nil
		}
		if s.submitting {
			return s, nil
		}

		switch msg.String() {
		case "tab":
			return s, s.setMode(s.mode.Toggle())
		case "up", "shift+tab":
			return s, s.setFocus(s.focus - 1)
		case "down":
			return s, s.setFocus(s.focus + 1)
		case "enter":
			if s.onLastField() {
				return s, s.submit()
			}
			return s, s.setFocus(s.focus + 1)
		}
	}

	f := s.visible()[s.focus]
	var cmd tea.Cmd
	s.inputs[f], cmd = s.inputs[f].Update(msg)
	return s, cmd
}

func (s *AuthScreen) submit() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].ClearMark()
	}

	f := s.form()
	if err := f.Validate(); err != nil {
		s.markInvalid(err)
		return nil
	}

	s.submitting = true
	env := s.env
	return func() tea.Msg {
		out, err := authn.Submit(context.Background(), env.Client, env.Sessions, f)
		return submitResultMsg{outcome: out, err: err}
	}
}

func (s *AuthScreen) markInvalid(err error) {
	var ve *authn.ValidationError
	if !errors.As(err, &ve) {
		s.openAlert(err.Error(), true)
		return
	}
	for _, fe := range ve.Fields {
		if f, ok := structFields[fe.Field]; ok {
			s.inputs[f].Mark(false, fe.Message)
		}
	}
}

func (s *AuthScreen) openAlert(text string, isError bool) {
	s.alert = text
	s.alertError = isError
}

func (s *AuthScreen) handleResult(msg submitResultMsg) tea.Cmd {
	s.submitting = false

	if msg.err != nil {
		s.env.Log.Warn().
			Err(msg.err).
			Str("mode", string(s.mode)).
			Int("status", api.StatusCode(msg.err)).
			Msg("auth request failed")
		s.openAlert(api.UserMessage(msg.err), true)
		return nil
	}

	switch msg.outcome.Next {
	case authn.NextLogin:
		text := msg.outcome.Message
		if text == "" {
			text = "Signup successful. Please log in."
		}
		name := s.inputs[fieldName].Value()
		cmd := s.setMode(authn.ModeLogin)
		s.inputs[fieldName].SetValue(name)
		s.inputs[fieldPassword].SetValue("")
		s.inputs[fieldConfirm].SetValue("")
		s.openAlert(text, false)
		return cmd
	case authn.NextQuiz:
		s.env.Log.Info().Str("username", msg.outcome.Session.Username).Msg("logged in")
		text := msg.outcome.Message
		if text == "" {
			text = "Login successful"
		}
		return router.Navigate(router.ReplaceScreenMsg{Screen: s.env.Quiz(msg.outcome.Session, text)})
	}
	return nil
}

func (s *AuthScreen) View(width, height int) string {
	if s.alert != "" {
		return layout.Center(width, height, s.alertView())
	}

	var rows []string
	rows = append(rows, s.tabs.View(), "")
	for _, f := range s.visible() {
		rows = append(rows, s.inputs[f].View())
	}
	rows = append(rows, "")

	if s.submitting {
		rows = append(rows, theme.Hint.Render("Submitting..."))
	} else {
		label := s.mode.Label()
		if !s.onLastField() {
			label = "Next"
		}
		rows = append(rows, theme.ButtonActive.Render("▸ "+label))
	}

	card := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return layout.Center(width, height, card)
}

func (s *AuthScreen) alertView() string {
	title := theme.SuccessText.Render("Success")
	if s.alertError {
		title = theme.ErrorText.Render("Something went wrong")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		theme.Body.Render(strings.TrimSpace(s.alert)),
		"",
		theme.Hint.Render("press any key"),
	)
	return theme.Alert.Render(body)
}
