package auth

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bloomquiz/internal/api"
	authn "github.com/abhisek/bloomquiz/internal/auth"
	"github.com/abhisek/bloomquiz/internal/router"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/session"
)

type stubScreen struct{ user, notice string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.user }
func (s *stubScreen) Title() string                           { return "Quiz" }

func newTestScreen(mode authn.Mode) (*AuthScreen, *api.MockClient, *session.Memory) {
	client := api.NewMockClient()
	sessions := session.NewMemory(session.Session{})
	env := &screens.Env{
		Client:   client,
		Sessions: sessions,
		Log:      zerolog.Nop(),
		Quiz: func(s session.Session, notice string) screen.Screen {
			return &stubScreen{user: s.Username, notice: notice}
		},
	}
	return New(env, mode), client, sessions
}

func fill(s *AuthScreen, name, email, password, confirm string) {
	s.inputs[fieldName].SetValue(name)
	s.inputs[fieldEmail].SetValue(email)
	s.inputs[fieldPassword].SetValue(password)
	s.inputs[fieldConfirm].SetValue(confirm)
}

func press(s *AuthScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

// pressEnterOnLast moves focus to the last field and presses Enter there.
func pressEnterOnLast(s *AuthScreen) tea.Cmd {
	s.setFocus(len(s.visible()) - 1)
	return press(s, tea.KeyEnter)
}

func TestTabTogglesMode(t *testing.T) {
	s, _, _ := newTestScreen(authn.ModeSignup)
	assert.Len(t, s.visible(), 4)

	press(s, tea.KeyTab)
	assert.Equal(t, authn.ModeLogin, s.Mode())
	assert.Len(t, s.visible(), 2)
	assert.Equal(t, "Login", s.Title())

	press(s, tea.KeyTab)
	assert.Equal(t, authn.ModeSignup, s.Mode())
}

func TestEnterAdvancesUntilLastField(t *testing.T) {
	s, client, _ := newTestScreen(authn.ModeSignup)

	for i := 1; i < 4; i++ {
		press(s, tea.KeyEnter)
		assert.Equal(t, i, s.focus)
		assert.False(t, s.Submitting(), "enter on field %d should not submit", i-1)
	}
	assert.Empty(t, client.Calls)
}

func TestUpWrapsFocus(t *testing.T) {
	s, _, _ := newTestScreen(authn.ModeLogin)
	press(s, tea.KeyUp)
	assert.Equal(t, 1, s.focus)
	press(s, tea.KeyDown)
	assert.Equal(t, 0, s.focus)
}

func TestInvalidFormSendsNothing(t *testing.T) {
	s, client, _ := newTestScreen(authn.ModeSignup)
	fill(s, "ada", "not-an-email", "pw", "different")

	cmd := pressEnterOnLast(s)
	assert.Nil(t, cmd)
	assert.False(t, s.Submitting())
	assert.Empty(t, client.Calls)
	assert.Contains(t, s.View(100, 30), authn.MsgPasswordMismatch)
}

func TestLoginSuccessReplacesWithQuiz(t *testing.T) {
	s, client, sessions := newTestScreen(authn.ModeLogin)
	client.On(api.OpAuthenticate, api.MockResponse{Message: "Welcome back, ada"})
	fill(s, "ada", "", "secret", "")

	cmd := pressEnterOnLast(s)
	require.NotNil(t, cmd)
	assert.True(t, s.Submitting())
	assert.Contains(t, s.View(100, 30), "Submitting...")

	_, next := s.Update(cmd())
	require.NotNil(t, next)
	msg, ok := next().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg")
	assert.Equal(t, "ada", msg.Screen.(*stubScreen).user)
	assert.Equal(t, "Welcome back, ada", msg.Screen.(*stubScreen).notice)

	got, err := sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, 1, client.CallCount(api.OpAuthenticate))
}

func TestSubmitIgnoredWhileInFlight(t *testing.T) {
	s, client, _ := newTestScreen(authn.ModeLogin)
	client.On(api.OpAuthenticate, api.MockResponse{Message: "ok"})
	fill(s, "ada", "", "secret", "")

	first := pressEnterOnLast(s)
	require.NotNil(t, first)
	assert.Nil(t, press(s, tea.KeyEnter))
	assert.Nil(t, press(s, tea.KeyTab))
	assert.Equal(t, authn.ModeLogin, s.Mode())

	first()
	assert.Equal(t, 1, client.CallCount(api.OpAuthenticate))
}

func TestRejectedLoginOpensAlert(t *testing.T) {
	s, client, sessions := newTestScreen(authn.ModeLogin)
	client.On(api.OpAuthenticate, api.MockResponse{
		Err: &api.ErrRejected{Operation: api.OpAuthenticate, StatusCode: 401, Message: "Invalid credentials"},
	})
	fill(s, "ada", "", "wrong", "")

	cmd := pressEnterOnLast(s)
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	assert.Nil(t, next)
	assert.False(t, s.Submitting())
	assert.Contains(t, s.Alert(), "Invalid credentials")
	assert.True(t, s.CapturesEsc())
	assert.Contains(t, s.View(100, 30), "Invalid credentials")

	got, _ := sessions.Load(context.Background())
	assert.False(t, got.Active())

	press(s, tea.KeyEscape)
	assert.Empty(t, s.Alert())
	assert.False(t, s.CapturesEsc())
}

func TestSignupSuccessSwitchesToLogin(t *testing.T) {
	s, client, sessions := newTestScreen(authn.ModeSignup)
	client.On(api.OpRegister, api.MockResponse{Message: "User registered successfully"})
	fill(s, "ada", "ada@example.com", "secret", "secret")

	cmd := pressEnterOnLast(s)
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Equal(t, authn.ModeLogin, s.Mode())
	assert.Equal(t, "User registered successfully", s.Alert())
	assert.Equal(t, "ada", s.inputs[fieldName].Value())
	assert.Empty(t, s.inputs[fieldPassword].Value())

	got, _ := sessions.Load(context.Background())
	assert.False(t, got.Active(), "signup must not log in")

	sub := client.Calls[0]
	assert.Equal(t, api.OpRegister, sub.Operation)
	assert.Equal(t, "secret", sub.Credentials.Password)
}
