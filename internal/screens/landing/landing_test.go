package landing

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bloomquiz/internal/auth"
	"github.com/abhisek/bloomquiz/internal/router"
	"github.com/abhisek/bloomquiz/internal/screen"
	"github.com/abhisek/bloomquiz/internal/screens"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func newTestLanding() (*LandingScreen, *[]auth.Mode) {
	var modes []auth.Mode
	env := &screens.Env{
		Auth: func(m auth.Mode) screen.Screen {
			modes = append(modes, m)
			return &stubScreen{title: m.Label()}
		},
	}
	return New(env), &modes
}

func sendTicks(l *LandingScreen, n int) {
	for i := 0; i < n; i++ {
		l.Update(tickMsg(time.Now()))
	}
}

func TestTitleShown(t *testing.T) {
	l, _ := newTestLanding()
	view := l.View(100, 30)
	if !strings.Contains(view, Title) {
		t.Errorf("view missing %q", Title)
	}
}

func TestButtonRevealedAfterTicks(t *testing.T) {
	l, _ := newTestLanding()
	if l.Revealed() {
		t.Fatal("button should be hidden at start")
	}
	if strings.Contains(l.View(100, 30), "Get Started") {
		t.Error("button rendered before reveal")
	}

	sendTicks(l, 6)
	if !l.Revealed() {
		t.Fatal("expected button after intro")
	}
	if !strings.Contains(l.View(100, 30), "Get Started") {
		t.Error("button missing after reveal")
	}
}

func TestKeypressSkipsIntro(t *testing.T) {
	l, modes := newTestLanding()

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("first key should only skip the intro")
	}
	if !l.Revealed() {
		t.Error("expected intro skipped")
	}
	if len(*modes) != 0 {
		t.Error("auth screen built before Get Started was pressed")
	}
}

func TestGetStartedOpensSignup(t *testing.T) {
	l, modes := newTestLanding()
	sendTicks(l, 6)

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != auth.ModeSignup.Label() {
		t.Errorf("pushed %q, want signup screen", push.Screen.Title())
	}
	if len(*modes) != 1 || (*modes)[0] != auth.ModeSignup {
		t.Errorf("auth factory modes = %v, want [signup]", *modes)
	}
}

func TestTickKeepsTicking(t *testing.T) {
	l, _ := newTestLanding()
	_, cmd := l.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected next tick")
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
}
