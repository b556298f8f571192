package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/bloomquiz/internal/screens"
	"github.com/abhisek/bloomquiz/internal/session"
	"github.com/abhisek/bloomquiz/internal/store"
)

type attemptsStub struct {
	list []store.Attempt
	err  error
}

func (a *attemptsStub) Record(context.Context, store.AttemptData) (*store.Attempt, error) {
	return nil, nil
}

func (a *attemptsStub) ListByUser(context.Context, string, int) ([]store.Attempt, error) {
	return a.list, a.err
}

func newTestHistory(a *attemptsStub) *HistoryScreen {
	env := &screens.Env{Attempts: a, Log: zerolog.Nop()}
	h := New(env, session.Session{Username: "ada"})
	h.Update(h.Init()())
	return h
}

func attempt(day int, total float64, feedback string) store.Attempt {
	return store.Attempt{
		SubmittedAt: time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC),
		AttemptData: store.AttemptData{
			Questions:          5,
			TotalScore:         total,
			RememberingScore:   40,
			UnderstandingScore: 30,
			ApplyingScore:      20,
			Feedback:           feedback,
		},
	}
}

func TestNewestFirst(t *testing.T) {
	h := newTestHistory(&attemptsStub{list: []store.Attempt{
		attempt(1, 10, ""),
		attempt(2, 20, ""),
	}})

	if len(h.attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(h.attempts))
	}
	if h.attempts[0].TotalScore != 20 {
		t.Errorf("first row total = %v, want newest (20)", h.attempts[0].TotalScore)
	}
}

func TestEnterExpandsDetails(t *testing.T) {
	h := newTestHistory(&attemptsStub{list: []store.Attempt{attempt(1, 62.5, "Keep practising")}})

	if strings.Contains(h.View(120, 30), "Keep practising") {
		t.Fatal("details shown before expanding")
	}
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := h.View(120, 30)
	if !strings.Contains(view, "Keep practising") || !strings.Contains(view, "44.4%") {
		t.Errorf("expanded view missing details:\n%s", view)
	}
}

func TestNavigationStaysInRange(t *testing.T) {
	h := newTestHistory(&attemptsStub{list: []store.Attempt{attempt(1, 1, ""), attempt(2, 2, "")}})

	h.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if h.selected != 0 {
		t.Errorf("selected = %d, want 0", h.selected)
	}
	for i := 0; i < 3; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if h.selected != 1 {
		t.Errorf("selected = %d, want 1", h.selected)
	}
}

func TestEmptyAndError(t *testing.T) {
	if v := newTestHistory(&attemptsStub{}).View(80, 20); !strings.Contains(v, "No attempts yet") {
		t.Errorf("empty view = %q", v)
	}
	if v := newTestHistory(&attemptsStub{err: errors.New("locked")}).View(80, 20); !strings.Contains(v, "locked") {
		t.Errorf("error view = %q", v)
	}
}
