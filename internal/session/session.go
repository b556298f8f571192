// Package session holds the logged-in identity shared by the auth form,
// the quiz runner and the dashboard.
package session

import (
	"context"
	"strings"
	"sync"
)

// Session identifies the logged-in user. The zero value means nobody has
// logged in.
type Session struct {
	Username string
}

// Active reports whether the session names a user.
func (s Session) Active() bool {
	return strings.TrimSpace(s.Username) != ""
}

// Store persists the session between screens and runs. Written on
// successful login, read when a quiz starts, cleared on logout.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// Memory is an in-process Store.
type Memory struct {
	mu  sync.Mutex
	cur Session
}

// NewMemory returns a Memory store seeded with s.
func NewMemory(s Session) *Memory {
	return &Memory{cur: s}
}

func (m *Memory) Load(context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur, nil
}

func (m *Memory) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = s
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = Session{}
	return nil
}
