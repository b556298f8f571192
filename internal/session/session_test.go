package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActive(t *testing.T) {
	assert.False(t, Session{}.Active())
	assert.False(t, Session{Username: "   "}.Active())
	assert.True(t, Session{Username: "ada"}.Active())
}

func TestMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(Session{})

	s, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, s.Active())

	require.NoError(t, m.Save(ctx, Session{Username: "ada"}))
	s, err = m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada", s.Username)

	require.NoError(t, m.Clear(ctx))
	s, err = m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, s.Active())
}
