package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vitrine/internal/mirror"
)

func TestStore(t *testing.T) {
	m := mirror.NewMemory()
	s := NewStore(m)

	access, refresh := s.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.False(t, s.Authenticated())

	s.SetTokens("a1", "r1")
	access, refresh = s.Tokens()
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)
	assert.True(t, s.Authenticated())

	// Clear трогает только токены
	m.Set(mirror.KeyCart, "[]")
	s.Clear()
	assert.False(t, s.Authenticated())
	_, ok := m.Get(mirror.KeyCart)
	assert.True(t, ok)
}
