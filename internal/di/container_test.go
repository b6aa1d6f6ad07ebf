package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

func TestContainer_LazySingleton(t *testing.T) {
	c := NewContainer()
	builds := 0
	tok := NewToken[*counter]("test:counter")

	RegisterToken(c, tok, func(ServiceRegistry) *counter {
		builds++
		return &counter{n: builds}
	})

	assert.Equal(t, 0, builds, "factory must not run before first Get")

	first := GetToken(c, tok)
	second := GetToken(c, tok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestContainer_FactoryResolvesDependencies(t *testing.T) {
	c := NewContainer()
	c.Register("base", 41)

	tok := NewToken[int]("test:derived")
	RegisterToken(c, tok, func(sr ServiceRegistry) int {
		return sr.Get("base").(int) + 1
	})

	assert.Equal(t, 42, GetToken(c, tok))
}

func TestContainer_MissingService(t *testing.T) {
	c := NewContainer()

	require.False(t, c.Has("nope"))
	assert.Panics(t, func() { c.Get("nope") })
}

func TestGetToken_WrongType(t *testing.T) {
	c := NewContainer()
	c.Register("test:value", "a string")

	assert.Panics(t, func() { GetToken(c, NewToken[int]("test:value")) })
}
