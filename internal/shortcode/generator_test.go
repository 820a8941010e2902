package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	g := NewGenerator(6)

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestGenerate_CharsetOnly(t *testing.T) {
	g := NewGenerator(32)

	for i := 0; i < 20; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(Charset, c), "unexpected character %q in code %q", c, code)
		}
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	// Not guaranteed by the generator, but at 62^8 combinations 100
	// draws colliding would indicate a broken random source.
	g := NewGenerator(8)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}

func TestNewGenerator_DefaultLength(t *testing.T) {
	g := NewGenerator(0)
	assert.Equal(t, DefaultLength, g.Length())

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, code, DefaultLength)
}
