package shortcode

import (
	"crypto/rand"
	"math/big"
)

const (
	// Charset contains every character a short code can be built from.
	Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultLength is the length of generated short codes.
	DefaultLength = 6
)

// Generator produces random short codes. It holds no shared state and
// gives no uniqueness guarantee; callers resolve collisions by retrying.
type Generator struct {
	length int
}

// NewGenerator creates a generator producing codes of the given length.
// Non-positive lengths fall back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Generate returns a code drawn uniformly at random from Charset.
func (g *Generator) Generate() (string, error) {
	b := make([]byte, g.length)
	max := big.NewInt(int64(len(Charset)))
	for i := range b {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = Charset[num.Int64()]
	}
	return string(b), nil
}

// Length returns the configured code length.
func (g *Generator) Length() int {
	return g.length
}
