// Package randstr generates random strings over a fixed alphabet.
package randstr

import (
	"crypto/rand"
	"math/big"
)

type Generator struct {
	letters string
}

func New(letters string) *Generator {
	return &Generator{letters: letters}
}

// GenerateRandomString draws every character from crypto/rand; the strings
// are used as bearer tokens.
func (g *Generator) GenerateRandomString(length int) string {
	max := big.NewInt(int64(len(g.letters)))

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("randstr: " + err.Error())
		}
		b[i] = g.letters[n.Int64()]
	}

	return string(b)
}
