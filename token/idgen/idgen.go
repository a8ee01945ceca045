// Package idgen produces fixed-length lowercase hexadecimal token identifiers.
//
// A Generator is built around exactly one random source. The secure tier
// reads from an io.Reader (crypto/rand by default) and fails loudly when the
// reader fails. The degraded tier picks hex digits from a seeded PRNG and
// must be chosen explicitly with NewDegraded; it is never a silent fallback.
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	mathrand "math/rand/v2"
	"sync"
)

const hexDigits = "0123456789abcdef"

// Tier describes the strength of a Generator's random source.
type Tier string

const (
	TierSecure   Tier = "secure"
	TierDegraded Tier = "degraded"
)

type Generator struct {
	tier   Tier
	reader io.Reader

	mu  sync.Mutex
	rng *mathrand.Rand
}

// New returns a secure Generator reading from src, or crypto/rand when src is nil.
func New(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{tier: TierSecure, reader: src}
}

// NewDegraded returns a Generator that selects each hex digit uniformly from
// a PCG stream seeded with seed. Output is predictable to anyone who knows
// the seed.
func NewDegraded(seed1, seed2 uint64) *Generator {
	return &Generator{
		tier: TierDegraded,
		rng:  mathrand.New(mathrand.NewPCG(seed1, seed2)),
	}
}

func (g *Generator) Tier() Tier {
	return g.tier
}

func (g *Generator) Degraded() bool {
	return g.tier == TierDegraded
}

// Generate returns a string of exactly length characters from [0-9a-f].
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}
	if g.tier == TierDegraded {
		return g.generateDegraded(length), nil
	}

	buf := make([]byte, (length+1)/2)
	if _, err := io.ReadFull(g.reader, buf); err != nil {
		return "", fmt.Errorf("idgen: reading random source: %w", err)
	}
	return hex.EncodeToString(buf)[:length], nil
}

func (g *Generator) generateDegraded(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]byte, length)
	for i := range out {
		out[i] = hexDigits[g.rng.IntN(len(hexDigits))]
	}
	return string(out)
}
