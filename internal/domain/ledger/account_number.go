package ledger

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// AccountNumberGenerator produces candidate account numbers. Numbers look
// monotonic (date-prefixed) but are not guaranteed unique; callers must
// collision-check against storage and retry with a fresh candidate.
type AccountNumberGenerator struct {
	prefix string
	now    func() time.Time
	randN  func(n int64) int64
}

// GeneratorOption configures an AccountNumberGenerator
type GeneratorOption func(*AccountNumberGenerator)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *AccountNumberGenerator) {
		g.now = now
	}
}

// WithRand overrides the random source, for tests
func WithRand(randN func(n int64) int64) GeneratorOption {
	return func(g *AccountNumberGenerator) {
		g.randN = randN
	}
}

// NewAccountNumberGenerator creates a generator with the given prefix
func NewAccountNumberGenerator(prefix string, opts ...GeneratorOption) *AccountNumberGenerator {
	g := &AccountNumberGenerator{
		prefix: prefix,
		now:    time.Now,
		randN:  rand.Int64N,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns a fresh candidate account number
func (g *AccountNumberGenerator) Next() string {
	return fmt.Sprintf("%s%s%05d", g.prefix, g.now().Format("060102"), g.randN(100000))
}
