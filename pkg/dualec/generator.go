package dualec

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Generator is a Dual-EC style generator. Each Generate reads and writes
// the seed, so a Generator must not be shared between goroutines without
// external locking; Clone gives each consumer its own copy.
type Generator struct {
	cfg  *Config
	seed *big.Int
}

// NewGenerator returns a generator positioned at seed, which must lie in [0, p).
func NewGenerator(cfg *Config, seed *big.Int) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrConfiguration)
	}
	if seed == nil || seed.Sign() < 0 || seed.Cmp(cfg.curve.P()) >= 0 {
		return nil, fmt.Errorf("%w: seed must be in [0, p)", ErrConfiguration)
	}
	return &Generator{cfg: cfg, seed: new(big.Int).Set(seed)}, nil
}

// NewRandomGenerator draws the initial seed uniformly from [1, p) using
// rnd, or crypto/rand when rnd is nil.
func NewRandomGenerator(cfg *Config, rnd io.Reader) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrConfiguration)
	}
	if rnd == nil {
		rnd = rand.Reader
	}
	bound := new(big.Int).Sub(cfg.curve.P(), big.NewInt(1))
	seed, err := rand.Int(rnd, bound)
	if err != nil {
		return nil, fmt.Errorf("draw seed: %w", err)
	}
	return NewGenerator(cfg, seed.Add(seed, big.NewInt(1)))
}

// Generate emits one truncated output and advances the seed:
//
//	r    = x(seed*P)
//	seed = x(r*P)
//	out  = truncate(x(r*Q))
//
// On ErrDegenerateState the seed is left unchanged.
func (g *Generator) Generate() (*big.Int, error) {
	out, next, err := g.cfg.step(g.seed)
	if err != nil {
		return nil, err
	}
	g.seed = next
	return out, nil
}

// Seed returns a copy of the current internal state.
func (g *Generator) Seed() *big.Int { return new(big.Int).Set(g.seed) }

// Config returns the generator's immutable configuration.
func (g *Generator) Config() *Config { return g.cfg }

// Clone returns an independent generator at the same state.
func (g *Generator) Clone() *Generator {
	return &Generator{cfg: g.cfg, seed: new(big.Int).Set(g.seed)}
}

// Predict runs a throwaway generator from seed and returns its next count
// outputs.
func Predict(cfg *Config, seed *big.Int, count int) ([]*big.Int, error) {
	g, err := NewGenerator(cfg, seed)
	if err != nil {
		return nil, err
	}
	outs := make([]*big.Int, 0, count)
	for i := 0; i < count; i++ {
		out, err := g.Generate()
		if err != nil {
			return outs, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}
