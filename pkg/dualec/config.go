package dualec

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/ec"
)

// Config is the immutable description shared by a generator and the
// attacks against it. A new truncation width means a new Config; see
// WithTruncation.
type Config struct {
	curve          *ec.Curve
	p, q           ec.Point
	truncationBits uint
	outputBits     uint
	mask           *big.Int
}

// NewConfig validates the base points and widths. P and Q must be finite
// points on curve and 0 <= truncationBits < outputBits must hold.
func NewConfig(curve *ec.Curve, p, q ec.Point, truncationBits, outputBits uint) (*Config, error) {
	if curve == nil {
		return nil, fmt.Errorf("%w: nil curve", ErrConfiguration)
	}
	for name, pt := range map[string]ec.Point{"P": p, "Q": q} {
		if pt.IsInfinity() {
			return nil, fmt.Errorf("%w: %s is the point at infinity", ErrConfiguration, name)
		}
		if !curve.OnCurve(pt) {
			return nil, fmt.Errorf("%w: %s = %s: %w", ErrConfiguration, name, pt, ec.ErrNotOnCurve)
		}
	}
	if truncationBits >= outputBits {
		return nil, fmt.Errorf("%w: truncation bits %d must be below output bits %d", ErrConfiguration, truncationBits, outputBits)
	}

	mask := new(big.Int).Lsh(big.NewInt(1), outputBits-truncationBits)
	mask.Sub(mask, big.NewInt(1))

	return &Config{
		curve:          curve,
		p:              p,
		q:              q,
		truncationBits: truncationBits,
		outputBits:     outputBits,
		mask:           mask,
	}, nil
}

// WithTruncation returns a new Config that differs only in truncation width.
func (c *Config) WithTruncation(n uint) (*Config, error) {
	return NewConfig(c.curve, c.p, c.q, n, c.outputBits)
}

func (c *Config) Curve() *ec.Curve     { return c.curve }
func (c *Config) P() ec.Point          { return c.p }
func (c *Config) Q() ec.Point          { return c.q }
func (c *Config) TruncationBits() uint { return c.truncationBits }
func (c *Config) OutputBits() uint     { return c.outputBits }

// KeptBits is the number of low-order bits an output reveals, l - n.
func (c *Config) KeptBits() uint { return c.outputBits - c.truncationBits }

// Truncate drops the high bits of x. When x has at most n significant bits
// the result is 0; callers must treat a 0 output as ambiguous.
func (c *Config) Truncate(x *big.Int) *big.Int {
	if uint(x.BitLen()) <= c.truncationBits {
		return new(big.Int)
	}
	return new(big.Int).And(x, c.mask)
}

// step computes one generator transition from seed without mutating
// anything, returning the emitted output and the next seed.
func (c *Config) step(seed *big.Int) (out, next *big.Int, err error) {
	sP := c.curve.MustScalarMul(seed, c.p)
	if sP.IsInfinity() {
		return nil, nil, fmt.Errorf("%w: seed*P", ErrDegenerateState)
	}
	r := sP.X()

	rP := c.curve.MustScalarMul(r, c.p)
	if rP.IsInfinity() {
		return nil, nil, fmt.Errorf("%w: r*P", ErrDegenerateState)
	}
	rQ := c.curve.MustScalarMul(r, c.q)
	if rQ.IsInfinity() {
		return nil, nil, fmt.Errorf("%w: r*Q", ErrDegenerateState)
	}
	return c.Truncate(rQ.X()), rP.X(), nil
}
