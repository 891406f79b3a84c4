package dualec

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/ec"
)

// TrapdoorKey is the secret relation between the generator's points:
// Q = D*P and E = D^-1 mod Order, so E*Q = P.
type TrapdoorKey struct {
	d, e, order *big.Int
}

// NewTrapdoorKey derives Q = d*P and the trapdoor e = d^-1 mod order, and
// runs the setup self-check e*Q == P. order must be the order of P (or a
// multiple of it such as the curve order).
func NewTrapdoorKey(curve *ec.Curve, p ec.Point, d, order *big.Int) (*TrapdoorKey, ec.Point, error) {
	if curve == nil || d == nil || order == nil {
		return nil, ec.Point{}, fmt.Errorf("%w: nil trapdoor parameter", ErrConfiguration)
	}
	if p.IsInfinity() || !curve.OnCurve(p) {
		return nil, ec.Point{}, fmt.Errorf("%w: base point %s: %w", ErrConfiguration, p, ec.ErrNotOnCurve)
	}
	if order.Cmp(big.NewInt(1)) <= 0 {
		return nil, ec.Point{}, fmt.Errorf("%w: order %s must exceed 1", ErrConfiguration, order)
	}
	if !curve.MustScalarMul(order, p).IsInfinity() {
		return nil, ec.Point{}, fmt.Errorf("%w: %s is not a multiple of the order of P", ErrConfiguration, order)
	}

	e, err := ec.ModInverse(d, order)
	if err != nil {
		return nil, ec.Point{}, fmt.Errorf("%w: trapdoor d = %s: %w", ErrConfiguration, d, err)
	}

	q := curve.MustScalarMul(d, p)
	if q.IsInfinity() {
		return nil, ec.Point{}, fmt.Errorf("%w: d*P is the point at infinity", ErrConfiguration)
	}
	if !curve.MustScalarMul(e, q).Equal(p) {
		return nil, ec.Point{}, fmt.Errorf("%w: self-check e*Q == P failed", ErrConfiguration)
	}

	return &TrapdoorKey{
		d:     new(big.Int).Set(d),
		e:     e,
		order: new(big.Int).Set(order),
	}, q, nil
}

// NewTrapdoorKeyFromE wraps a known trapdoor e without knowing d, as an
// adversary holding only the backdoor would. It checks e*Q == P.
func NewTrapdoorKeyFromE(cfg *Config, e *big.Int) (*TrapdoorKey, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil trapdoor", ErrConfiguration)
	}
	k := &TrapdoorKey{e: new(big.Int).Set(e)}
	if err := k.Check(cfg); err != nil {
		return nil, err
	}
	return k, nil
}

// D returns a copy of d, or nil when the key was built from e alone.
func (k *TrapdoorKey) D() *big.Int {
	if k.d == nil {
		return nil
	}
	return new(big.Int).Set(k.d)
}

// E returns a copy of the trapdoor scalar.
func (k *TrapdoorKey) E() *big.Int { return new(big.Int).Set(k.e) }

// Order returns a copy of the order used to invert d, or nil.
func (k *TrapdoorKey) Order() *big.Int {
	if k.order == nil {
		return nil
	}
	return new(big.Int).Set(k.order)
}

// Check verifies e*Q == P for the given generator configuration.
func (k *TrapdoorKey) Check(cfg *Config) error {
	if !cfg.Curve().MustScalarMul(k.e, cfg.Q()).Equal(cfg.P()) {
		return fmt.Errorf("%w: trapdoor does not satisfy e*Q == P", ErrConfiguration)
	}
	return nil
}

// NewBackdooredConfig builds Q = d*P, the trapdoor key and the generator
// configuration in one validated step.
func NewBackdooredConfig(curve *ec.Curve, p ec.Point, d, order *big.Int, truncationBits, outputBits uint) (*Config, *TrapdoorKey, error) {
	key, q, err := NewTrapdoorKey(curve, p, d, order)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := NewConfig(curve, p, q, truncationBits, outputBits)
	if err != nil {
		return nil, nil, err
	}
	return cfg, key, nil
}
