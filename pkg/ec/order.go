package ec

import (
	"fmt"
	"math/big"
)

// MaxEnumerablePrime bounds the field size accepted by CountPoints.
const MaxEnumerablePrime = 1 << 22

// legendre returns the Legendre symbol (z | p) as -1, 0 or 1.
func legendre(z, p *big.Int) int {
	zm := Mod(z, p)
	if zm.Sign() == 0 {
		return 0
	}
	if IsQuadraticResidue(zm, p) {
		return 1
	}
	return -1
}

// CountPoints returns #E(F_p), including the point at infinity, by summing
// Legendre symbols over every x. It is O(p) and refuses fields larger than
// MaxEnumerablePrime.
func CountPoints(c *Curve) (*big.Int, error) {
	if c.p.Cmp(big.NewInt(MaxEnumerablePrime)) > 0 {
		return nil, fmt.Errorf("%w: p = %s exceeds %d", ErrTooLarge, c.p, MaxEnumerablePrime)
	}
	count := int64(1)
	for x := int64(0); x < c.p.Int64(); x++ {
		count += int64(1 + legendre(c.Evaluate(big.NewInt(x)), c.p))
	}
	return big.NewInt(count), nil
}

// Points returns every finite point of the curve ordered by (x, y). Same
// size limit as CountPoints.
func Points(c *Curve) ([]Point, error) {
	if c.p.Cmp(big.NewInt(MaxEnumerablePrime)) > 0 {
		return nil, fmt.Errorf("%w: p = %s exceeds %d", ErrTooLarge, c.p, MaxEnumerablePrime)
	}
	var pts []Point
	for x := int64(0); x < c.p.Int64(); x++ {
		bx := big.NewInt(x)
		pt, err := c.LiftX(bx)
		if err != nil {
			continue
		}
		neg := c.Neg(pt)
		if pt.y.Sign() == 0 {
			pts = append(pts, pt)
			continue
		}
		lo, hi := pt, neg
		if lo.y.Cmp(hi.y) > 0 {
			lo, hi = hi, lo
		}
		pts = append(pts, lo, hi)
	}
	return pts, nil
}

// PointOrder returns the smallest k > 0 with k*pt = O, walking the cycle one
// addition at a time. It gives up after limit steps.
func PointOrder(c *Curve, pt Point, limit uint64) (*big.Int, error) {
	if !c.OnCurve(pt) {
		return nil, ErrNotOnCurve
	}
	if pt.inf {
		return big.NewInt(1), nil
	}
	acc := pt
	var err error
	for k := uint64(1); k <= limit; k++ {
		if acc.inf {
			return new(big.Int).SetUint64(k), nil
		}
		if acc, err = c.Add(acc, pt); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: order of %s exceeds %d", ErrTooLarge, pt, limit)
}

// DiscreteLog finds k in [1, ord(base)] with k*base = target by stepping
// through multiples of base. This is what an observer without the trapdoor
// must do to relate the generator's two points, and it is only feasible on
// toy curves.
func DiscreteLog(c *Curve, base, target Point, limit uint64) (*big.Int, error) {
	if !c.OnCurve(base) || !c.OnCurve(target) {
		return nil, ErrNotOnCurve
	}
	acc := base
	var err error
	for k := uint64(1); k <= limit; k++ {
		if acc.Equal(target) {
			return new(big.Int).SetUint64(k), nil
		}
		if acc, err = c.Add(acc, base); err != nil {
			return nil, err
		}
		if acc.Equal(base) {
			// Cycle closed without meeting target.
			return nil, ErrNoDiscreteLog
		}
	}
	return nil, fmt.Errorf("%w: gave up after %d steps", ErrNoDiscreteLog, limit)
}
