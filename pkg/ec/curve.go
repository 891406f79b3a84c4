package ec

import (
	"fmt"
	"math/big"
)

// Curve is the short Weierstrass curve y^2 = x^3 + a*x + b over F_p with
// p ≡ 3 (mod 4). A Curve is immutable once built by NewCurve.
type Curve struct {
	name    string
	p, a, b *big.Int
}

// NewCurve validates the parameters and returns the curve.
//
// It fails with ErrInvalidCurve when p is not an odd prime greater than 3,
// when p is not 3 mod 4, or when 4a^3 + 27b^2 ≡ 0 (mod p).
func NewCurve(p, a, b *big.Int) (*Curve, error) {
	if p == nil || a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil parameter", ErrInvalidCurve)
	}
	if p.Cmp(three) <= 0 {
		return nil, fmt.Errorf("%w: p = %s must be > 3", ErrInvalidCurve, p)
	}
	if !p.ProbablyPrime(20) {
		return nil, fmt.Errorf("%w: p = %s is not prime", ErrInvalidCurve, p)
	}
	if new(big.Int).Mod(p, four).Cmp(three) != 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCurve, ErrUnsupportedModulus)
	}

	c := &Curve{
		p: new(big.Int).Set(p),
		a: Mod(a, p),
		b: Mod(b, p),
	}
	if c.isSingular() {
		return nil, fmt.Errorf("%w: singular curve (4a^3 + 27b^2 ≡ 0 mod %s)", ErrInvalidCurve, p)
	}
	return c, nil
}

// MustCurve is like NewCurve but panics on invalid parameters. It is meant
// for package-level presets.
func MustCurve(p, a, b *big.Int) *Curve {
	c, err := NewCurve(p, a, b)
	if err != nil {
		panic(err)
	}
	return c
}

// WithName returns a copy of the curve carrying a display name.
func (c *Curve) WithName(name string) *Curve {
	cp := *c
	cp.name = name
	return &cp
}

// Name returns the display name, or a y^2 = ... description.
func (c *Curve) Name() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("y^2 = x^3 + %s*x + %s mod %s", c.a, c.b, c.p)
}

// P returns a copy of the field modulus.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// A returns a copy of the x coefficient, normalized into [0, p).
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the constant coefficient, normalized into [0, p).
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

func (c *Curve) isSingular() bool {
	a3 := new(big.Int).Exp(c.a, three, c.p)
	a3.Mul(a3, four)
	b2 := new(big.Int).Mul(c.b, c.b)
	b2.Mul(b2, big.NewInt(27))
	return a3.Add(a3, b2).Mod(a3, c.p).Sign() == 0
}

// Evaluate returns x^3 + a*x + b mod p, the right-hand side of the curve
// equation.
func (c *Curve) Evaluate(x *big.Int) *big.Int {
	xm := Mod(x, c.p)
	z := new(big.Int).Mul(xm, xm)
	z.Add(z, c.a)
	z.Mul(z, xm)
	z.Add(z, c.b)
	return z.Mod(z, c.p)
}

// OnCurve reports whether pt lies on the curve. The point at infinity is
// always on the curve.
func (c *Curve) OnCurve(pt Point) bool {
	if pt.inf {
		return true
	}
	if pt.x.Sign() < 0 || pt.x.Cmp(c.p) >= 0 || pt.y.Sign() < 0 || pt.y.Cmp(c.p) >= 0 {
		return false
	}
	y2 := new(big.Int).Mul(pt.y, pt.y)
	y2.Mod(y2, c.p)
	return y2.Cmp(c.Evaluate(pt.x)) == 0
}

// LiftX returns a point with the given x coordinate (reduced mod p) using
// the root chosen by SqrtModP. When x^3 + a*x + b is zero the point is (x, 0).
func (c *Curve) LiftX(x *big.Int) (Point, error) {
	xm := Mod(x, c.p)
	z := c.Evaluate(xm)
	if z.Sign() == 0 {
		return Point{x: xm, y: new(big.Int)}, nil
	}
	y, err := SqrtModP(z, c.p)
	if err != nil {
		return Point{}, err
	}
	return Point{x: xm, y: y}, nil
}

// Neg returns -pt.
func (c *Curve) Neg(pt Point) Point {
	if pt.inf {
		return pt
	}
	return Point{x: new(big.Int).Set(pt.x), y: NegMod(pt.y, c.p)}
}

// Add returns p1 + p2 under the affine group law.
//
// The only error is ErrNoInverse, which arises only for singular curves and
// therefore cannot happen for a curve built by NewCurve.
func (c *Curve) Add(p1, p2 Point) (Point, error) {
	switch {
	case p1.inf:
		return p2, nil
	case p2.inf:
		return p1, nil
	}

	p := c.p
	var num, den *big.Int
	if p1.x.Cmp(p2.x) == 0 {
		ysum := new(big.Int).Add(p1.y, p2.y)
		if ysum.Mod(ysum, p).Sign() == 0 {
			// P + (-P), which also covers doubling a point with y = 0.
			return Infinity(), nil
		}
		// Doubling: (3x^2 + a) / 2y
		num = new(big.Int).Mul(p1.x, p1.x)
		num.Mul(num, three)
		num.Add(num, c.a)
		den = new(big.Int).Mul(two, p1.y)
	} else {
		num = new(big.Int).Sub(p2.y, p1.y)
		den = new(big.Int).Sub(p2.x, p1.x)
	}

	inv, err := ModInverse(den, p)
	if err != nil {
		return Point{}, err
	}
	lam := num.Mul(num, inv)
	lam.Mod(lam, p)

	xr := new(big.Int).Mul(lam, lam)
	xr.Sub(xr, p1.x)
	xr.Sub(xr, p2.x)
	xr.Mod(xr, p)

	yr := new(big.Int).Sub(p1.x, xr)
	yr.Mul(yr, lam)
	yr.Sub(yr, p1.y)
	yr.Mod(yr, p)

	return Point{x: xr, y: yr}, nil
}

// Double returns 2*pt.
func (c *Curve) Double(pt Point) (Point, error) { return c.Add(pt, pt) }

// ScalarMul returns k*pt by left-to-right double-and-add. k = 0 yields the
// point at infinity and a negative k multiplies -pt.
func (c *Curve) ScalarMul(k *big.Int, pt Point) (Point, error) {
	if k.Sign() < 0 {
		return c.ScalarMul(new(big.Int).Neg(k), c.Neg(pt))
	}
	acc := Infinity()
	if pt.inf {
		return acc, nil
	}
	var err error
	for i := k.BitLen() - 1; i >= 0; i-- {
		if acc, err = c.Double(acc); err != nil {
			return Point{}, err
		}
		if k.Bit(i) == 1 {
			if acc, err = c.Add(acc, pt); err != nil {
				return Point{}, err
			}
		}
	}
	return acc, nil
}

// MustScalarMul is ScalarMul for callers that hold a validated curve, where
// the group law cannot fail.
func (c *Curve) MustScalarMul(k *big.Int, pt Point) Point {
	r, err := c.ScalarMul(k, pt)
	if err != nil {
		panic(fmt.Sprintf("ec: scalar multiplication on validated curve failed: %v", err))
	}
	return r
}
