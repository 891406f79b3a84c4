package ec

import (
	"fmt"
	"math/big"
)

// Point is an affine curve point or the point at infinity. The zero value
// is not a valid point; use NewPoint or Infinity.
type Point struct {
	x, y *big.Int
	inf  bool
}

// NewPoint returns the finite point (x, y). It does not check curve
// membership; see Curve.OnCurve.
func NewPoint(x, y *big.Int) Point {
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// Infinity returns the identity element.
func Infinity() Point { return Point{inf: true} }

// IsInfinity reports whether pt is the identity element.
func (pt Point) IsInfinity() bool { return pt.inf }

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (pt Point) X() *big.Int {
	if pt.inf || pt.x == nil {
		return nil
	}
	return new(big.Int).Set(pt.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (pt Point) Y() *big.Int {
	if pt.inf || pt.y == nil {
		return nil
	}
	return new(big.Int).Set(pt.y)
}

// Equal reports whether both points are the same variant with equal coordinates.
func (pt Point) Equal(other Point) bool {
	if pt.inf || other.inf {
		return pt.inf == other.inf
	}
	return pt.x.Cmp(other.x) == 0 && pt.y.Cmp(other.y) == 0
}

func (pt Point) String() string {
	if pt.inf {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", pt.x, pt.y)
}
