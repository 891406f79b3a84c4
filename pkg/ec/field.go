package ec

import (
	"fmt"
	"math/big"
)

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
	four  = big.NewInt(4)
)

// Mod returns a mod n normalized into [0, n).
func Mod(a, n *big.Int) *big.Int {
	// big.Int.Mod is Euclidean, so the result is already non-negative.
	return new(big.Int).Mod(a, n)
}

// NegMod returns -a mod n in [0, n).
func NegMod(a, n *big.Int) *big.Int {
	z := new(big.Int).Neg(a)
	return z.Mod(z, n)
}

// ModInverse returns the inverse of a modulo n using the iterative
// extended Euclidean algorithm.
func ModInverse(a, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus %s is not positive", ErrNoInverse, n)
	}

	oldR := Mod(a, n)
	r := new(big.Int).Set(n)
	oldS := big.NewInt(1)
	s := big.NewInt(0)

	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)

		tmp.Mul(q, r)
		tmp.Sub(oldR, tmp)
		oldR, r = r, new(big.Int).Set(tmp)

		tmp.Mul(q, s)
		tmp.Sub(oldS, tmp)
		oldS, s = s, new(big.Int).Set(tmp)
	}

	if oldR.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNoInverse, a, n, oldR)
	}
	return oldS.Mod(oldS, n), nil
}

// IsQuadraticResidue applies Euler's criterion: z^((p-1)/2) mod p == 1.
// Zero is not a residue under this definition.
func IsQuadraticResidue(z, p *big.Int) bool {
	e := new(big.Int).Sub(p, one)
	e.Rsh(e, 1)
	return new(big.Int).Exp(Mod(z, p), e, p).Cmp(one) == 0
}

// SqrtModP returns z^((p+1)/4) mod p, one of the two square roots of z.
// The other root is NegMod(r, p).
func SqrtModP(z, p *big.Int) (*big.Int, error) {
	if new(big.Int).Mod(p, four).Cmp(three) != 0 {
		return nil, fmt.Errorf("%w: p = %s", ErrUnsupportedModulus, p)
	}
	if !IsQuadraticResidue(z, p) {
		return nil, fmt.Errorf("%w: %s mod %s", ErrNotAResidue, z, p)
	}
	e := new(big.Int).Add(p, one)
	e.Rsh(e, 2)
	return new(big.Int).Exp(Mod(z, p), e, p), nil
}
