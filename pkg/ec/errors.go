package ec

import "errors"

var (
	// ErrNoInverse indicates gcd(a, n) != 1, so a has no inverse modulo n.
	ErrNoInverse = errors.New("ec: no modular inverse")

	// ErrNotAResidue indicates the value has no square root modulo p.
	ErrNotAResidue = errors.New("ec: not a quadratic residue")

	// ErrUnsupportedModulus indicates p is not congruent to 3 mod 4.
	ErrUnsupportedModulus = errors.New("ec: modulus must be 3 mod 4")

	// ErrInvalidCurve indicates the curve parameters failed validation.
	ErrInvalidCurve = errors.New("ec: invalid curve parameters")

	// ErrNotOnCurve indicates a point does not satisfy the curve equation.
	ErrNotOnCurve = errors.New("ec: point is not on curve")

	// ErrTooLarge indicates an enumeration was requested over a field that is too big.
	ErrTooLarge = errors.New("ec: field too large to enumerate")

	// ErrNoDiscreteLog indicates the brute-force discrete log search failed.
	ErrNoDiscreteLog = errors.New("ec: discrete log not found")
)
