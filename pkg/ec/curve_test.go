package ec

import (
	"crypto/elliptic"
	"errors"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCurve(t *testing.T, p, a, b int64) *Curve {
	t.Helper()
	c, err := NewCurve(bi(p), bi(a), bi(b))
	if err != nil {
		t.Fatalf("NewCurve(%d, %d, %d): %v", p, a, b, err)
	}
	return c
}

func pt(x, y int64) Point { return NewPoint(bi(x), bi(y)) }

func TestNewCurve_Validation(t *testing.T) {
	cases := []struct {
		name    string
		p, a, b int64
	}{
		{"p one mod four", 13, 1, 1},
		{"p not prime", 15, 1, 1},
		{"p too small", 3, 1, 1},
		{"singular", 11, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCurve(bi(tc.p), bi(tc.a), bi(tc.b))
			if !errors.Is(err, ErrInvalidCurve) {
				t.Fatalf("expected ErrInvalidCurve, got %v", err)
			}
		})
	}

	c := mustCurve(t, 103, -3, 1)
	assert.Equal(t, int64(100), c.A().Int64(), "a should be normalized into [0, p)")
}

func TestCurve_Evaluate(t *testing.T) {
	c := mustCurve(t, 11, 0, 1)
	assert.Equal(t, int64(1), c.Evaluate(bi(0)).Int64())
	assert.Equal(t, int64(0), c.Evaluate(bi(10)).Int64()) // 1000 + 1 = 1001 = 91*11
	assert.Equal(t, int64(9), c.Evaluate(bi(2)).Int64())
}

func TestCurve_AddBasics(t *testing.T) {
	c := mustCurve(t, 11, 0, 1) // y^2 = x^3 + 1
	P := pt(0, 1)
	require.True(t, c.OnCurve(P))

	Q, err := c.Add(P, Infinity())
	require.NoError(t, err)
	assert.True(t, Q.Equal(P), "P + O != P")

	Q, err = c.Add(Infinity(), P)
	require.NoError(t, err)
	assert.True(t, Q.Equal(P), "O + P != P")

	Q, err = c.Add(P, c.Neg(P))
	require.NoError(t, err)
	assert.True(t, Q.IsInfinity(), "P + (-P) != O")

	// y = 0 has a vertical tangent
	R, err := c.Double(pt(10, 0))
	require.NoError(t, err)
	assert.True(t, R.IsInfinity())
}

func TestCurve_GroupLawOnToyCurve(t *testing.T) {
	c := Toy103().Curve
	pts, err := Points(c)
	require.NoError(t, err)
	require.NotEmpty(t, pts)

	for i, p1 := range pts {
		require.True(t, c.OnCurve(p1), "enumerated point %s not on curve", p1)
		for j := i; j < len(pts) && j < i+8; j++ {
			p2 := pts[j]
			s1, err := c.Add(p1, p2)
			require.NoError(t, err)
			s2, err := c.Add(p2, p1)
			require.NoError(t, err)
			if !s1.Equal(s2) {
				t.Fatalf("addition not commutative for %s, %s", p1, p2)
			}
			if !c.OnCurve(s1) {
				t.Fatalf("%s + %s = %s is off curve", p1, p2, s1)
			}
			// (p1 + p2) - p2 == p1
			back, err := c.Add(s1, c.Neg(p2))
			require.NoError(t, err)
			if !back.Equal(p1) {
				t.Fatalf("(%s + %s) - %s = %s", p1, p2, p2, back)
			}
		}
	}
}

func TestCurve_ScalarMulMatchesRepeatedAdd(t *testing.T) {
	c := Toy103().Curve
	pts, err := Points(c)
	require.NoError(t, err)
	P := pts[len(pts)/2]

	acc := Infinity()
	for k := int64(0); k < 150; k++ {
		got, err := c.ScalarMul(bi(k), P)
		require.NoError(t, err)
		if !got.Equal(acc) {
			t.Fatalf("%d*P = %s, repeated addition gives %s", k, got, acc)
		}
		acc, err = c.Add(acc, P)
		require.NoError(t, err)
	}

	neg, err := c.ScalarMul(bi(-5), P)
	require.NoError(t, err)
	pos, err := c.ScalarMul(bi(5), P)
	require.NoError(t, err)
	assert.True(t, neg.Equal(c.Neg(pos)))
}

func TestCurve_LiftX(t *testing.T) {
	c := mustCurve(t, 11, 0, 1)
	P, err := c.LiftX(bi(10))
	require.NoError(t, err)
	assert.Equal(t, int64(0), P.Y().Int64())

	P, err = c.LiftX(bi(13)) // reduced to x = 2, rhs = 9
	require.NoError(t, err)
	assert.Equal(t, int64(2), P.X().Int64())
	assert.True(t, c.OnCurve(P))

	// rhs(1) = 2, a non-residue mod 11
	_, err = c.LiftX(bi(1))
	assert.True(t, errors.Is(err, ErrNotAResidue))
}

func TestCurve_OnCurveRejectsUnreducedCoordinates(t *testing.T) {
	c := mustCurve(t, 11, 0, 1)
	assert.True(t, c.OnCurve(pt(0, 1)))
	assert.False(t, c.OnCurve(pt(11, 1)))
	assert.False(t, c.OnCurve(pt(0, 2)))
	assert.True(t, c.OnCurve(Infinity()))
}

func TestCurve_TrapdoorRoundTripOnToyCurve(t *testing.T) {
	c := Toy103().Curve
	pts, err := Points(c)
	require.NoError(t, err)

	for _, P := range pts {
		ord, err := PointOrder(c, P, 1000)
		require.NoError(t, err)
		for d := int64(1); d < ord.Int64(); d++ {
			e, err := ModInverse(bi(d), ord)
			if err != nil {
				continue
			}
			Q := c.MustScalarMul(bi(d), P)
			back := c.MustScalarMul(e, Q)
			if !back.Equal(P) {
				t.Fatalf("e*(d*P) != P for P=%s d=%d e=%s ord=%s", P, d, e, ord)
			}
		}
	}
}

func TestCurve_Secp256k1CrossCheck(t *testing.T) {
	pre := Secp256k1()
	for _, hexKey := range []string{
		"01",
		"0123456789abcdef",
		"c0ffee254729296a45a3885639ac7e10f9d54979c0ffee254729296a45a3885",
	} {
		k, ok := new(big.Int).SetString(hexKey, 16)
		require.True(t, ok)

		got, err := pre.Curve.ScalarMul(k, pre.Base)
		require.NoError(t, err)

		var buf [32]byte
		k.FillBytes(buf[:])
		want := secp256k1.PrivKeyFromBytes(buf[:]).PubKey()
		assert.Equal(t, 0, got.X().Cmp(want.X()), "x mismatch for k=%s", hexKey)
		assert.Equal(t, 0, got.Y().Cmp(want.Y()), "y mismatch for k=%s", hexKey)
	}
}

func TestCurve_BtcecArbitraryPointCrossCheck(t *testing.T) {
	pre := Secp256k1()
	P := pre.Curve.MustScalarMul(bi(0x1234567890ABCDEF), pre.Base)
	k := bi(42 * 69 * 111)

	got := pre.Curve.MustScalarMul(k, P)
	wx, wy := btcec.S256().ScalarMult(P.X(), P.Y(), k.Bytes())
	assert.Equal(t, 0, got.X().Cmp(wx))
	assert.Equal(t, 0, got.Y().Cmp(wy))
}

func TestCurve_P256CrossCheck(t *testing.T) {
	pre := P256()
	k := bi(0x1234567890ABCDEF)
	got := pre.Curve.MustScalarMul(k, pre.Base)
	wx, wy := elliptic.P256().ScalarBaseMult(k.Bytes())
	assert.Equal(t, 0, got.X().Cmp(wx))
	assert.Equal(t, 0, got.Y().Cmp(wy))

	inf := pre.Curve.MustScalarMul(pre.Order, pre.Base)
	assert.True(t, inf.IsInfinity(), "n*G should be the point at infinity")
}
