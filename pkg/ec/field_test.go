package ec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestModInverse(t *testing.T) {
	inv, err := ModInverse(bi(5), bi(11))
	require.NoError(t, err)
	assert.Equal(t, int64(9), inv.Int64()) // 5 * 9 = 45 ≡ 1 mod 11

	inv, err = ModInverse(bi(-3), bi(7))
	require.NoError(t, err)
	assert.Equal(t, int64(2), inv.Int64()) // -3 ≡ 4, 4 * 2 = 8 ≡ 1 mod 7
}

func TestModInverse_NoInverse(t *testing.T) {
	_, err := ModInverse(bi(6), bi(9))
	if !errors.Is(err, ErrNoInverse) {
		t.Fatalf("expected ErrNoInverse, got %v", err)
	}
	_, err = ModInverse(bi(0), bi(9))
	if !errors.Is(err, ErrNoInverse) {
		t.Fatalf("expected ErrNoInverse for zero, got %v", err)
	}
}

func TestModInverse_LargeModulus(t *testing.T) {
	n := P256().Order
	for _, v := range []int64{2, 3, 0x1234567890ABCDEF, 42 * 69 * 111} {
		inv, err := ModInverse(bi(v), n)
		require.NoError(t, err)
		check := new(big.Int).Mul(inv, bi(v))
		assert.Equal(t, 0, check.Mod(check, n).Cmp(one), "inverse of %d", v)
		assert.Equal(t, 0, inv.Cmp(new(big.Int).ModInverse(bi(v), n)))
	}
}

func TestIsQuadraticResidue(t *testing.T) {
	p := bi(11)
	assert.False(t, IsQuadraticResidue(bi(0), p))
	assert.False(t, IsQuadraticResidue(bi(2), p))
	assert.True(t, IsQuadraticResidue(bi(4), p))
	assert.True(t, IsQuadraticResidue(bi(15), p)) // 15 ≡ 4
}

func TestSqrtModP_AllResidues(t *testing.T) {
	for _, pv := range []int64{7, 11, 103, 1_000_000_007} {
		p := bi(pv)
		limit := pv
		if limit > 2000 {
			limit = 2000
		}
		for z := int64(1); z < limit; z++ {
			if !IsQuadraticResidue(bi(z), p) {
				continue
			}
			r, err := SqrtModP(bi(z), p)
			require.NoError(t, err)
			sq := new(big.Int).Mul(r, r)
			if sq.Mod(sq, p).Int64() != z%pv {
				t.Fatalf("sqrt(%d) mod %d = %s squares to %s", z, pv, r, sq)
			}
			other := NegMod(r, p)
			sq.Mul(other, other)
			if sq.Mod(sq, p).Int64() != z%pv {
				t.Fatalf("negated root %s does not square to %d", other, z)
			}
		}
	}
}

func TestSqrtModP_Errors(t *testing.T) {
	_, err := SqrtModP(bi(4), bi(13))
	if !errors.Is(err, ErrUnsupportedModulus) {
		t.Fatalf("expected ErrUnsupportedModulus, got %v", err)
	}
	_, err = SqrtModP(bi(2), bi(11))
	if !errors.Is(err, ErrNotAResidue) {
		t.Fatalf("expected ErrNotAResidue, got %v", err)
	}
}
