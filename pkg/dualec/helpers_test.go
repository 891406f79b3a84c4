package dualec

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/ec"
)

const (
	toyOutputBits  = 7 // 103 < 2^7
	demoOutputBits = 32
)

// Golden values for the demo curve from seed 0x42, computed independently.
var (
	demoSeed    = big.NewInt(0x42)
	demoS1      = big.NewInt(518966206)
	demoOut0N8  = big.NewInt(2716621)
	demoOut1N8  = big.NewInt(13741165)
	demoOut0N16 = big.NewInt(29645)
	demoOut1N16 = big.NewInt(44141)
)

// toyBase returns (0, 1) on toy103, a generator of the whole group of order 99.
func toyBase(t *testing.T) (*ec.Curve, ec.Point, *big.Int) {
	t.Helper()
	c := ec.Toy103().Curve
	P := ec.NewPoint(big.NewInt(0), big.NewInt(1))
	require.True(t, c.OnCurve(P))
	ord, err := ec.PointOrder(c, P, 1000)
	require.NoError(t, err)
	require.Equal(t, int64(99), ord.Int64())
	return c, P, ord
}

func toyConfig(t *testing.T, d int64, n uint) (*Config, *TrapdoorKey) {
	t.Helper()
	c, P, ord := toyBase(t)
	cfg, key, err := NewBackdooredConfig(c, P, big.NewInt(d), ord, n, toyOutputBits)
	require.NoError(t, err)
	return cfg, key
}

func demoConfig(t *testing.T, n uint) (*Config, *TrapdoorKey) {
	t.Helper()
	pre := ec.Demo1e9()
	d := new(big.Int).Mod(big.NewInt(ec.DemoTrapdoorD), pre.Curve.P())
	cfg, key, err := NewBackdooredConfig(pre.Curve, pre.Base, d, pre.Order, n, demoOutputBits)
	require.NoError(t, err)
	return cfg, key
}

// observe runs two steps from seed and returns both outputs plus the state
// between them. ok is false when the toy curve degenerates.
func observe(cfg *Config, seed *big.Int) (obs Observation, s1 *big.Int, ok bool) {
	gen, err := NewGenerator(cfg, seed)
	if err != nil {
		return Observation{}, nil, false
	}
	out0, err := gen.Generate()
	if err != nil {
		return Observation{}, nil, false
	}
	s1 = gen.Seed()
	out1, err := gen.Generate()
	if err != nil {
		return Observation{}, nil, false
	}
	return Observation{Out0: out0, Out1: out1}, s1, true
}

func ecInfinity() ec.Point { return ec.Infinity() }

func ecPoint(x, y int64) ec.Point { return ec.NewPoint(big.NewInt(x), big.NewInt(y)) }
