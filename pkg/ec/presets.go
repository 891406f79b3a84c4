package ec

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Preset bundles a curve with a base point and the order of that point.
// Base and Order are unset (Base.IsInfinity() and Order == nil) when the
// preset only names a curve.
type Preset struct {
	Name  string
	Curve *Curve
	Base  Point
	Order *big.Int
}

// HasBase reports whether the preset carries a base point and its order.
func (p Preset) HasBase() bool { return !p.Base.IsInfinity() && p.Order != nil }

const (
	// DemoBaseX is the x coordinate of the demo base point (digits of pi).
	DemoBaseX = 31415926

	// DemoTrapdoorD is the demo trapdoor scalar 42*69*111 before reduction mod p.
	DemoTrapdoorD = 42 * 69 * 111
)

// DemoOrder is the group order used for the demo curve's trapdoor inverse.
var DemoOrder = big.NewInt(1000008295)

// Toy103 returns the curve y^2 = x^3 - 3x + 1 over F_103, small enough to
// enumerate completely.
func Toy103() Preset {
	return Preset{
		Name:  "toy103",
		Curve: MustCurve(big.NewInt(103), big.NewInt(-3), big.NewInt(1)).WithName("toy103"),
		Base:  Infinity(),
	}
}

// Demo1e9 returns the curve y^2 = x^3 - 3x + 123456789 over F_(10^9+7) with
// base point x = DemoBaseX.
func Demo1e9() Preset {
	c := MustCurve(big.NewInt(1_000_000_007), big.NewInt(-3), big.NewInt(123456789)).WithName("demo1e9")
	base, err := c.LiftX(big.NewInt(DemoBaseX))
	if err != nil {
		panic(fmt.Sprintf("ec: demo base point: %v", err))
	}
	return Preset{Name: "demo1e9", Curve: c, Base: base, Order: new(big.Int).Set(DemoOrder)}
}

// P256 returns NIST P-256 with its standard generator.
func P256() Preset {
	return fromParams("p256", elliptic.P256().Params(), big.NewInt(-3))
}

// Secp256k1 returns secp256k1 with its standard generator.
func Secp256k1() Preset {
	return fromParams("secp256k1", secp256k1.S256().Params(), big.NewInt(0))
}

func fromParams(name string, params *elliptic.CurveParams, a *big.Int) Preset {
	c := MustCurve(params.P, a, params.B).WithName(name)
	g := NewPoint(params.Gx, params.Gy)
	if !c.OnCurve(g) {
		panic(fmt.Sprintf("ec: %s generator is not on curve", name))
	}
	return Preset{Name: name, Curve: c, Base: g, Order: new(big.Int).Set(params.N)}
}

var presets = map[string]func() Preset{
	"toy103":    Toy103,
	"demo1e9":   Demo1e9,
	"p256":      P256,
	"secp256k1": Secp256k1,
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PresetByName looks up a preset case-insensitively.
func PresetByName(name string) (Preset, error) {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: unknown preset %q (have %s)", ErrInvalidCurve, name, strings.Join(PresetNames(), ", "))
	}
	return fn(), nil
}
