// Package config loads experiment settings from a config file, DUALEC_*
// environment variables and command-line flags.
package config

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/dualec"
	"github.com/mahdiidarabi/dualec-backdoor/pkg/ec"
)

// EnvPrefix is prepended to every environment override, e.g. DUALEC_SEED.
const EnvPrefix = "DUALEC"

// Experiment is the raw, unvalidated description of a backdoored generator.
// Integers are decimal or 0x-prefixed hex strings.
type Experiment struct {
	Curve          string `mapstructure:"curve"`   // preset name, empty for explicit p/a/b
	P              string `mapstructure:"p"`       // explicit field modulus
	A              string `mapstructure:"a"`       // explicit coefficient a
	B              string `mapstructure:"b"`       // explicit coefficient b
	BaseX          string `mapstructure:"base_x"`  // x of P; empty = preset base
	D              string `mapstructure:"d"`       // trapdoor scalar, Q = d*P
	Order          string `mapstructure:"order"`   // order of P; empty = preset or counted
	Seed           string `mapstructure:"seed"`    // empty = random
	TruncationBits uint   `mapstructure:"truncation_bits"`
	OutputBits     uint   `mapstructure:"output_bits"`
	Workers        int    `mapstructure:"workers"`
}

// Defaults reproduces the demo curve scenario.
func Defaults() Experiment {
	return Experiment{
		Curve:          "demo1e9",
		D:              fmt.Sprint(ec.DemoTrapdoorD),
		Seed:           "0x42",
		TruncationBits: 16,
		OutputBits:     32,
	}
}

// Load reads the experiment from path (optional), the environment and any
// flags in fs whose names match the mapstructure keys with dashes, so
// --truncation-bits binds truncation_bits.
func Load(path string, fs *pflag.FlagSet) (*Experiment, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("curve", def.Curve)
	v.SetDefault("p", "")
	v.SetDefault("a", "")
	v.SetDefault("b", "")
	v.SetDefault("base_x", "")
	v.SetDefault("d", def.D)
	v.SetDefault("order", "")
	v.SetDefault("seed", def.Seed)
	v.SetDefault("truncation_bits", def.TruncationBits)
	v.SetDefault("output_bits", def.OutputBits)
	v.SetDefault("workers", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if fs != nil {
		for _, key := range v.AllKeys() {
			flag := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
			}
		}
	}

	exp := &Experiment{}
	if err := v.Unmarshal(exp); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return exp, nil
}

// Build validates the experiment into a generator configuration and its
// trapdoor. seed is nil when the experiment asks for a random one.
func (e *Experiment) Build() (cfg *dualec.Config, key *dualec.TrapdoorKey, seed *big.Int, err error) {
	curve, base, order, err := e.resolveCurve()
	if err != nil {
		return nil, nil, nil, err
	}

	d, err := parseInt("d", e.D)
	if err != nil {
		return nil, nil, nil, err
	}
	if d == nil {
		return nil, nil, nil, fmt.Errorf("%w: trapdoor d is required", dualec.ErrConfiguration)
	}
	d.Mod(d, curve.P())

	cfg, key, err = dualec.NewBackdooredConfig(curve, base, d, order, e.TruncationBits, e.OutputBits)
	if err != nil {
		return nil, nil, nil, err
	}

	seed, err = parseInt("seed", e.Seed)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, key, seed, nil
}

func (e *Experiment) resolveCurve() (*ec.Curve, ec.Point, *big.Int, error) {
	var (
		curve *ec.Curve
		base  = ec.Infinity()
		order *big.Int
	)

	if e.P != "" {
		p, err := parseInt("p", e.P)
		if err != nil {
			return nil, ec.Point{}, nil, err
		}
		a, err := parseSigned("a", e.A)
		if err != nil {
			return nil, ec.Point{}, nil, err
		}
		b, err := parseSigned("b", e.B)
		if err != nil {
			return nil, ec.Point{}, nil, err
		}
		curve, err = ec.NewCurve(p, a, b)
		if err != nil {
			return nil, ec.Point{}, nil, err
		}
	} else {
		pre, err := ec.PresetByName(e.Curve)
		if err != nil {
			return nil, ec.Point{}, nil, err
		}
		curve, base, order = pre.Curve, pre.Base, pre.Order
	}

	if e.BaseX != "" {
		x, err := parseInt("base_x", e.BaseX)
		if err != nil {
			return nil, ec.Point{}, nil, err
		}
		if base, err = curve.LiftX(x); err != nil {
			return nil, ec.Point{}, nil, fmt.Errorf("%w: base_x %s: %w", dualec.ErrConfiguration, x, err)
		}
		order = nil
	}
	if base.IsInfinity() {
		return nil, ec.Point{}, nil, fmt.Errorf("%w: curve %s has no base point, set base_x", dualec.ErrConfiguration, curve.Name())
	}

	if e.Order != "" {
		o, err := parseInt("order", e.Order)
		if err != nil {
			return nil, ec.Point{}, nil, err
		}
		order = o
	}
	if order == nil {
		n, err := ec.CountPoints(curve)
		if err != nil {
			return nil, ec.Point{}, nil, fmt.Errorf("%w: order is required for this curve: %w", dualec.ErrConfiguration, err)
		}
		order = n
	}
	return curve, base, order, nil
}

// parseInt parses a non-negative integer. An empty string yields nil.
func parseInt(name, s string) (*big.Int, error) {
	z, err := parseSigned(name, s)
	if err != nil || z == nil {
		return z, err
	}
	if z.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", dualec.ErrConfiguration, name)
	}
	return z, nil
}

func parseSigned(name, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	base := 10
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		body = body[2:]
		base = 16
	}
	z, ok := new(big.Int).SetString(body, base)
	if !ok {
		return nil, fmt.Errorf("%w: %s: invalid number %q", dualec.ErrConfiguration, name, s)
	}
	if neg {
		z.Neg(z)
	}
	return z, nil
}
