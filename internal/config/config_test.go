package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/dualec-backdoor/pkg/dualec"
	"github.com/mahdiidarabi/dualec-backdoor/pkg/ec"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	exp, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *exp)

	cfg, key, seed, err := exp.Build()
	require.NoError(t, err)
	assert.Equal(t, "demo1e9", cfg.Curve().Name())
	assert.Equal(t, uint(16), cfg.TruncationBits())
	assert.Equal(t, uint(32), cfg.OutputBits())
	assert.Equal(t, int64(0x42), seed.Int64())
	assert.NoError(t, key.Check(cfg))
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
curve: toy103
base_x: "0"
d: "2"
truncation_bits: 3
output_bits: 7
seed: "5"
workers: 2
`)
	exp, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, exp.Workers)

	cfg, key, seed, err := exp.Build()
	require.NoError(t, err)
	assert.Equal(t, "toy103", cfg.Curve().Name())
	assert.Equal(t, uint(3), cfg.TruncationBits())
	assert.Equal(t, int64(5), seed.Int64())
	assert.Equal(t, int64(99), key.Order().Int64(), "order should be counted for the toy curve")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "truncation_bits: 12\n")
	t.Setenv("DUALEC_TRUNCATION_BITS", "8")

	exp, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(8), exp.TruncationBits)
}

func TestLoad_FlagsOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Uint("truncation-bits", 16, "")
	fs.String("seed", "", "")
	require.NoError(t, fs.Parse([]string{"--truncation-bits=4"}))

	exp, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, uint(4), exp.TruncationBits)
	assert.Equal(t, "0x42", exp.Seed, "unchanged flags must not shadow defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestExperiment_BuildExplicitCurve(t *testing.T) {
	exp := Experiment{P: "103", A: "-3", B: "0x1", BaseX: "0", D: "5", Seed: "", TruncationBits: 2, OutputBits: 7}
	cfg, _, seed, err := exp.Build()
	require.NoError(t, err)
	assert.Nil(t, seed)
	assert.Equal(t, int64(100), cfg.Curve().A().Int64())
}

func TestExperiment_BuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		exp    Experiment
		target error
	}{
		{"unknown preset", Experiment{Curve: "curve25519", D: "2", OutputBits: 7}, ec.ErrInvalidCurve},
		{"toy without base", Experiment{Curve: "toy103", D: "2", OutputBits: 7}, dualec.ErrConfiguration},
		{"d without inverse", Experiment{Curve: "toy103", BaseX: "0", D: "33", OutputBits: 7}, dualec.ErrConfiguration},
		{"missing d", Experiment{Curve: "toy103", BaseX: "0", OutputBits: 7}, dualec.ErrConfiguration},
		{"bad number", Experiment{Curve: "toy103", BaseX: "0", D: "two", OutputBits: 7}, dualec.ErrConfiguration},
		{"negative seed", Experiment{Curve: "toy103", BaseX: "0", D: "2", Seed: "-1", OutputBits: 7}, dualec.ErrConfiguration},
		{"truncation too wide", Experiment{Curve: "toy103", BaseX: "0", D: "2", TruncationBits: 7, OutputBits: 7}, dualec.ErrConfiguration},
		{"composite modulus", Experiment{P: "99", A: "0", B: "1", BaseX: "0", D: "2", OutputBits: 7}, ec.ErrInvalidCurve},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := tt.exp.Build()
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
		})
	}
}
