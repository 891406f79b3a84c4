package dualec

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// SweepConfig drives a recovery run for each truncation width in
// [MinBits, MaxBits].
type SweepConfig struct {
	Base     *Config      // truncation width of Base is ignored
	Key      *TrapdoorKey // trapdoor for Base
	Seed     *big.Int     // initial generator state
	MinBits  uint
	MaxBits  uint
	Strategy Strategy // nil = VerifiedSearch with defaults
	Logger   *zap.Logger
}

// Sweep runs the attack once per truncation width. Each width gets its own
// immutable Config; the generator state carries over from one width to the
// next, so every row observes fresh outputs.
func Sweep(ctx context.Context, sc SweepConfig) (*Report, error) {
	if sc.Base == nil || sc.Key == nil || sc.Seed == nil {
		return nil, fmt.Errorf("%w: sweep needs base config, trapdoor and seed", ErrConfiguration)
	}
	if sc.MinBits > sc.MaxBits {
		return nil, fmt.Errorf("%w: min bits %d above max bits %d", ErrConfiguration, sc.MinBits, sc.MaxBits)
	}
	strategy := sc.Strategy
	if strategy == nil {
		strategy = NewVerifiedSearch()
	}
	logger := sc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	report := NewReport(sc.Base.Curve().Name(), strategy.Name())
	seed := new(big.Int).Set(sc.Seed)

	for n := sc.MinBits; n <= sc.MaxBits; n++ {
		cfg, err := sc.Base.WithTruncation(n)
		if err != nil {
			return nil, err
		}
		gen, err := NewGenerator(cfg, seed)
		if err != nil {
			return nil, err
		}

		out0, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("truncation %d: %w", n, err)
		}
		realSeed := gen.Seed()
		out1, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("truncation %d: %w", n, err)
		}
		seed = gen.Seed()

		result, err := strategy.Recover(ctx, cfg, sc.Key, Observation{Out0: out0, Out1: out1})
		if err != nil {
			return nil, fmt.Errorf("truncation %d: %w", n, err)
		}

		row := ReportRow{
			TruncationBits: n,
			CandidateCount: len(result.Seeds),
			ElapsedSeconds: result.Elapsed.Seconds(),
			Found:          result.Contains(realSeed),
		}
		report.Rows = append(report.Rows, row)

		logger.Info("sweep row",
			zap.Uint("truncation_bits", n),
			zap.Int("candidates", row.CandidateCount),
			zap.Bool("found", row.Found),
			zap.Float64("elapsed_seconds", row.ElapsedSeconds))
	}
	return report, nil
}
