package dualec

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/dualec-backdoor/internal/bruteforce"
	"github.com/mahdiidarabi/dualec-backdoor/pkg/ec"
)

// MaxTruncationBits bounds the number of dropped bits an attack will sweep.
const MaxTruncationBits = 40

// searchPartition is one worker's private candidate set.
type searchPartition struct {
	seeds map[string]*big.Int
}

func newSearchPartition() *searchPartition {
	return &searchPartition{seeds: make(map[string]*big.Int)}
}

// trapdoorSweep holds the logic shared by the verified and raw searches.
type trapdoorSweep struct {
	cfg    SearchConfig
	verify bool
	name   string

	logger   *zap.Logger
	observer Observer
}

// VerifiedSearch reconstructs every x(r0*Q) compatible with Out0, maps it
// through the trapdoor to a seed candidate and keeps the candidate only if
// one Generate from it reproduces Out1.
type VerifiedSearch struct {
	trapdoorSweep
}

// NewVerifiedSearch creates a verified search with default settings.
func NewVerifiedSearch() *VerifiedSearch {
	return &VerifiedSearch{trapdoorSweep{
		cfg:    DefaultSearchConfig(),
		verify: true,
		name:   "VerifiedSearch",
		logger: zap.NewNop(),
	}}
}

// WithSearchConfig sets the search configuration for the strategy.
func (s *VerifiedSearch) WithSearchConfig(config SearchConfig) *VerifiedSearch {
	s.cfg = config
	return s
}

// WithLogger sets the logger for progress records.
func (s *VerifiedSearch) WithLogger(logger *zap.Logger) *VerifiedSearch {
	s.logger = logger
	return s
}

// WithObserver registers an observer for completed searches.
func (s *VerifiedSearch) WithObserver(o Observer) *VerifiedSearch {
	s.observer = o
	return s
}

// Name returns the name of this strategy.
func (s *VerifiedSearch) Name() string { return s.name }

// Recover implements the Strategy interface.
func (s *VerifiedSearch) Recover(ctx context.Context, cfg *Config, key *TrapdoorKey, obs Observation) (*RecoveryResult, error) {
	return s.run(ctx, cfg, key, obs)
}

// RawCandidateSearch performs the same sweep as VerifiedSearch without the
// Out1 check. Every lifted point yields a candidate, so the result is a
// superset of the verified one and is flagged Verified=false.
type RawCandidateSearch struct {
	trapdoorSweep
}

// NewRawCandidateSearch creates a raw candidate search with default settings.
func NewRawCandidateSearch() *RawCandidateSearch {
	return &RawCandidateSearch{trapdoorSweep{
		cfg:    DefaultSearchConfig(),
		verify: false,
		name:   "RawCandidateSearch",
		logger: zap.NewNop(),
	}}
}

// WithSearchConfig sets the search configuration for the strategy.
func (s *RawCandidateSearch) WithSearchConfig(config SearchConfig) *RawCandidateSearch {
	s.cfg = config
	return s
}

// WithLogger sets the logger for progress records.
func (s *RawCandidateSearch) WithLogger(logger *zap.Logger) *RawCandidateSearch {
	s.logger = logger
	return s
}

// WithObserver registers an observer for completed searches.
func (s *RawCandidateSearch) WithObserver(o Observer) *RawCandidateSearch {
	s.observer = o
	return s
}

// Name returns the name of this strategy.
func (s *RawCandidateSearch) Name() string { return s.name }

// Recover implements the Strategy interface.
func (s *RawCandidateSearch) Recover(ctx context.Context, cfg *Config, key *TrapdoorKey, obs Observation) (*RecoveryResult, error) {
	return s.run(ctx, cfg, key, obs)
}

func validateObservation(cfg *Config, obs Observation) error {
	kept := cfg.KeptBits()
	for name, v := range map[string]*big.Int{"out0": obs.Out0, "out1": obs.Out1} {
		if v == nil {
			return fmt.Errorf("%w: %s is missing", ErrInvalidObservation, name)
		}
		if v.Sign() < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidObservation, name)
		}
		if uint(v.BitLen()) > kept {
			return fmt.Errorf("%w: %s has %d bits, outputs keep %d", ErrInvalidObservation, name, v.BitLen(), kept)
		}
	}
	return nil
}

func (s *trapdoorSweep) run(ctx context.Context, cfg *Config, key *TrapdoorKey, obs Observation) (*RecoveryResult, error) {
	if cfg == nil || key == nil {
		return nil, fmt.Errorf("%w: nil config or trapdoor", ErrConfiguration)
	}
	if err := validateObservation(cfg, obs); err != nil {
		return nil, err
	}
	n := cfg.TruncationBits()
	if n > MaxTruncationBits {
		return nil, fmt.Errorf("%w: %d truncated bits exceeds the sweep limit %d", ErrConfiguration, n, MaxTruncationBits)
	}

	logger := s.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	total := uint64(1) << n
	shift := cfg.KeptBits()
	opts := bruteforce.Options{
		NumWorkers:    s.cfg.NumWorkers,
		ChunkSize:     s.cfg.ChunkSize,
		ProgressEvery: progressInterval(total),
		OnProgress: func(visited uint64) {
			logger.Debug("search progress",
				zap.String("strategy", s.name),
				zap.Uint("truncation_bits", n),
				zap.Uint64("enumerated", visited),
				zap.Uint64("total", total))
		},
	}

	logger.Info("starting trapdoor sweep",
		zap.String("strategy", s.name),
		zap.Uint("truncation_bits", n),
		zap.Uint("output_bits", cfg.OutputBits()),
		zap.Int("workers", s.cfg.NumWorkers))

	start := time.Now()
	var residues uint64

	// Primary sweep: x = (i << (l-n)) | out0
	primary, err := bruteforce.Sweep(ctx, total, opts, newSearchPartition, func(i uint64, part *searchPartition) bool {
		x := new(big.Int).SetUint64(i)
		x.Lsh(x, shift)
		x.Or(x, obs.Out0)
		return s.tryCandidate(cfg, key, x, obs.Out1, part, &residues)
	})
	if err != nil {
		return nil, err
	}

	parts := primary.Partitions
	result := &RecoveryResult{
		Verified:       s.verify,
		Strategy:       s.name,
		TruncationBits: n,
		Enumerated:     primary.Visited,
		Stopped:        primary.Stopped,
	}

	// Out0 == 0 is also produced by any x with at most n significant bits.
	if obs.Out0.Sign() == 0 && !primary.Stopped {
		low, err := bruteforce.Sweep(ctx, total, opts, newSearchPartition, func(i uint64, part *searchPartition) bool {
			return s.tryCandidate(cfg, key, new(big.Int).SetUint64(i), obs.Out1, part, &residues)
		})
		if err != nil {
			return nil, err
		}
		parts = append(parts, low.Partitions...)
		result.DegenerateEnumerated = low.Visited
		result.Stopped = low.Stopped
	}

	result.Seeds = mergeSeeds(parts)
	result.Residues = atomic.LoadUint64(&residues)
	result.Elapsed = time.Since(start)

	logger.Info("trapdoor sweep finished",
		zap.String("strategy", s.name),
		zap.Uint("truncation_bits", n),
		zap.Uint64("enumerated", result.Enumerated),
		zap.Uint64("degenerate", result.DegenerateEnumerated),
		zap.Uint64("residues", result.Residues),
		zap.Int("candidates", len(result.Seeds)),
		zap.Duration("elapsed", result.Elapsed))

	if s.observer != nil {
		s.observer.ObserveSearch(result)
	}
	return result, nil
}

// tryCandidate lifts x, maps the point through the trapdoor and records
// the resulting seed. It reports whether the sweep should stop.
func (s *trapdoorSweep) tryCandidate(cfg *Config, key *TrapdoorKey, x, out1 *big.Int, part *searchPartition, residues *uint64) bool {
	curve := cfg.Curve()
	a, err := curve.LiftX(x)
	if err != nil {
		return false
	}
	atomic.AddUint64(residues, 1)

	roots := []ec.Point{a}
	if s.cfg.BothRoots && a.Y().Sign() != 0 {
		roots = append(roots, curve.Neg(a))
	}

	found := false
	for _, root := range roots {
		eA := curve.MustScalarMul(key.e, root)
		if eA.IsInfinity() {
			continue
		}
		seed := eA.X()
		if s.verify {
			out, _, err := cfg.step(seed)
			if err != nil || out.Cmp(out1) != 0 {
				continue
			}
		}
		part.seeds[seed.String()] = seed
		found = true
	}
	return found && s.cfg.StopAtFirst
}

func mergeSeeds(parts []*searchPartition) []*big.Int {
	merged := make(map[string]*big.Int)
	for _, part := range parts {
		for k, v := range part.seeds {
			merged[k] = v
		}
	}
	seeds := make([]*big.Int, 0, len(merged))
	for _, v := range merged {
		seeds = append(seeds, v)
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i].Cmp(seeds[j]) < 0 })
	return seeds
}

func progressInterval(total uint64) uint64 {
	if total < 1<<12 {
		return 0
	}
	return total / 16
}
