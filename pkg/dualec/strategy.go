package dualec

import (
	"context"
	"math/big"
	"time"
)

// Strategy defines the interface for seed recovery strategies.
// Implement this interface to plug a custom search into a Client.
type Strategy interface {
	// Recover searches for internal states consistent with the observation.
	// An empty result is not an error; see RecoveryResult.Exhausted.
	// The context can be used for cancellation.
	Recover(ctx context.Context, cfg *Config, key *TrapdoorKey, obs Observation) (*RecoveryResult, error)

	// Name returns a human-readable name for this strategy.
	Name() string
}

// Observation is a pair of consecutive truncated outputs.
type Observation struct {
	Out0 *big.Int // first captured output
	Out1 *big.Int // the output that followed it
}

// RecoveryResult contains the result of a seed recovery run.
type RecoveryResult struct {
	Seeds                []*big.Int    // candidate states after Out0, ascending, deduplicated
	Verified             bool          // whether every seed reproduced Out1
	Strategy             string        // name of the strategy that produced the result
	TruncationBits       uint          // n used for the sweep
	Enumerated           uint64        // primary high-bit sweep size, 2^n when not stopped early
	DegenerateEnumerated uint64        // extra x values tried because Out0 was 0
	Residues             uint64        // x values whose right-hand side was a square
	Stopped              bool          // the sweep ended at the first accepted seed
	Elapsed              time.Duration // wall time of the sweep
	Confirmed            []*big.Int    // seeds that also predicted every extra output, set by Client
}

// Exhausted reports whether the sweep found no candidate.
func (r *RecoveryResult) Exhausted() bool { return len(r.Seeds) == 0 }

// Contains reports whether seed is among the recovered candidates.
func (r *RecoveryResult) Contains(seed *big.Int) bool {
	for _, s := range r.Seeds {
		if s.Cmp(seed) == 0 {
			return true
		}
	}
	return false
}

// SearchConfig configures a trapdoor sweep.
type SearchConfig struct {
	// NumWorkers controls parallelization (0 = auto-detect)
	NumWorkers int

	// ChunkSize is the number of high-bit prefixes per work item (0 = default)
	ChunkSize uint64

	// StopAtFirst ends the sweep once one seed is accepted
	StopAtFirst bool

	// BothRoots also evaluates the second square root of each residue.
	// Both roots lead to the same seed, so this only doubles the work.
	BothRoots bool
}

// DefaultSearchConfig returns a full single-root sweep on all CPUs.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		NumWorkers:  0, // Auto-detect
		StopAtFirst: false,
		BothRoots:   false,
	}
}

// Observer receives the outcome of every completed search.
type Observer interface {
	ObserveSearch(result *RecoveryResult)
}
