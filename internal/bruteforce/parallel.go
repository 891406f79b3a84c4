// Package bruteforce shards an index range [0, total) across parallel
// workers. Each worker owns a private partition, so callers merge results
// after the sweep with no locking inside the hot loop.
package bruteforce

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the number of indices handed to a worker at a time.
const DefaultChunkSize = 256

var errStopped = errors.New("bruteforce: stopped early")

// Range is the half-open index interval [Start, End).
type Range struct {
	Start, End uint64
}

// Options configures a sweep.
type Options struct {
	// NumWorkers controls parallelization (0 = runtime.NumCPU()).
	NumWorkers int

	// ChunkSize is the number of indices per work item (0 = DefaultChunkSize).
	ChunkSize uint64

	// ProgressEvery invokes OnProgress after roughly this many indices (0 = never).
	ProgressEvery uint64

	// OnProgress receives the running count of visited indices. It may be
	// called from any worker goroutine.
	OnProgress func(visited uint64)
}

// Result holds one partition per worker plus sweep statistics.
type Result[T any] struct {
	Partitions []T
	Visited    uint64
	Stopped    bool // a visitor requested early termination
}

// Visitor handles index i, recording into the worker's own partition.
// Returning true stops the whole sweep.
type Visitor[T any] func(i uint64, part T) (stop bool)

// Sweep calls visit for every index in [0, total) unless a visitor stops
// the sweep or ctx is cancelled. A cancelled context is reported as an
// error; an early stop is not.
func Sweep[T any](ctx context.Context, total uint64, opts Options, newPartition func() T, visit Visitor[T]) (*Result[T], error) {
	numWorkers := opts.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	chunk := opts.ChunkSize
	if chunk == 0 {
		chunk = DefaultChunkSize
	}
	if total/chunk+1 < uint64(numWorkers) {
		numWorkers = int(total/chunk + 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	workChan := make(chan Range, numWorkers*2)
	var visited uint64

	// Generate work items
	g.Go(func() error {
		defer close(workChan)
		for start := uint64(0); start < total; start += chunk {
			end := start + chunk
			if end > total || end < start {
				end = total
			}
			select {
			case <-gctx.Done():
				return nil
			case workChan <- Range{Start: start, End: end}:
			}
		}
		return nil
	})

	partitions := make([]T, numWorkers)
	for w := 0; w < numWorkers; w++ {
		part := newPartition()
		partitions[w] = part
		g.Go(func() error {
			for r := range workChan {
				for i := r.Start; i < r.End; i++ {
					if gctx.Err() != nil {
						return nil
					}
					stop := visit(i, part)
					n := atomic.AddUint64(&visited, 1)
					if opts.OnProgress != nil && opts.ProgressEvery > 0 && n%opts.ProgressEvery == 0 {
						opts.OnProgress(n)
					}
					if stop {
						return errStopped
					}
				}
			}
			return nil
		})
	}

	err := g.Wait()
	res := &Result[T]{Partitions: partitions, Visited: atomic.LoadUint64(&visited)}
	switch {
	case errors.Is(err, errStopped):
		res.Stopped = true
	case err != nil:
		return res, err
	}
	if !res.Stopped && ctx.Err() != nil {
		return res, ctx.Err()
	}
	return res, nil
}
