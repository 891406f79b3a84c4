package bruteforce

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	seen map[uint64]int
}

func newCounter() *counter { return &counter{seen: make(map[uint64]int)} }

func TestSweep_VisitsEveryIndexOnce(t *testing.T) {
	for _, tc := range []struct {
		total   uint64
		workers int
		chunk   uint64
	}{
		{0, 4, 16},
		{1, 4, 16},
		{1000, 1, 7},
		{1 << 12, 8, 0},
		{333, 16, 1},
	} {
		res, err := Sweep(context.Background(), tc.total, Options{NumWorkers: tc.workers, ChunkSize: tc.chunk},
			newCounter, func(i uint64, c *counter) bool {
				c.seen[i]++
				return false
			})
		require.NoError(t, err)
		assert.False(t, res.Stopped)
		assert.Equal(t, tc.total, res.Visited)

		merged := make(map[uint64]int)
		for _, p := range res.Partitions {
			for i, n := range p.seen {
				merged[i] += n
			}
		}
		require.Len(t, merged, int(tc.total))
		for i, n := range merged {
			if n != 1 {
				t.Fatalf("index %d visited %d times", i, n)
			}
		}
	}
}

func TestSweep_EarlyStop(t *testing.T) {
	res, err := Sweep(context.Background(), 1<<16, Options{NumWorkers: 4, ChunkSize: 64},
		newCounter, func(i uint64, c *counter) bool {
			c.seen[i]++
			return i == 100
		})
	require.NoError(t, err)
	assert.True(t, res.Stopped)
	assert.Less(t, res.Visited, uint64(1<<16))
}

func TestSweep_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sweep(ctx, 1<<20, Options{NumWorkers: 2}, newCounter, func(i uint64, c *counter) bool {
		return false
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSweep_Progress(t *testing.T) {
	var calls int
	done := make(chan struct{}, 1<<10)
	_, err := Sweep(context.Background(), 1000, Options{NumWorkers: 1, ProgressEvery: 100, OnProgress: func(uint64) {
		done <- struct{}{}
	}}, newCounter, func(i uint64, c *counter) bool { return false })
	require.NoError(t, err)
	close(done)
	for range done {
		calls++
	}
	assert.Equal(t, 10, calls)
}
