package simcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dscroft/wordnet-blast/quantize"
)

func TestCacheEmptyGraph(t *testing.T) {
	c := New()
	require.NoError(t, c.Build(context.Background(), IntGraph(0), func(a, b Synset) float32 { return 0.5 }))
	require.True(t, c.Empty())
	require.Equal(t, 0, c.Size())
	require.Equal(t, float32(-1.0), c.Query(0, 0))

	dir := t.TempDir()
	require.NoError(t, c.Save(dir))

	loaded := New()
	require.NoError(t, loaded.Load(dir))
	require.True(t, loaded.Empty())
}

func TestCacheSingleton(t *testing.T) {
	c := New()
	require.NoError(t, c.Build(context.Background(), IntGraph(1), func(a, b Synset) float32 { return 1 }))
	require.False(t, c.Empty())
	require.Equal(t, 0, c.Size())
	require.Equal(t, float32(1.0), c.Query(0, 0))
}

func TestCacheConstantSimilarity(t *testing.T) {
	c := New()
	n := 4
	err := c.Build(context.Background(), IntGraph(n), func(a, b Synset) float32 {
		if a.ID() == b.ID() {
			return 1
		}
		return 0.5
	})
	require.NoError(t, err)
	require.Equal(t, quantize.Decode(quantize.Encode(0.5)), c.Query(1, 3))
}

func TestCacheAllUndefinedOffDiagonal(t *testing.T) {
	c := New()
	n := 3
	err := c.Build(context.Background(), IntGraph(n), func(a, b Synset) float32 {
		if a.ID() == b.ID() {
			return 1
		}
		return -1
	})
	require.NoError(t, err)
	require.Equal(t, 0, c.Size())
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a == b {
				require.Equal(t, float32(1.0), c.Query(a, b))
			} else {
				require.Equal(t, float32(-1.0), c.Query(a, b))
			}
		}
	}
}

func TestCacheSparseBand(t *testing.T) {
	defined := map[[2]int]float32{
		{0, 1}: 0.5,
		{0, 2}: 0.4,
		{2, 3}: 0.3,
		{2, 4}: 0.2,
	}
	sim := func(a, b Synset) float32 {
		lo, hi := a.ID(), b.ID()
		if lo == hi {
			return 1
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		if v, ok := defined[[2]int{lo, hi}]; ok {
			return v
		}
		return -1
	}

	c := New()
	require.NoError(t, c.Build(context.Background(), IntGraph(5), sim))

	require.Equal(t, float32(-1.0), c.Query(0, 3))
	require.Equal(t, quantize.Decode(quantize.Encode(0.2)), c.Query(2, 4))
	require.Equal(t, c.Query(2, 4), c.Query(4, 2))
}

func TestCachePersistenceRoundTrip(t *testing.T) {
	c := New()
	n := 4
	err := c.Build(context.Background(), IntGraph(n), func(a, b Synset) float32 {
		if a.ID() == b.ID() {
			return 1
		}
		return 0.5
	})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, c.Save(dir))

	loaded := New()
	require.NoError(t, loaded.Load(dir))

	require.Equal(t, c.m.Rows, loaded.m.Rows)
	require.Equal(t, c.m.Values, loaded.m.Values)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			require.Equal(t, c.Query(a, b), loaded.Query(a, b))
		}
	}
}

func TestCacheBuildWithOptionsWiresMetricsAndConcurrency(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	var progressed bool
	c := New(
		WithConcurrency(2),
		WithMetricsCollector(metrics),
		WithProgress(func(done, total int) { progressed = true }),
	)

	require.NoError(t, c.Build(context.Background(), IntGraph(10), func(a, b Synset) float32 { return 0.5 }))
	require.True(t, progressed)

	stats := metrics.GetStats()
	require.Equal(t, int64(1), stats.BuildCount)
	require.Equal(t, int64(0), stats.BuildErrors)
	require.Equal(t, int64(10), stats.RowsBuilt)
}

func TestCacheLoadMissingDirectoryLeavesCacheEmpty(t *testing.T) {
	c := New()
	err := c.Load(t.TempDir())
	require.ErrorIs(t, err, ErrIO)
	require.True(t, c.Empty())
}
