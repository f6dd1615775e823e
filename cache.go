// Package simcache maintains a precomputed, quantized cache of pairwise
// similarity scores over the synsets of a lexical graph, persisted as a
// sparse upper-triangular byte matrix. See doc.go for an overview.
package simcache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dscroft/wordnet-blast/matrix"
	"github.com/dscroft/wordnet-blast/persist"
)

// Cache owns a single similarity matrix, built via Build or restored via
// Load, and answers O(1) lookups via Query. The zero value is not usable;
// construct with New.
type Cache struct {
	opts options
	m    *matrix.Matrix
}

// New constructs an empty Cache. Query on an empty Cache returns -1.0 for
// every pair until Build or Load succeeds.
func New(opts ...Option) *Cache {
	return &Cache{
		opts: applyOptions(opts),
		m:    &matrix.Matrix{},
	}
}

// Build computes the similarity matrix for every pair of synsets in g,
// replacing whatever the Cache currently holds. On error the Cache is left
// empty, mirroring the "allocation failure clears the cache" contract.
//
// Build takes ctx purely for cooperative cancellation of its worker pool;
// it does not change the output on a path that runs to completion.
func (c *Cache) Build(ctx context.Context, g Graph, sim SimFunc) error {
	runID := uuid.NewString()
	log := c.opts.logger.WithRunID(runID)

	n := g.Len()
	log.LogBuildStart(ctx, n, c.opts.concurrency)

	adapted := func(a, b int) float32 {
		return sim(g.Synset(a), g.Synset(b))
	}

	var progressCalls int
	lastLogged := -1
	start := time.Now()

	m, err := matrix.Build(ctx, n, adapted, matrix.BuildOptions{
		Concurrency: c.opts.concurrency,
		MaxBand:     c.opts.maxBand,
		Progress: func(done, total int) {
			progressCalls++
			if c.opts.progress != nil {
				c.opts.progress(done, total)
			}
			pct := 0
			if total > 0 {
				pct = done * 100 / total
			}
			if pct != lastLogged {
				lastLogged = pct
				log.LogBuildProgress(ctx, done, total)
			}
		},
	})
	duration := time.Since(start)

	if err != nil {
		c.m = &matrix.Matrix{}
		log.LogBuildComplete(ctx, n, 0, err)
		c.opts.metricsCollector.RecordBuild(n, 0, 0, duration, err)
		return translateError(err)
	}

	c.m = m
	nullsim := m.Count(255)
	log.LogBuildComplete(ctx, n, m.Size(), nil)
	c.opts.metricsCollector.RecordBuild(n, m.Size(), nullsim, duration, nil)
	return nil
}

// Save writes the current matrix to dir, using the canonical on-disk file
// name within that directory.
func (c *Cache) Save(dir string) error {
	start := time.Now()
	err := persist.Save(dir, c.m)
	c.opts.logger.LogSave(dir, err)
	c.opts.metricsCollector.RecordSave(c.m.Size(), time.Since(start), err)
	return translateError(err)
}

// Load replaces the current matrix with the one stored in dir. On error the
// Cache is left empty.
func (c *Cache) Load(dir string) error {
	start := time.Now()
	m, err := persist.Load(dir)
	duration := time.Since(start)

	if err != nil {
		c.m = &matrix.Matrix{}
		c.opts.logger.LogLoad(dir, 0, 0, err)
		c.opts.metricsCollector.RecordLoad(0, duration, err)
		return translateError(err)
	}

	c.m = m
	c.opts.logger.LogLoad(dir, m.N(), m.Size(), nil)
	c.opts.metricsCollector.RecordLoad(m.Size(), duration, nil)
	return nil
}

// Query returns the similarity between synsets a and b: 1.0 if a == b,
// -1.0 if out of range or undefined for this pair, otherwise the decoded
// stored score.
func (c *Cache) Query(a, b int) float32 {
	v := c.m.Query(a, b)
	c.opts.metricsCollector.RecordQuery(v >= 0)
	return v
}

// Empty reports whether the Cache holds no built or loaded matrix.
func (c *Cache) Empty() bool {
	return c.m.Empty()
}

// Size returns the number of bytes occupied by the stored value array.
func (c *Cache) Size() int {
	return c.m.Size()
}

// Count returns the number of stored bytes equal to v, e.g. Count(255) for
// the number of explicitly recorded undefined pairs.
func (c *Cache) Count(v byte) int {
	return c.m.Count(v)
}
