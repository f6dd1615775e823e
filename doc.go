// Package simcache provides a precomputed pairwise similarity cache for a
// large lexical-semantic graph (WordNet-style synsets linked by hypernym,
// hyponym and related relations).
//
// The cache drives a parallel batch computation of the upper triangle of the
// N×N similarity matrix using a pluggable similarity function, compacts it
// into a sparse-by-row byte matrix that keeps only the contiguous "band of
// interest" per row, persists that matrix to a seekable binary file, and
// answers random-access queries in O(1).
//
// # Quick Start
//
//	c := simcache.New(simcache.WithConcurrency(runtime.NumCPU()))
//	if err := c.Build(ctx, graph, simFunc); err != nil {
//	    log.Fatal(err)
//	}
//	if err := c.Save("./data"); err != nil {
//	    log.Fatal(err)
//	}
//	// ... later, possibly in a different process:
//	c2 := simcache.New()
//	if err := c2.Load("./data"); err != nil {
//	    log.Fatal(err)
//	}
//	sim := c2.Query(a, b) // -1.0 if undefined
//
// # Lookup contract
//
// Query(a,b) never errors. It returns 1.0 for a==b, -1.0 for any id out of
// range or any pair whose similarity was not stored, and the decoded
// quantized similarity otherwise. The cache is immutable after Build or Load
// returns and is safe for concurrent Query calls from many goroutines.
package simcache
