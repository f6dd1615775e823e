package simcache

// Synset is an opaque, int-identified handle into a Graph. The core never
// inspects anything about a Synset beyond its ID.
type Synset interface {
	ID() int
}

// Graph is the lexical graph collaborator that Build walks to determine the
// pair space. Len reports the total number of synsets; Synset(id) must
// return, for every id in [0, Len()), a handle whose ID() equals id.
type Graph interface {
	Len() int
	Synset(id int) Synset
}

// SimFunc computes a similarity score between two synsets. A NaN, an
// infinite value, or any value <= 0 is treated as "undefined" for that
// pair: Query returns -1.0 for it. SimFunc must be pure, reentrant, and symmetric:
// sim(a, b) and sim(b, a) are assumed to agree, since Build calls it with
// a fixed a < b ordering and never checks the reverse.
type SimFunc func(a, b Synset) float32

// synsetID wraps a plain int as a Synset, for callers with no richer handle
// type of their own.
type synsetID int

func (s synsetID) ID() int { return int(s) }

// IntGraph is a minimal Graph over a contiguous range [0, N), with synset
// identity carrying no information beyond its index. Useful for tests, the
// CLI's toy demo, and any caller whose synsets are already dense integers.
type IntGraph int

func (g IntGraph) Len() int { return int(g) }

func (g IntGraph) Synset(id int) Synset { return synsetID(id) }
