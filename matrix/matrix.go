// Package matrix implements the compact sparse-by-row similarity matrix: the
// row index, the contiguous value array, and the constant-time lookup
// engine described by the similarity cache's core.
package matrix

import "github.com/dscroft/wordnet-blast/quantize"

// Row is the per-row descriptor mapping a row id to the contiguous span of
// quantized bytes stored for it.
//
// Offset is the starting index into the global Values array for this row.
// [From,To) is the half-open column range physically stored; From is always
// >= row+1 since the diagonal (similarity 1.0) is never materialized.
type Row struct {
	Offset uint64
	From   uint64
	To     uint64
}

// Size returns the number of stored bytes for this row.
func (r Row) Size() uint64 {
	return r.To - r.From
}

// Matrix holds the row index and value array produced by Build or Load. It
// is immutable after construction and safe for concurrent Query calls.
type Matrix struct {
	Rows   []Row
	Values []byte
}

// N returns the number of rows (synsets) the matrix was built for.
func (m *Matrix) N() int {
	return len(m.Rows)
}

// Empty reports whether the matrix holds no rows.
func (m *Matrix) Empty() bool {
	return m == nil || len(m.Rows) == 0
}

// Size returns the number of bytes in the value array.
func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return len(m.Values)
}

// Count returns the number of occurrences of byte v in the value array.
// Used for diagnostics, e.g. Count(quantize.NULLSIM) to measure how many
// interior gaps survived trimming.
func (m *Matrix) Count(v byte) int {
	if m == nil {
		return 0
	}
	n := 0
	for _, b := range m.Values {
		if b == v {
			n++
		}
	}
	return n
}

// Query returns the similarity between synset a and b in O(1), per the
// lookup contract:
//
//  1. an empty matrix or either id >= N returns -1.0.
//  2. a == b returns 1.0 without consulting storage.
//  3. otherwise the row min(a,b) is consulted at column max(a,b); columns
//     outside that row's stored window return -1.0.
func (m *Matrix) Query(a, b int) float32 {
	if m.Empty() {
		return -1.0
	}

	n := len(m.Rows)
	if a < 0 || b < 0 || a >= n || b >= n {
		return -1.0
	}

	if a == b {
		return 1.0
	}

	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	r := m.Rows[lo]
	h := uint64(hi)
	if h < r.From || h >= r.To {
		return -1.0
	}

	return quantize.Decode(m.Values[r.Offset+h-r.From])
}
