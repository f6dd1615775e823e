package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dscroft/wordnet-blast/quantize"
)

func TestQueryEmptyMatrix(t *testing.T) {
	var m Matrix
	require.True(t, m.Empty())
	require.Equal(t, float32(-1.0), m.Query(0, 0))
}

func TestQueryOutOfRange(t *testing.T) {
	m := Matrix{Rows: make([]Row, 3)}
	require.Equal(t, float32(-1.0), m.Query(5, 1))
	require.Equal(t, float32(-1.0), m.Query(1, 5))
	require.Equal(t, float32(-1.0), m.Query(-1, 1))
}

func TestQueryDiagonal(t *testing.T) {
	m := Matrix{Rows: make([]Row, 3)}
	for a := 0; a < 3; a++ {
		require.Equal(t, float32(1.0), m.Query(a, a))
	}
}

func TestQuerySymmetric(t *testing.T) {
	// row 0: columns [1,3) stored, both non-NULLSIM
	m := Matrix{
		Rows: []Row{
			{Offset: 0, From: 1, To: 3},
			{},
			{},
		},
		Values: []byte{quantize.Encode(0.5), quantize.Encode(0.25)},
	}

	require.Equal(t, m.Query(0, 2), m.Query(2, 0))
	require.Equal(t, quantize.Decode(quantize.Encode(0.5)), m.Query(0, 1))
}

func TestQueryOutsideWindow(t *testing.T) {
	m := Matrix{
		Rows:   []Row{{Offset: 0, From: 2, To: 3}, {}, {}, {}},
		Values: []byte{quantize.Encode(0.5)},
	}
	require.Equal(t, float32(-1.0), m.Query(0, 1)) // before From
	require.Equal(t, float32(-1.0), m.Query(0, 3)) // at/after To
}

func TestCount(t *testing.T) {
	m := Matrix{Values: []byte{1, 2, quantize.NULLSIM, quantize.NULLSIM, 3}}
	require.Equal(t, 2, m.Count(quantize.NULLSIM))
	require.Equal(t, 1, m.Count(byte(1)))
	require.Equal(t, 0, m.Count(byte(99)))
}

func TestSizeAndN(t *testing.T) {
	m := Matrix{Rows: make([]Row, 5), Values: make([]byte, 7)}
	require.Equal(t, 5, m.N())
	require.Equal(t, 7, m.Size())
	require.False(t, m.Empty())
}

func TestRowSize(t *testing.T) {
	r := Row{Offset: 10, From: 4, To: 9}
	require.Equal(t, uint64(5), r.Size())
}
