package quantize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNullsim(t *testing.T) {
	require.Equal(t, float32(-1.0), Decode(NULLSIM))
}

func TestEncodeUndefinedInputs(t *testing.T) {
	cases := []float32{0, -1, -0.5, float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1))}
	for _, s := range cases {
		assert.Equal(t, NULLSIM, Encode(s), "input %v", s)
	}
}

func TestEncodeBounds(t *testing.T) {
	// s=1 must map to byte 1 per the spec's convention.
	require.Equal(t, byte(1), Encode(1.0))

	// s very close to 0 saturates at 254, never reaching NULLSIM via the formula.
	require.Equal(t, byte(254), Encode(1.0/300.0))
}

func TestEncodeMonotonic(t *testing.T) {
	prevByte := byte(0)
	for i := 1; i <= 100; i++ {
		s := float32(i) / 100.0
		b := Encode(s)
		if prevByte != 0 {
			require.LessOrEqual(t, int(b), int(prevByte), "byte codes must be non-increasing as s increases")
		}
		prevByte = b
	}
}

func TestRoundTripSampledInputs(t *testing.T) {
	for i := 1; i <= 254; i++ {
		s := 1.0 / float32(i)
		b := Encode(s)
		require.Equal(t, byte(i), b)
		require.Equal(t, s, Decode(b))
	}
}

func TestEncodeUndefinedMapsToNullsimDecode(t *testing.T) {
	require.Equal(t, float32(-1.0), Decode(Encode(-5)))
}
