package fixed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRatio_ZeroArguments verifies the defined freeze behaviour: a zero
// numerator or denominator yields a zero ratio instead of a crash.
func TestRatio_ZeroArguments(t *testing.T) {
	tests := []struct {
		name string
		a, b uint32
	}{
		{"zero_numerator", 0, 44100},
		{"zero_denominator", 44100, 0},
		{"both_zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Q16(0), Ratio(tt.a, tt.b))
		})
	}
}

// TestRatio_Identity verifies that Ratio(a, a) is exactly 1.0 for any
// nonzero a, including the full unsigned range.
func TestRatio_Identity(t *testing.T) {
	rates := []uint32{1, 2, 3, 8000, 44100, 48000, 192000, math.MaxUint32}

	for _, rate := range rates {
		assert.Equal(t, One, Ratio(rate, rate), "Ratio(%d, %d)", rate, rate)
	}
}

// TestRatio_KnownValues checks exact quotients, including ones whose naive
// shifted division would overflow 32-bit intermediates.
func TestRatio_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b uint32
		want Q16
	}{
		{"one_half", 1, 2, One / 2},
		{"three_halves", 3, 2, One + One/2},
		{"one_third_floored", 1, 3, 21845},
		{"cd_to_dat", 44100, 48000, 60211},
		{"dat_to_cd", 48000, 44100, 71331},
		{"heavy_downsample", 44100, 8000, 361267},
		{"max_numerator", math.MaxUint32, 1, FromInt(math.MaxUint32)},
		{"max_both", math.MaxUint32, math.MaxUint32, One},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ratio(tt.a, tt.b))
		})
	}
}

// TestRatio_MatchesWideDivision cross-checks the long division against
// 64-bit arithmetic, which cannot overflow for these operand sizes.
func TestRatio_MatchesWideDivision(t *testing.T) {
	pairs := [][2]uint32{
		{8000, 44100}, {44100, 8000}, {11025, 96000}, {192000, 22050},
		{7, 13}, {1000000, 3}, {math.MaxUint32, 44100},
	}

	for _, p := range pairs {
		want := Q16(uint64(p[0]) << FracBits / uint64(p[1]))
		assert.Equal(t, want, Ratio(p[0], p[1]), "Ratio(%d, %d)", p[0], p[1])
	}
}

// TestConversions verifies floor, ceiling, rounding, and fractional
// extraction across sign and boundary cases.
func TestConversions(t *testing.T) {
	tests := []struct {
		name  string
		value Q16
		floor int64
		ceil  int64
		round int64
	}{
		{"zero", 0, 0, 0, 0},
		{"exact_one", One, 1, 1, 1},
		{"one_and_a_quarter", One + One/4, 1, 2, 1},
		{"one_and_a_half", One + One/2, 1, 2, 2},
		{"just_below_two", 2*One - 1, 1, 2, 2},
		{"minus_quarter", -One / 4, -1, 0, 0},
		{"minus_one", -One, -1, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.floor, tt.value.Floor(), "floor")
			assert.Equal(t, tt.ceil, tt.value.Ceil(), "ceil")
			assert.Equal(t, tt.round, tt.value.Round(), "round")
		})
	}
}

// TestFrac verifies that the fractional part is always in [0, One).
func TestFrac(t *testing.T) {
	assert.Equal(t, Q16(0), One.Frac())
	assert.Equal(t, One/4, (3*One + One/4).Frac())
	assert.Equal(t, One-1, (One - 1).Frac())
}

// TestMul verifies the implicit rescale of fixed-point multiplication.
func TestMul(t *testing.T) {
	assert.Equal(t, One, One.Mul(One))
	assert.Equal(t, One/4, (One / 2).Mul(One/2))
	assert.Equal(t, FromInt(6), FromInt(2).Mul(FromInt(3)))
}

// TestFromFloat verifies rounding to the nearest fixed-point value.
func TestFromFloat(t *testing.T) {
	assert.Equal(t, One, FromFloat(1.0))
	assert.Equal(t, One/2, FromFloat(0.5))
	assert.Equal(t, Q16(-One-One/4), FromFloat(-1.25))
	assert.InDelta(t, 0.3, FromFloat(0.3).Float(), 1.0/float64(One))
}
