// Package fixed provides the 16.16 fixed-point arithmetic used throughout
// the resampler.
//
// Positions, increments, and kernel gains are all 16.16 values; the sample
// normaliser is rebased to 17.15 to leave one extra sign-safe bit. Keeping
// these values in a distinct type prevents accidental mixing of scales.
package fixed

import "math"

// FracBits is the number of fractional bits in a Q16 value.
const FracBits = 16

// Q16 is a signed 16.16 fixed-point number.
//
// The backing integer is 64 bits wide so that products and rate ratios
// never overflow in intermediate form; values that reach sample
// accumulators are still required to fit a signed 32-bit range.
type Q16 int64

// One is the Q16 representation of 1.0.
const One Q16 = 1 << FracBits

// FromInt converts an integer to Q16.
func FromInt(v int64) Q16 {
	return Q16(v) << FracBits
}

// FromFloat converts a float to the nearest Q16 value.
func FromFloat(v float64) Q16 {
	return Q16(math.Round(v * float64(One)))
}

// Float converts q to a float64. Intended for analysis and tests, not for
// the resampling hot path.
func (q Q16) Float() float64 {
	return float64(q) / float64(One)
}

// Mul multiplies two Q16 values with an implicit rescale.
func (q Q16) Mul(o Q16) Q16 {
	return q * o >> FracBits
}

// Floor returns the largest integer less than or equal to q.
func (q Q16) Floor() int64 {
	return int64(q >> FracBits)
}

// Ceil returns the smallest integer greater than or equal to q.
func (q Q16) Ceil() int64 {
	return int64((q + One - 1) >> FracBits)
}

// Round returns the nearest integer to q, rounding half away from zero
// for non-negative values.
func (q Q16) Round() int64 {
	return int64((q + One/2) >> FracBits)
}

// Frac returns the fractional part of q, in [0, One).
func (q Q16) Frac() Q16 {
	return q & (One - 1)
}

// ratioBase is the limb size of the long division in Ratio. It matches the
// fixed-point fractional size so that splitting the dividend into limbs
// also multiplies it by 2^16.
const ratioBase = 1 << FracBits

// Ratio computes a/b as an exact Q16 value using base-2^16 long division.
//
// A naive (a << 16) / b overflows 32-bit arithmetic for large rates, so the
// dividend is processed as three limbs instead. Either argument being zero
// yields zero: a zero sample rate produces a zero increment, which the
// engine treats as an indefinite stall rather than a division by zero.
func Ratio(a, b uint32) Q16 {
	if a == 0 || b == 0 {
		return 0
	}

	divisor := uint64(b)

	// Splitting the dividend into limbs of ratioBase size sneakily also
	// multiplies it by ratioBase.
	upper := uint64(a) / ratioBase
	middle := uint64(a) % ratioBase
	lower := uint64(0)

	// Long division, feeding each remainder into the next limb down.
	middle |= upper % divisor * ratioBase
	upper /= divisor

	lower |= middle % divisor * ratioBase
	middle /= divisor

	lower /= divisor

	return Q16(upper*ratioBase*ratioBase + middle*ratioBase + lower)
}
