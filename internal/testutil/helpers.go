// Package testutil provides reusable helpers for resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	// FixedPointTolerance is the bounded rounding error, in 16.16 units,
	// accepted when comparing kernel gains that should be equal.
	FixedPointTolerance = 1

	// SampleTolerance is the per-sample error, in least-significant bits,
	// accepted for identity-rate resampling.
	SampleTolerance = 1

	DBTolerance = 0.01
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// AssertSymmetricInt32 verifies that a slice is symmetric about its centre
// (s[i] == s[n-i] for interior indices), as kernel tables sampled from an
// even function must be.
func AssertSymmetricInt32(t *testing.T, s []int32, tolerance int32) bool {
	t.Helper()
	n := len(s)
	for i := 1; i < n/halfDivisor; i++ {
		j := n - i
		diff := s[i] - s[j]
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			return assert.Fail(t, "slice not symmetric",
				"s[%d]=%d != s[%d]=%d (tolerance %d)", i, s[i], j, s[j], tolerance)
		}
	}
	return true
}

// AssertWithinLSB verifies that two sample sequences match within the given
// number of least-significant bits per sample.
func AssertWithinLSB(t *testing.T, got, want []int16, lsb int) bool {
	t.Helper()
	if !assert.Len(t, got, len(want), "sample count mismatch") {
		return false
	}
	for i := range want {
		diff := int(got[i]) - int(want[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > lsb {
			return assert.Fail(t, "sample out of tolerance",
				"got[%d]=%d, want %d (tolerance %d LSB)", i, got[i], want[i], lsb)
		}
	}
	return true
}

// AssertAllInRangeInt64 verifies that all elements are within [minVal, maxVal].
func AssertAllInRangeInt64(t *testing.T, s []int64, minVal, maxVal int64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%d is outside range [%d, %d]", i, v, minVal, maxVal)
		}
	}
	return true
}

// GenerateSineInt16 produces a mono sine wave of the given frequency and
// amplitude, sampled at sampleRate for the given number of frames.
func GenerateSineInt16(frames int, frequency, amplitude, sampleRate float64) []int16 {
	samples := make([]int16, frames)
	for i := range samples {
		v := amplitude * math.Sin(2*math.Pi*frequency*float64(i)/sampleRate)
		samples[i] = int16(math.Round(v))
	}
	return samples
}

// GenerateSweepInt16 produces a mono linear chirp from startFreq to endFreq
// across the given number of frames.
func GenerateSweepInt16(frames int, startFreq, endFreq, amplitude, sampleRate float64) []int16 {
	samples := make([]int16, frames)
	for i := range samples {
		progress := float64(i) / float64(frames)
		frequency := startFreq + (endFreq-startFreq)*progress
		phase := 2 * math.Pi * frequency * float64(i) / sampleRate
		samples[i] = int16(math.Round(amplitude * math.Sin(phase)))
	}
	return samples
}

// Interleave merges per-channel sample slices into one interleaved stream.
// All channels must have equal length.
func Interleave(channels ...[]int16) []int16 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]int16, 0, frames*len(channels))
	for i := 0; i < frames; i++ {
		for _, ch := range channels {
			out = append(out, ch[i])
		}
	}
	return out
}

// ToFloat64 widens 16-bit samples for frequency-domain analysis.
func ToFloat64(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}
