package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testFFTSize = 64
	testPeakBin = 4

	dbTolerance = 0.01
)

// TestSpectrum_LocatesSine verifies that a pure tone concentrates its
// energy in the expected bin.
func TestSpectrum_LocatesSine(t *testing.T) {
	signal := make([]float64, testFFTSize)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * testPeakBin * float64(i) / testFFTSize)
	}

	spectrum := Spectrum(signal)
	require.Len(t, spectrum, testFFTSize/2+1)

	peakBin := 0
	for i, m := range spectrum {
		if m > spectrum[peakBin] {
			peakBin = i
		}
	}
	assert.Equal(t, testPeakBin, peakBin)
}

// TestMagnitudeDB verifies decibel conversion and the silence floor.
func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0.0, MagnitudeDB(1, 1), dbTolerance)
	assert.InDelta(t, -20.0, MagnitudeDB(0.1, 1), dbTolerance)
	assert.InDelta(t, 6.02, MagnitudeDB(2, 1), dbTolerance)
	assert.Equal(t, silenceFloorDB, MagnitudeDB(0, 1))
	assert.Equal(t, silenceFloorDB, MagnitudeDB(1, 0))
}

// TestDCGainAndNormalize verifies that normalization brings the DC gain to
// unity and leaves degenerate kernels alone.
func TestDCGainAndNormalize(t *testing.T) {
	kernel := []float64{1, 2, 3, 2, 1}
	assert.InDelta(t, 9.0, DCGain(kernel), 1e-12)

	Normalize(kernel)
	assert.InDelta(t, 1.0, DCGain(kernel), 1e-12)

	zeroSum := []float64{1, -1}
	Normalize(zeroSum)
	assert.Equal(t, []float64{1, -1}, zeroSum)
}

// TestPeakSideLobeDB verifies stopband measurement against a constructed
// spectrum.
func TestPeakSideLobeDB(t *testing.T) {
	spectrum := []float64{1.0, 0.8, 0.5, 0.1, 0.01, 0.001}

	assert.InDelta(t, -20.0, PeakSideLobeDB(spectrum, 3), dbTolerance)
	assert.InDelta(t, -40.0, PeakSideLobeDB(spectrum, 4), dbTolerance)
	assert.Equal(t, silenceFloorDB, PeakSideLobeDB(spectrum, len(spectrum)))
	assert.Equal(t, silenceFloorDB, PeakSideLobeDB(spectrum, -1))
}

// TestSignalToNoiseRatioDB verifies the ratio for known error levels.
func TestSignalToNoiseRatioDB(t *testing.T) {
	reference := []float64{1, -1, 1, -1}

	assert.Equal(t, -silenceFloorDB, SignalToNoiseRatioDB(reference, reference))

	// A 10% amplitude error on every sample is -20 dB of noise.
	scaled := []float64{1.1, -1.1, 1.1, -1.1}
	assert.InDelta(t, 20.0, SignalToNoiseRatioDB(scaled, reference), dbTolerance)
}
