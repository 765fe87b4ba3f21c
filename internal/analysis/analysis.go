// Package analysis provides frequency-domain measurements of resampling
// kernels and resampled audio, for tests and diagnostic tooling.
package analysis

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// hermitianDivisor is used to calculate unique frequency bins in a real
// FFT. Due to Hermitian symmetry, a real FFT of size N has N/2 + 1 unique
// complex coefficients.
const hermitianDivisor = 2

// silenceFloorDB is the magnitude reported for an empty bin, standing in
// for negative infinity.
const silenceFloorDB = -300.0

// Spectrum computes the magnitude spectrum of a real sequence. The result
// has len(signal)/2 + 1 bins covering DC through Nyquist.
func Spectrum(signal []float64) []float64 {
	fft := fourier.NewFFT(len(signal))
	coefficients := fft.Coefficients(nil, signal)

	magnitudes := make([]float64, len(signal)/hermitianDivisor+1)
	for i, c := range coefficients {
		magnitudes[i] = math.Hypot(real(c), imag(c))
	}
	return magnitudes
}

// MagnitudeDB converts a linear magnitude to decibels relative to the given
// reference, flooring empty bins instead of returning -Inf.
func MagnitudeDB(magnitude, reference float64) float64 {
	if magnitude <= 0 || reference <= 0 {
		return silenceFloorDB
	}
	return 20 * math.Log10(magnitude/reference)
}

// DCGain returns the sum of the kernel's coefficients: its response to a
// constant signal.
func DCGain(kernel []float64) float64 {
	return f64.Sum(kernel)
}

// Normalize scales the kernel in place so its DC gain is 1. Kernels with
// zero DC gain are left untouched.
func Normalize(kernel []float64) {
	sum := f64.Sum(kernel)
	if sum == 0 {
		return
	}
	f64.Scale(kernel, kernel, 1/sum)
}

// PeakSideLobeDB measures the worst stopband leakage of a kernel's
// frequency response: the highest magnitude, in dB relative to the DC bin,
// of any bin at or above the given cutoff bin.
func PeakSideLobeDB(spectrum []float64, cutoffBin int) float64 {
	if cutoffBin < 0 || cutoffBin >= len(spectrum) {
		return silenceFloorDB
	}

	peak := 0.0
	for _, m := range spectrum[cutoffBin:] {
		if m > peak {
			peak = m
		}
	}
	return MagnitudeDB(peak, spectrum[0])
}

// SignalToNoiseRatioDB compares a signal against a reference of the same
// length and returns the ratio of reference energy to error energy in dB.
func SignalToNoiseRatioDB(signal, reference []float64) float64 {
	var signalEnergy, noiseEnergy float64
	for i := range reference {
		diff := signal[i] - reference[i]
		signalEnergy += reference[i] * reference[i]
		noiseEnergy += diff * diff
	}

	if noiseEnergy == 0 {
		return -silenceFloorDB
	}
	if signalEnergy == 0 {
		return silenceFloorDB
	}
	return 10 * math.Log10(signalEnergy/noiseEnergy)
}
