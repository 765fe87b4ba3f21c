// Command analyze-kernel prints a quality report for the precomputed
// Lanczos kernel table: DC gain, symmetry, zero crossings, and the
// measured stopband attenuation of its frequency response.
package main

import (
	"fmt"

	resampler "github.com/tphakala/go-pcm-resampler"
	"github.com/tphakala/go-pcm-resampler/internal/analysis"
)

const (
	// Zero-padded FFT length for the frequency response measurement.
	analysisFFTSize = 8192

	// The passband edge of the oversampled kernel sits at
	// fftSize/(2*KernelResolution); measure the stopband from a few times
	// that to stay clear of the transition band.
	stopbandEdgeFactor = 3

	// Display limits
	maxCrossingsToShow = 8
)

func main() {
	table := resampler.Precompute()
	gains := table.Gains()
	center := len(gains) / 2

	fmt.Println("=== Kernel Table ===")
	fmt.Printf("  Radius:     %d lobes\n", resampler.KernelRadius)
	fmt.Printf("  Resolution: %d entries/lobe\n", resampler.KernelResolution)
	fmt.Printf("  Table size: %d entries (%d bytes)\n", len(gains), len(gains)*4)
	fmt.Printf("  Centre:     gains[%d] = %d (unity = 65536)\n", center, gains[center])

	var dc int64
	maxAsymmetry := int32(0)
	for i, gain := range gains {
		dc += int64(gain)
		if mirror := len(gains) - i; i > 0 && mirror < len(gains) {
			if diff := abs32(gain - gains[mirror]); diff > maxAsymmetry {
				maxAsymmetry = diff
			}
		}
	}
	// The ideal DC sum is one unity gain per table entry spacing, so
	// KernelResolution in 16.16 terms.
	fmt.Printf("  DC sum:     %d (%.6f of ideal)\n", dc, float64(dc)/65536/resampler.KernelResolution)
	fmt.Printf("  Symmetry:   max |gains[i] - gains[n-i]| = %d\n", maxAsymmetry)

	fmt.Println("\n=== Zero Crossings ===")
	shown := 0
	for offset := -resampler.KernelRadius; offset <= resampler.KernelRadius; offset++ {
		index := center + offset*resampler.KernelResolution
		if offset == 0 || index >= len(gains) {
			continue
		}
		fmt.Printf("  x = %+d: gains[%d] = %d\n", offset, index, gains[index])
		if shown++; shown >= maxCrossingsToShow {
			break
		}
	}

	fmt.Println("\n=== Frequency Response ===")
	kernel := make([]float64, analysisFFTSize)
	for i, gain := range gains {
		kernel[i] = float64(gain)
	}
	analysis.Normalize(kernel[:len(gains)])

	spectrum := analysis.Spectrum(kernel)
	cutoffBin := stopbandEdgeFactor * analysisFFTSize / (2 * resampler.KernelResolution)
	sideLobe := analysis.PeakSideLobeDB(spectrum, cutoffBin)

	fmt.Printf("  FFT size:           %d (zero padded)\n", analysisFFTSize)
	fmt.Printf("  Passband peak:      %.2f dB\n", analysis.MagnitudeDB(spectrum[0], spectrum[0]))
	fmt.Printf("  Stopband from bin:  %d\n", cutoffBin)
	fmt.Printf("  Peak side lobe:     %.2f dB\n", sideLobe)

	fmt.Println("\n=== Padding Per Rate Pair ===")
	ratePairs := []struct {
		in, out int
		name    string
	}{
		{44100, 44100, "identity"},
		{44100, 48000, "CD -> DAT"},
		{48000, 44100, "DAT -> CD"},
		{44100, 32000, "CD -> broadcast"},
		{44100, 8000, "CD -> phone"},
		{8000, 44100, "phone -> CD"},
	}

	for _, pair := range ratePairs {
		engine, err := resampler.NewResampler(1, pair.in, pair.out, pair.in)
		if err != nil {
			fmt.Printf("  %-16s error: %v\n", pair.name, err)
			continue
		}
		fmt.Printf("  %-16s %6d -> %6d Hz: %2d padding frames per side\n",
			pair.name, pair.in, pair.out, engine.PaddingFrames())
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
