package resampler

import (
	"fmt"

	"github.com/tphakala/go-pcm-resampler/internal/fixed"
)

// Resampler is the low-level resampling engine: a convolution state machine
// that consumes pre-padded 16-bit PCM frames and produces output frames at
// an arbitrary rate ratio.
//
// The low-level API has less overhead than Streamer but requires the caller
// to pad the input buffer with PaddingFrames frames of context at both ends.
// Use Streamer when input arrives in chunks and manual padding is
// inconvenient.
//
// A Resampler must not be shared between concurrent calls; the only shared
// resource is the KernelTable, which is read-only.
type Resampler struct {
	channels int

	// Fractional read cursor: an integer frame index plus a 16.16
	// fractional remainder, always in [0, 1).
	positionInteger    int
	positionFractional fixed.Q16

	// Per-output-frame advance: inputRate/outputRate in 16.16.
	increment fixed.Q16

	// Kernel geometry under the current low-pass stretch. The delta is
	// the 16.16 distance from the stretched radius up to its integer
	// ceiling, used to round convolution bounds correctly.
	stretchedKernelRadius        fixed.Q16
	integerStretchedKernelRadius int
	stretchedKernelRadiusDelta   fixed.Q16

	// Table entries to advance per input sample. Less than
	// KernelResolution when the kernel is stretched.
	kernelStepSize int

	// 17.15 gain compensating for the extra taps of a stretched kernel.
	sampleNormaliser int64
}

// NewResampler creates a low-level resampler converting from inputRate to
// outputRate with a low-pass filter at lowPassRate.
//
// The rates only need to express ratios; 1 and 2 work as well as 22050 and
// 44100. The low-pass rate is clamped so the kernel is only ever stretched,
// never squashed below the Nyquist-safe baseline; pass inputRate to request
// no filtering beyond what the rate ratio requires. A rate of zero freezes
// the engine instead of failing: it neither consumes input nor advances.
func NewResampler(channels, inputRate, outputRate, lowPassRate int) (*Resampler, error) {
	if channels < 1 || channels > MaxChannels {
		return nil, fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidChannels, channels, MaxChannels)
	}

	r := &Resampler{channels: channels}
	r.Adjust(inputRate, outputRate, lowPassRate)
	return r, nil
}

// Channels returns the channel count fixed at creation.
func (r *Resampler) Channels() int {
	return r.channels
}

// PaddingFrames returns the number of context frames the caller must supply
// before and after the frames counted by a Resample call. The value changes
// when Adjust widens or narrows the low-pass filter.
func (r *Resampler) PaddingFrames() int {
	return r.integerStretchedKernelRadius
}

// Adjust reconfigures the resampler for new rates. It may be called between
// Resample calls at any time, but not concurrently with one.
func (r *Resampler) Adjust(inputRate, outputRate, lowPassRate int) {
	in := clampRate(inputRate)
	out := clampRate(outputRate)
	lp := clampRate(lowPassRate)

	// The kernel is stretched to apply a low-pass filter: both when the
	// caller asks for one and when downsampling demands one to avoid
	// aliasing. It is only ever stretched, never squashed.
	actualLowPassRate := min(in, out, lp)
	kernelScale := fixed.Ratio(in, actualLowPassRate)
	inverseKernelScale := fixed.Ratio(actualLowPassRate, in)

	r.increment = fixed.Ratio(in, out)
	r.stretchedKernelRadius = KernelRadius * kernelScale
	r.integerStretchedKernelRadius = int(r.stretchedKernelRadius.Ceil())
	r.stretchedKernelRadiusDelta = fixed.FromInt(int64(r.integerStretchedKernelRadius)) - r.stretchedKernelRadius
	r.kernelStepSize = int(int64(KernelResolution) * int64(inverseKernelScale) >> fixed.FracBits)

	// The wider the kernel, the more taps contribute, the louder the
	// output. The normaliser is the inverse scale rebased from 16.16 to
	// 17.15 so that normalising cannot overflow where a 16.16 multiply
	// could.
	r.sampleNormaliser = int64(inverseKernelScale >> (fixed.FracBits - normaliserFracBits))
}

// Resample converts input frames to output frames, handing each completed
// frame to push.
//
// The input slice must hold PaddingFrames frames of context before and
// after the frames counted by the frames parameter: real neighbouring
// audio when resuming mid-stream, zeroes otherwise. Only the counted
// frames are consumed; the padding is read but never owned.
//
// Resample returns the number of counted frames left unconsumed together
// with the reason it stopped. On InputExhausted all frames were consumed
// and any cursor overshoot carries into the next call. On OutputExhausted
// the push callback declined further frames; call again with the remaining
// input to resume.
func (r *Resampler) Resample(table *KernelTable, input []int16, frames int, push PushFunc) (int, Result) {
	channels := r.channels

	var accumulators [MaxChannels]int64
	var frame [MaxChannels]int32
	out := frame[:channels]

	for {
		// Reached the end of the input buffer?
		if r.positionInteger >= frames {
			r.positionInteger -= frames
			return 0, InputExhausted
		}

		// Bounds of the kernel convolution, in samples. The range covers
		// every input frame whose kernel lobe overlaps the current
		// fractional position.
		minRelative := int((r.positionFractional + r.stretchedKernelRadiusDelta).Ceil())
		first := (r.positionInteger + minRelative) * channels
		last := (r.positionInteger + r.integerStretchedKernelRadius +
			int((r.positionFractional + r.stretchedKernelRadius).Floor())) * channels

		// Where the walk starts in the kernel table: the step size scaled
		// by the distance from the fractional position to the first tap.
		kernelIndex := int(int64(r.kernelStepSize) *
			int64(fixed.FromInt(int64(minRelative))-r.positionFractional) >> fixed.FracBits)

		for ch := 0; ch < channels; ch++ {
			accumulators[ch] = 0
		}

		// The distance between the frame being output and the frames
		// being read is the parameter to the Lanczos kernel. The table
		// index advances by the step size, not 1:1 with the input, since
		// a stretched kernel must itself be resampled.
		for sampleIndex := first; sampleIndex < last; sampleIndex += channels {
			gain := int64(table.gains[kernelIndex])
			kernelIndex += r.kernelStepSize

			for ch := 0; ch < channels; ch++ {
				accumulators[ch] += int64(input[sampleIndex+ch]) * gain >> fixed.FracBits
			}
		}

		// Normalise with the 17.15 multiplier; a 16.16 one could overflow
		// here and pop.
		for ch := 0; ch < channels; ch++ {
			frame[ch] = int32(accumulators[ch] * r.sampleNormaliser >> normaliserFracBits)
		}

		// Advance the read cursor, carrying fractional overflow into the
		// integer part.
		r.positionFractional += r.increment
		r.positionInteger += int(r.positionFractional.Floor())
		r.positionFractional = r.positionFractional.Frac()

		if !push(out) {
			// No more room in the output: commit the frames consumed so
			// far and report how many remain.
			remaining := frames - r.positionInteger
			r.positionInteger = 0
			return remaining, OutputExhausted
		}
	}
}

// clampRate narrows a rate to the engine's unsigned range. Negative rates
// behave like zero: the engine freezes rather than crashing.
func clampRate(rate int) uint32 {
	if rate < 0 {
		return 0
	}
	return uint32(rate)
}
