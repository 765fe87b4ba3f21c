package resampler

import "errors"

// Result reports why a resampling call returned.
type Result int

const (
	// InputExhausted means the call consumed all available input frames.
	// Feed more input (or drain with ResampleEnd) to continue.
	InputExhausted Result = iota

	// OutputExhausted means the push callback reported that it wants no
	// more frames. Unconsumed input remains buffered.
	OutputExhausted
)

// String returns a human-readable name for the result.
func (r Result) String() string {
	switch r {
	case InputExhausted:
		return "input exhausted"
	case OutputExhausted:
		return "output exhausted"
	default:
		return "unknown"
	}
}

// PushFunc receives one completed output frame: one 32-bit sample per
// channel, already normalised. The slice is reused between calls and must
// not be retained. Return false to stop resampling; the engine keeps its
// state consistent so a later call resumes where this one left off.
//
// Use ClampSample to narrow samples to the 16-bit range.
type PushFunc func(frame []int32) bool

// PullFunc fills buf with whole frames of 16-bit PCM input and returns the
// number of frames written, which may be less than len(buf) divided by the
// channel count. Returning 0 signals end of stream.
type PullFunc func(buf []int16) int

// Errors returned by the constructors and by Streamer.Adjust.
var (
	// ErrInvalidChannels indicates a channel count outside 1..MaxChannels.
	ErrInvalidChannels = errors.New("invalid channel count")

	// ErrRadiusExceeded indicates a rate adjustment whose stretched kernel
	// radius exceeds the maximum fixed when the Streamer was created.
	ErrRadiusExceeded = errors.New("stretched kernel radius exceeds maximum set at creation")

	// ErrRadiusTooLarge indicates rates whose stretched kernel radius is too
	// wide for the Streamer's internal buffer.
	ErrRadiusTooLarge = errors.New("stretched kernel radius too large for stream buffer")
)

// ClampSample clamps a normalised output sample to the signed 16-bit PCM
// range.
func ClampSample(sample int32) int16 {
	if sample > maxSample16 {
		return maxSample16
	}
	if sample < minSample16 {
		return minSample16
	}
	return int16(sample)
}
