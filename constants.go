package resampler

// Kernel configuration. These trade audio quality against memory and CPU
// cost and must be fixed before any KernelTable is built.
const (
	// KernelRadius is the number of lobes of the windowed sinc function on
	// each side of its centre. A higher number results in better audio,
	// but is more expensive.
	KernelRadius = 3

	// KernelResolution is the number of table entries per lobe of the
	// precomputed Lanczos kernel. Higher numbers produce a more accurate
	// kernel at the cost of memory and cache. 1024 entries per lobe is
	// more than good enough.
	KernelResolution = 1024

	// MaxChannels is the maximum number of channels supported by a single
	// resampler instance.
	MaxChannels = 16
)

// kernelTableSize is the total number of gains in a KernelTable: one full
// period of the windowed sinc, KernelResolution entries per lobe.
const kernelTableSize = 2 * KernelRadius * KernelResolution

// streamBufferSize is the capacity, in samples, of the Streamer's internal
// buffer, including both padding deadzones.
const streamBufferSize = 0x1000

// Sample range constants for 16-bit PCM output clamping.
const (
	maxSample16 = 0x7FFF
	minSample16 = -0x7FFF
)

// normaliserFracBits is the number of fractional bits in the 17.15 sample
// normaliser. One bit fewer than the 16.16 positions, leaving an extra
// sign-safe bit so that normalising a full-scale accumulator cannot
// overflow.
const normaliserFracBits = 15
