// Package resampler provides fixed-point windowed-sinc audio resampling in
// pure Go.
//
// The converter interpolates 16-bit PCM frames with a precomputed
// Lanczos-windowed sinc kernel, using 16.16 fixed-point arithmetic
// throughout the hot path. Downsampling automatically stretches the kernel
// into a low-pass filter, and the same mechanism applies a caller-requested
// low-pass cutoff when one is narrower than the rates demand.
//
// # Features
//
//   - Band-limited sinc interpolation with minimal aliasing
//   - Integer-only processing: no floating point after table precomputation
//   - Arbitrary rational rate ratios, adjustable mid-stream
//   - Built-in low-pass filtering via kernel stretching
//   - Up to 16 interleaved channels per instance
//   - Streaming API that hides all padding bookkeeping
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// Build the kernel table once, then feed frames through a Streamer:
//
//	table := resampler.Precompute()
//
//	stream, err := resampler.NewStreamer(2, 44100, 48000, 44100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stream.Resample(table, pullFrames, func(frame []int32) bool {
//	    left := resampler.ClampSample(frame[0])
//	    right := resampler.ClampSample(frame[1])
//	    return writeOutput(left, right)
//	})
//
//	// Drain the convolution tail once the input ends.
//	for !stream.ResampleEnd(table, pushFrame) {
//	}
//
// The pull callback supplies interleaved input frames and returns 0 at end
// of stream; the push callback receives one output frame at a time and
// returns false to pause output. See PullFunc and PushFunc for the exact
// contracts.
//
// # Low-Level API
//
// Resampler is the engine underneath Streamer. It works directly on a
// caller-supplied buffer and is preferable when the whole input is already
// in memory: pad the buffer with PaddingFrames frames of silence (or real
// neighbouring audio) at each end and call Resample once.
//
//	engine, err := resampler.NewResampler(1, 44100, 8000, 44100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	padding := engine.PaddingFrames()
//	buffer := make([]int16, padding+len(input)+padding)
//	copy(buffer[padding:], input)
//
//	engine.Resample(table, buffer, len(input), pushFrame)
//
// # Kernel Configuration
//
// KernelRadius, KernelResolution, and MaxChannels are compile-time
// constants trading quality against memory and CPU. The defaults (3 lobes,
// 1024 entries per lobe, 16 channels) suit general music playback; see the
// constants' documentation before changing them.
//
// # Concurrency
//
// A KernelTable is immutable after Precompute and may be shared freely.
// Resampler and Streamer instances are single-owner: calls on the same
// instance must not overlap, but independent instances may run on separate
// goroutines against one shared table.
package resampler
