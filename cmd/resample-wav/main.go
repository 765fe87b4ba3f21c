// Command resample-wav resamples WAV and FLAC audio files to a target
// sample rate, writing 16-bit WAV output.
//
// Usage:
//
//	resample-wav -rate 48000 input.wav output.wav
//	resample-wav -rate 8000 -lowpass 3500 speech.flac speech_8k.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	resampler "github.com/tphakala/go-pcm-resampler"
)

const (
	// CLI defaults
	defaultRate     = 48000
	minRequiredArgs = 2

	// Frames pushed to the writer per flush.
	outputChunkFrames = 4096
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", defaultRate, "Target sample rate in Hz (e.g., 8000, 44100, 48000)")
	lowPass := flag.Int("lowpass", 0, "Low-pass filter rate in Hz (0 = no extra filtering)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.{wav,flac} output.wav\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	inputPath := args[0]
	outputPath := args[1]

	input, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer func() { _ = input.Close() }()

	lowPassRate := *lowPass
	if lowPassRate == 0 {
		lowPassRate = input.rate
	}

	if *verbose {
		log.Printf("Input: %s (%d Hz, %d channels)", inputPath, input.rate, input.channels)
		log.Printf("Output: %s (%d Hz)", outputPath, *rate)
		log.Printf("Low-pass: %d Hz", lowPassRate)
	}

	start := time.Now()
	stats, err := resampleFile(input, outputPath, *rate, lowPassRate)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d channels)\n", input.rate, *rate, input.channels)
	fmt.Printf("  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputFrames)/float64(input.rate)/elapsed.Seconds())

	return nil
}

type resampleStats struct {
	inputFrames  int64
	outputFrames int64
}

// resampleFile pumps every input frame through a Streamer into a WAV file.
func resampleFile(input *inputStream, outputPath string, targetRate, lowPassRate int) (*resampleStats, error) {
	table := resampler.Precompute()

	stream, err := resampler.NewStreamer(input.channels, input.rate, targetRate, lowPassRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	writer, err := newFastWAVWriter(outputFile, targetRate, input.channels)
	if err != nil {
		_ = outputFile.Close()
		return nil, fmt.Errorf("failed to create WAV writer: %w", err)
	}

	stats := &resampleStats{}

	pull := func(buf []int16) int {
		frames := input.pull(buf)
		stats.inputFrames += int64(frames)
		return frames
	}

	pending := make([]int16, 0, outputChunkFrames*input.channels)
	var pushErr error
	push := func(frame []int32) bool {
		for _, sample := range frame {
			pending = append(pending, resampler.ClampSample(sample))
		}
		stats.outputFrames++
		if len(pending) == cap(pending) {
			pushErr = writer.WriteSamples(pending)
			pending = pending[:0]
		}
		return pushErr == nil
	}

	stream.Resample(table, pull, push)
	for pushErr == nil && !stream.ResampleEnd(table, push) {
	}
	if pushErr != nil {
		_ = outputFile.Close()
		return nil, fmt.Errorf("failed to write output: %w", pushErr)
	}

	if len(pending) > 0 {
		if err := writer.WriteSamples(pending); err != nil {
			_ = outputFile.Close()
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		_ = outputFile.Close()
		return nil, fmt.Errorf("failed to finalise WAV header: %w", err)
	}
	return stats, outputFile.Close()
}
