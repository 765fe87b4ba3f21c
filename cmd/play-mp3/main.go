// Command play-mp3 decodes an MP3 file, resamples it to the output device
// rate, and plays it.
//
// Usage:
//
//	play-mp3 song.mp3
//	play-mp3 -rate 44100 song.mp3
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	mp3 "github.com/hajimehoshi/go-mp3"

	resampler "github.com/tphakala/go-pcm-resampler"
)

const (
	defaultDeviceRate = 48000

	// go-mp3 always decodes to 16-bit stereo.
	mp3Channels      = 2
	bytesPerSample   = 2
	bytesPerMP3Frame = mp3Channels * bytesPerSample

	playbackPollInterval = 100 * time.Millisecond
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", defaultDeviceRate, "Playback device sample rate in Hz")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file.mp3\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("no input file")
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return fmt.Errorf("failed to decode MP3: %w", err)
	}

	log.Printf("MP3 sample rate: %d Hz, playing at %d Hz", decoder.SampleRate(), *rate)

	source, err := newResampledSource(decoder, decoder.SampleRate(), *rate)
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: mp3Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create audio context: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(source)
	player.Play()

	for player.IsPlaying() {
		time.Sleep(playbackPollInterval)
	}
	return player.Close()
}

// resampledSource adapts a Streamer to io.Reader, producing interleaved
// 16-bit little-endian PCM for the playback device.
type resampledSource struct {
	table  *resampler.KernelTable
	stream *resampler.Streamer
	pull   resampler.PullFunc

	inputDone bool
	drained   bool
}

func newResampledSource(decoder io.Reader, inputRate, outputRate int) (*resampledSource, error) {
	stream, err := resampler.NewStreamer(mp3Channels, inputRate, outputRate, inputRate)
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	return &resampledSource{
		table:  resampler.Precompute(),
		stream: stream,
		pull:   pullDecodedFrames(decoder),
	}, nil
}

// pullDecodedFrames adapts the decoder's byte stream to whole int16 frames.
func pullDecodedFrames(decoder io.Reader) resampler.PullFunc {
	var scratch []byte

	return func(buf []int16) int {
		want := len(buf) / mp3Channels * mp3Channels * bytesPerSample
		if cap(scratch) < want {
			scratch = make([]byte, want)
		}

		n, err := io.ReadFull(decoder, scratch[:want])
		if err != nil && err != io.ErrUnexpectedEOF {
			return 0
		}

		frames := n / bytesPerMP3Frame
		for i := 0; i < frames*mp3Channels; i++ {
			buf[i] = int16(binary.LittleEndian.Uint16(scratch[i*bytesPerSample:]))
		}
		return frames
	}
}

func (s *resampledSource) Read(p []byte) (int, error) {
	if s.drained {
		return 0, io.EOF
	}

	frameBytes := mp3Channels * bytesPerSample
	if len(p) < frameBytes {
		return 0, nil
	}

	written := 0
	push := func(frame []int32) bool {
		for _, sample := range frame {
			binary.LittleEndian.PutUint16(p[written:], uint16(resampler.ClampSample(sample)))
			written += bytesPerSample
		}
		return len(p)-written >= frameBytes
	}

	for written == 0 {
		if !s.inputDone {
			if s.stream.Resample(s.table, s.pull, push) == resampler.InputExhausted {
				s.inputDone = true
			}
			continue
		}

		if s.stream.ResampleEnd(s.table, push) {
			s.drained = true
			if written == 0 {
				return 0, io.EOF
			}
		}
	}
	return written, nil
}
