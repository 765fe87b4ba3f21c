package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bytesPerSample  = 2

	// Frames decoded per pull for WAV input.
	decodeChunkFrames = 8192

	// WAV format constants
	wavHeaderSize      = 44 // Total WAV header size in bytes
	wavRiffHeaderSize  = 36 // RIFF header size (file size - 8 = riffHeaderSize + dataSize)
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFileSizeOffset  = 4  // Byte offset for file size field in header
	wavDataSizeOffset  = 40 // Byte offset for data size field in header
	uint32Size         = 4  // Size of uint32 in bytes

	// I/O buffer sizes
	wavWriterBufferSize = 256 * 1024 // 256KB write buffer
)

// inputStream is a decoded 16-bit PCM source: WAV or FLAC behind one pull
// contract.
type inputStream struct {
	rate     int
	channels int
	pull     func(buf []int16) int
	close    func() error
}

// Close closes the underlying file.
func (s *inputStream) Close() error {
	return s.close()
}

// openInput opens a WAV or FLAC file by extension.
func openInput(path string) (*inputStream, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		return openFLACInput(path)
	default:
		return openWAVInput(path)
	}
}

// openWAVInput opens and validates a WAV file.
func openWAVInput(path string) (*inputStream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		_ = file.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}
	if int(decoder.BitDepth) != bitsPerSample16 {
		_ = file.Close()
		return nil, fmt.Errorf("unsupported bit depth %d (only 16-bit WAV input is supported)", decoder.BitDepth)
	}

	format := decoder.Format()
	channels := format.NumChannels
	chunk := &audio.IntBuffer{
		Data:   make([]int, decodeChunkFrames*channels),
		Format: format,
	}

	full := chunk.Data
	pull := func(buf []int16) int {
		want := len(buf) / channels * channels
		if want > len(full) {
			want = len(full)
		}
		chunk.Data = full[:want]

		n, err := decoder.PCMBuffer(chunk)
		if err != nil || n == 0 {
			return 0
		}
		frames := n / channels
		for i := 0; i < frames*channels; i++ {
			buf[i] = int16(chunk.Data[i])
		}
		return frames
	}

	return &inputStream{
		rate:     format.SampleRate,
		channels: channels,
		pull:     pull,
		close:    file.Close,
	}, nil
}

// openFLACInput opens a FLAC file and adapts its block-at-a-time decoding
// to the pull contract.
func openFLACInput(path string) (*inputStream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	stream, err := flac.New(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	shift := int(info.BitsPerSample) - bitsPerSample16

	// FLAC hands back whole blocks; pending holds samples the previous
	// pull could not fit.
	var pending []int16

	pull := func(buf []int16) int {
		for len(pending) == 0 {
			frame, err := stream.ParseNext()
			if err != nil {
				return 0
			}
			for i := 0; i < int(frame.BlockSize); i++ {
				for _, subframe := range frame.Subframes {
					sample := subframe.Samples[i]
					if shift > 0 {
						sample >>= shift
					} else if shift < 0 {
						sample <<= -shift
					}
					pending = append(pending, int16(sample))
				}
			}
		}

		n := len(buf) / channels * channels
		if n > len(pending) {
			n = len(pending)
		}
		copy(buf, pending[:n])
		pending = pending[n:]
		return n / channels
	}

	return &inputStream{
		rate:     int(info.SampleRate),
		channels: channels,
		pull:     pull,
		close:    file.Close,
	}, nil
}

// fastWAVWriter writes 16-bit PCM directly without per-sample allocations.
type fastWAVWriter struct {
	w          *bufio.Writer
	f          *os.File
	sampleRate int
	channels   int
	dataSize   uint32
	byteBuf    []byte
}

// newFastWAVWriter writes a placeholder header that Close patches with the
// final sizes.
func newFastWAVWriter(f *os.File, sampleRate, channels int) (*fastWAVWriter, error) {
	w := &fastWAVWriter{
		w:          bufio.NewWriterSize(f, wavWriterBufferSize),
		f:          f,
		sampleRate: sampleRate,
		channels:   channels,
	}

	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *fastWAVWriter) writeHeader() error {
	byteRate := w.sampleRate * w.channels * bytesPerSample
	blockAlign := w.channels * bytesPerSample

	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // Placeholder for file size - 8
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], 1) // AudioFormat (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample16)

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // Placeholder for data size

	_, err := w.w.Write(header)
	return err
}

// WriteSamples appends 16-bit samples to the data chunk.
func (w *fastWAVWriter) WriteSamples(samples []int16) error {
	needed := len(samples) * bytesPerSample
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}

	buf := w.byteBuf[:needed]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample:], uint16(s))
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Close flushes buffered data and patches the header with the final sizes.
func (w *fastWAVWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	sizeBytes := make([]byte, uint32Size)

	if _, err := w.f.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, wavRiffHeaderSize+w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := w.f.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	return nil
}
