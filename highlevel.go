package resampler

import "fmt"

// Streamer wraps the low-level engine with an internal buffer so that audio
// can be fed in arbitrarily sized chunks through a pull callback, with no
// manual padding bookkeeping on the caller's part.
//
// The buffer is an arena with deadzones at both ends: a lookback region
// before the unconsumed live frames and a lookahead region after them, each
// wide enough for the kernel radius. On every refill the tail of the
// previous window is shifted down to the head of the arena, so the engine
// always sees valid context on both sides of the live region.
//
// The lookback deadzone starts out as silence, so the stream's opening
// frames are resampled against a quiet history and every pulled frame is
// output. PrimeHistory opts into consuming the opening frames as history
// instead, for resuming mid-recording. Symmetrically, ResampleEnd feeds zero
// frames as trailing padding so the kernel overhang of the last real frames
// can drain.
type Streamer struct {
	engine   *Resampler
	channels int

	buf [streamBufferSize]int16

	// Sample offsets of the unconsumed live region. The live region never
	// begins before maxRadius frames into the arena, so a full lookback
	// deadzone is always available even after a rate adjustment.
	start int
	end   int

	// Valid lookahead samples beyond end. Exactly one radius once the
	// stream is primed; less only while priming or after the stream ends.
	lookahead int

	// Widest integer stretched kernel radius this Streamer can serve,
	// fixed at creation. Adjust must never exceed it.
	maxRadius int

	leadingPaddingNeeded     int
	trailingPaddingRemaining int
}

// NewStreamer creates a buffered resampler converting from inputRate to
// outputRate with a low-pass filter at lowPassRate. The rates given here
// also fix the widest kernel radius the Streamer will ever accommodate;
// later Adjust calls may narrow the radius but not exceed it.
func NewStreamer(channels, inputRate, outputRate, lowPassRate int) (*Streamer, error) {
	engine, err := NewResampler(channels, inputRate, outputRate, lowPassRate)
	if err != nil {
		return nil, err
	}

	maxRadius := engine.PaddingFrames()

	// The arena must fit both deadzones and at least one live frame.
	if (2*maxRadius+1)*channels > streamBufferSize {
		return nil, fmt.Errorf("%w: radius %d frames at %d channels", ErrRadiusTooLarge, maxRadius, channels)
	}

	s := &Streamer{
		engine:                   engine,
		channels:                 channels,
		maxRadius:                maxRadius,
		trailingPaddingRemaining: maxRadius,
	}
	s.start = maxRadius * channels
	s.end = s.start

	// The arena's zero value is the leading padding: silence precedes the
	// start of the stream unless the caller primes real history.
	return s, nil
}

// PrimeHistory directs the next Resample call to consume the stream's first
// frames as lookback history instead of resampling them. The default history
// is silence; prime the stream when real audio precedes it, for example when
// resuming from the middle of a recording.
//
// PrimeHistory must be called before the first Resample call.
func (s *Streamer) PrimeHistory() {
	s.leadingPaddingNeeded = s.maxRadius
}

// Channels returns the channel count fixed at creation.
func (s *Streamer) Channels() int {
	return s.channels
}

// Adjust reconfigures the stream for new rates. It fails with
// ErrRadiusExceeded, leaving the previous rates in effect, if the new
// stretched kernel radius is wider than the radius fixed at creation.
//
// Adjust must not be called while a Resample call is in flight, but is safe
// at any point between calls, including mid-stream.
func (s *Streamer) Adjust(inputRate, outputRate, lowPassRate int) error {
	previous := *s.engine

	s.engine.Adjust(inputRate, outputRate, lowPassRate)

	if radius := s.engine.PaddingFrames(); radius > s.maxRadius {
		*s.engine = previous
		return fmt.Errorf("%w: %d > %d frames", ErrRadiusExceeded, radius, s.maxRadius)
	}

	// A wider kernel needs more lookahead than the live region currently
	// reserves; give frames back to the lookahead and let the next refill
	// return them to the live region.
	radiusSamples := s.engine.PaddingFrames() * s.channels
	if extent := s.end + s.lookahead; extent-radiusSamples < s.end {
		s.end = extent - radiusSamples
		if s.end < s.start {
			s.end = s.start
		}
		s.lookahead = extent - s.end
	}

	return nil
}

// Resample pulls input frames through the pull callback, converts them, and
// hands each output frame to push. It returns InputExhausted when pull
// signals end of stream (call ResampleEnd to drain the tail) and
// OutputExhausted when push declines further frames (call again to resume).
func (s *Streamer) Resample(table *KernelTable, pull PullFunc, push PushFunc) Result {
	// A primed stream consumes its opening frames as lookback history
	// rather than resampling them.
	for s.leadingPaddingNeeded > 0 {
		offset := (s.maxRadius - s.leadingPaddingNeeded) * s.channels
		pulled := pull(s.buf[offset : s.maxRadius*s.channels])
		if pulled == 0 {
			return InputExhausted
		}
		s.leadingPaddingNeeded -= pulled
	}

	radiusSamples := s.engine.PaddingFrames() * s.channels

	for {
		// If the live region is empty, refill it.
		if s.start == s.end {
			// Shift the tail of the previous window down to the arena
			// head: a full lookback deadzone plus whatever lookahead is
			// valid. The ranges may overlap, which copy handles.
			extent := s.end + s.lookahead
			keep := s.maxRadius*s.channels + s.lookahead
			copy(s.buf[:keep], s.buf[s.end-s.maxRadius*s.channels:extent])
			s.start = s.maxRadius * s.channels
			s.end = s.start

			// Lookahead left over from a wider kernel belongs to the live
			// region under the current one.
			if extent = s.end + s.lookahead; extent-radiusSamples > s.end {
				s.end = extent - radiusSamples
				s.lookahead = extent - s.end
			}

			// Pull fresh frames into the space after the shifted tail.
			// Everything but the last radius of valid data becomes live;
			// that last radius is the next window's lookahead.
			for s.end == s.start {
				extent = s.end + s.lookahead
				free := (len(s.buf) - extent) / s.channels
				pulled := pull(s.buf[extent : extent+free*s.channels])
				if pulled == 0 {
					return InputExhausted
				}
				extent += pulled * s.channels
				if extent-radiusSamples > s.end {
					s.end = extent - radiusSamples
				}
				s.lookahead = extent - s.end
			}
		}

		frames := (s.end - s.start) / s.channels
		window := s.buf[s.start-radiusSamples : s.end+s.lookahead]

		remaining, result := s.engine.Resample(table, window, frames, push)

		s.start = s.end - remaining*s.channels

		if result == OutputExhausted {
			return OutputExhausted
		}
	}
}

// ResampleEnd drains the stream's tail once the pull callback has signalled
// end of stream: it feeds zero frames as trailing padding so the kernel
// overhang of the last real frames is flushed through push.
//
// It returns true once the trailing padding is fully consumed. A false
// return means push declined frames mid-drain; call again to finish.
func (s *Streamer) ResampleEnd(table *KernelTable, push PushFunc) bool {
	result := s.Resample(table, s.pullTrailingPadding, push)
	return result == InputExhausted && s.trailingPaddingRemaining == 0
}

// pullTrailingPadding is the pull callback substituted by ResampleEnd. It
// serves zero frames from the trailing padding budget, then end of stream.
func (s *Streamer) pullTrailingPadding(buf []int16) int {
	frames := len(buf) / s.channels
	if frames > s.trailingPaddingRemaining {
		frames = s.trailingPaddingRemaining
	}

	clear(buf[:frames*s.channels])
	s.trailingPaddingRemaining -= frames
	return frames
}
