package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Deinterleave splits interleaved frames (c0 c1 ... c0 c1 ...) into one
// independent Buffer per channel. A trailing partial frame is dropped.
func Deinterleave(interleaved []float64, channels int, sampleRate float64) ([]*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("buffer: channels must be >= 1: %d: %w", channels, core.ErrInvalidConfig)
	}

	frames := len(interleaved) / channels
	if err := validate(frames, sampleRate); err != nil {
		return nil, err
	}

	out := make([]*Buffer, channels)
	for ch := range out {
		s := make([]float64, frames)
		for i := range s {
			s[i] = interleaved[i*channels+ch]
		}
		out[ch] = &Buffer{samples: s, sampleRate: sampleRate}
	}

	return out, nil
}

// MixDown averages channel buffers of identical shape into one mono Buffer.
func MixDown(channels ...*Buffer) (*Buffer, error) {
	if len(channels) == 0 || channels[0].Len() == 0 {
		return nil, fmt.Errorf("buffer: mixdown needs at least one channel: %w", core.ErrEmptySignal)
	}

	first := channels[0]
	out := make([]float64, first.Len())
	for ch, b := range channels {
		if !first.SameShape(b) {
			return nil, fmt.Errorf("buffer: channel %d shape mismatch: %w", ch, core.ErrInvalidConfig)
		}
		for i, v := range b.samples {
			out[i] += v
		}
	}

	scale := 1 / float64(len(channels))
	for i := range out {
		out[i] *= scale
	}

	return &Buffer{samples: out, sampleRate: first.sampleRate}, nil
}
