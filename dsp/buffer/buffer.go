package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Buffer is a finite real-valued signal with its sample rate.
//
// Buffers are value-like: analysis functions read them and return freshly
// allocated results, never retaining or mutating the input.
type Buffer struct {
	samples    []float64
	sampleRate float64
}

// New copies samples into a Buffer sampled at sampleRate Hz.
// It fails with core.ErrEmptySignal for no samples and core.ErrInvalidRange
// for a non-positive or non-finite sample rate.
func New(samples []float64, sampleRate float64) (*Buffer, error) {
	if err := validate(len(samples), sampleRate); err != nil {
		return nil, err
	}

	s := make([]float64, len(samples))
	copy(s, samples)

	return &Buffer{samples: s, sampleRate: sampleRate}, nil
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64, sampleRate float64) (*Buffer, error) {
	if err := validate(len(s), sampleRate); err != nil {
		return nil, err
	}

	return &Buffer{samples: s, sampleRate: sampleRate}, nil
}

// Zeros returns a zero-filled Buffer of the given length.
func Zeros(length int, sampleRate float64) (*Buffer, error) {
	if err := validate(length, sampleRate); err != nil {
		return nil, err
	}

	return &Buffer{samples: make([]float64, length), sampleRate: sampleRate}, nil
}

func validate(length int, sampleRate float64) error {
	if length <= 0 {
		return fmt.Errorf("buffer: length must be > 0: %d: %w", length, core.ErrEmptySignal)
	}

	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("buffer: sample rate must be > 0 and finite: %f: %w", sampleRate, core.ErrInvalidRange)
	}

	return nil
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the number of samples. A nil Buffer has length 0.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}

	return len(b.samples)
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() float64 {
	return b.sampleRate
}

// Duration returns the signal length in seconds (N / fs).
func (b *Buffer) Duration() float64 {
	return float64(len(b.samples)) / b.sampleRate
}

// TimeAt returns the time in seconds of sample i.
func (b *Buffer) TimeAt(i int) float64 {
	return float64(i) / b.sampleRate
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)

	return &Buffer{samples: s, sampleRate: b.sampleRate}
}

// SameShape reports whether b and other have equal length and sample rate.
func (b *Buffer) SameShape(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}

	return len(b.samples) == len(other.samples) && b.sampleRate == other.sampleRate
}

// Equal reports whether b and other have identical shape and samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if !b.SameShape(other) {
		return false
	}

	if b == nil {
		return true
	}

	for i, v := range b.samples {
		if other.samples[i] != v {
			return false
		}
	}

	return true
}
