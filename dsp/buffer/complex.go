package buffer

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Complex is a finite complex-valued signal, for example the analytic signal
// of a real Buffer.
type Complex struct {
	samples    []complex128
	sampleRate float64
}

// NewComplex copies samples into a Complex buffer sampled at sampleRate Hz.
func NewComplex(samples []complex128, sampleRate float64) (*Complex, error) {
	if err := validate(len(samples), sampleRate); err != nil {
		return nil, err
	}

	s := make([]complex128, len(samples))
	copy(s, samples)

	return &Complex{samples: s, sampleRate: sampleRate}, nil
}

// Samples returns the underlying slice.
func (c *Complex) Samples() []complex128 {
	return c.samples
}

// Len returns the number of samples.
func (c *Complex) Len() int {
	if c == nil {
		return 0
	}

	return len(c.samples)
}

// SampleRate returns the sample rate in Hz.
func (c *Complex) SampleRate() float64 {
	return c.sampleRate
}

// Real returns the real parts as a new Buffer.
func (c *Complex) Real() *Buffer {
	return c.mapReal(func(v complex128) float64 { return real(v) })
}

// Imag returns the imaginary parts as a new Buffer.
func (c *Complex) Imag() *Buffer {
	return c.mapReal(func(v complex128) float64 { return imag(v) })
}

// Magnitude returns |c[n]| as a new Buffer.
func (c *Complex) Magnitude() *Buffer {
	return c.mapReal(cmplx.Abs)
}

// Phase returns arg(c[n]) in radians as a new Buffer.
func (c *Complex) Phase() *Buffer {
	return c.mapReal(cmplx.Phase)
}

func (c *Complex) mapReal(fn func(complex128) float64) *Buffer {
	out := make([]float64, len(c.samples))
	for i, v := range c.samples {
		out[i] = fn(v)
	}

	return &Buffer{samples: out, sampleRate: c.sampleRate}
}

// ToComplex promotes a real buffer to a Complex buffer with zero imaginary part.
func ToComplex(b *Buffer) (*Complex, error) {
	if b.Len() == 0 {
		return nil, fmt.Errorf("buffer: complex promotion of empty buffer: %w", core.ErrEmptySignal)
	}

	out := make([]complex128, len(b.samples))
	for i, v := range b.samples {
		out[i] = complex(v, 0)
	}

	return &Complex{samples: out, sampleRate: b.sampleRate}, nil
}
