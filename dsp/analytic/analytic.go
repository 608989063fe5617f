// Package analytic builds the analytic signal of a real buffer by one-sided
// spectral weighting.
//
// The transform keeps DC (and the Nyquist bin for even lengths) unscaled,
// doubles the positive-frequency bins and zeroes the negative-frequency bins.
// The real part of the result reproduces the input; the imaginary part is
// its Hilbert transform.
package analytic

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/internal/fftplan"
)

// ToAnalytic returns the analytic signal of buf.
func ToAnalytic(buf *buffer.Buffer) (*buffer.Complex, error) {
	n := buf.Len()
	if n == 0 {
		return nil, fmt.Errorf("analytic: %w", core.ErrEmptySignal)
	}

	plan, err := fftplan.New(n)
	if err != nil {
		return nil, fmt.Errorf("analytic: %w", err)
	}

	spec := make([]complex128, n)
	for i, x := range buf.Samples() {
		spec[i] = complex(x, 0)
	}

	if err := plan.Forward(spec, spec); err != nil {
		return nil, fmt.Errorf("analytic: %w", err)
	}

	applyOneSided(spec)

	if err := plan.Inverse(spec, spec); err != nil {
		return nil, fmt.Errorf("analytic: %w", err)
	}

	out, err := buffer.NewComplex(spec, buf.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("analytic: %w", err)
	}

	return out, nil
}

// applyOneSided weights a full DFT in place: bins 1..ceil(n/2)-1 doubled,
// bins above n/2 zeroed.
func applyOneSided(spec []complex128) {
	n := len(spec)
	half := (n + 1) / 2

	for k := 1; k < half; k++ {
		spec[k] *= 2
	}

	for k := n/2 + 1; k < n; k++ {
		spec[k] = 0
	}
}

// Hilbert returns the Hilbert transform of buf, the imaginary part of its
// analytic signal.
func Hilbert(buf *buffer.Buffer) (*buffer.Buffer, error) {
	a, err := ToAnalytic(buf)
	if err != nil {
		return nil, err
	}

	return a.Imag(), nil
}

// Envelope returns the magnitude of the analytic signal of buf.
func Envelope(buf *buffer.Buffer) (*buffer.Buffer, error) {
	a, err := ToAnalytic(buf)
	if err != nil {
		return nil, err
	}

	return a.Magnitude(), nil
}

// InstantaneousFrequency returns the derivative of the unwrapped analytic
// phase in Hz. The result has one sample fewer than buf.
func InstantaneousFrequency(buf *buffer.Buffer) ([]float64, error) {
	a, err := ToAnalytic(buf)
	if err != nil {
		return nil, err
	}

	s := a.Samples()
	if len(s) < 2 {
		return nil, fmt.Errorf("analytic: instantaneous frequency needs at least 2 samples: %w", core.ErrEmptySignal)
	}

	scale := a.SampleRate() / (2 * math.Pi)

	out := make([]float64, len(s)-1)
	for i := range out {
		// Phase of s[i+1]·conj(s[i]) is the wrapped phase increment.
		out[i] = cmplx.Phase(s[i+1]*cmplx.Conj(s[i])) * scale
	}

	return out, nil
}
