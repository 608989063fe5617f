// Package fftplan provides forward and inverse complex DFTs of any length.
//
// Power-of-two lengths of at least 16 run on algo-fft plans; other lengths fall back to the
// gonum mixed-radix transform. Both directions follow the same convention:
// the forward transform is unscaled and the inverse is divided by n.
package fftplan

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// minFastSize is the smallest power-of-two length planned with algo-fft.
const minFastSize = 16

// ErrLength is returned for empty inputs or mismatched buffer lengths.
var ErrLength = errors.New("fftplan: invalid length")

// Plan is a reusable transform for a fixed length. A Plan is not safe for
// concurrent use; create one per goroutine.
type Plan struct {
	n     int
	fast  *algofft.Plan[complex128]
	mixed *fourier.CmplxFFT
}

// New creates a plan for transforms of length n.
func New(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}

	p := &Plan{n: n}
	if n >= minFastSize && n&(n-1) == 0 {
		fast, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fftplan: failed to create plan of size %d: %w", n, err)
		}

		p.fast = fast

		return p, nil
	}

	p.mixed = fourier.NewCmplxFFT(n)

	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Forward computes dst = DFT(src). dst and src may alias.
func (p *Plan) Forward(dst, src []complex128) error {
	if err := p.check(dst, src); err != nil {
		return err
	}

	if p.fast != nil {
		if err := p.fast.Forward(dst, src); err != nil {
			return fmt.Errorf("fftplan: forward transform failed: %w", err)
		}

		return nil
	}

	out := p.mixed.Coefficients(nil, src)
	copy(dst, out)

	return nil
}

// Inverse computes dst = IDFT(src) including the 1/n scale. dst and src may
// alias.
func (p *Plan) Inverse(dst, src []complex128) error {
	if err := p.check(dst, src); err != nil {
		return err
	}

	if p.fast != nil {
		if err := p.fast.Inverse(dst, src); err != nil {
			return fmt.Errorf("fftplan: inverse transform failed: %w", err)
		}

		return nil
	}

	out := p.mixed.Sequence(nil, src)

	scale := complex(1/float64(p.n), 0)
	for i, v := range out {
		dst[i] = v * scale
	}

	return nil
}

func (p *Plan) check(dst, src []complex128) error {
	if len(dst) != p.n || len(src) != p.n {
		return fmt.Errorf("%w: plan %d, dst %d, src %d", ErrLength, p.n, len(dst), len(src))
	}

	return nil
}

// Forward is a one-shot forward transform of src into a new slice.
func Forward(src []complex128) ([]complex128, error) {
	p, err := New(len(src))
	if err != nil {
		return nil, err
	}

	dst := make([]complex128, len(src))
	if err := p.Forward(dst, src); err != nil {
		return nil, err
	}

	return dst, nil
}

// Inverse is a one-shot inverse transform of src into a new slice.
func Inverse(src []complex128) ([]complex128, error) {
	p, err := New(len(src))
	if err != nil {
		return nil, err
	}

	dst := make([]complex128, len(src))
	if err := p.Inverse(dst, src); err != nil {
		return nil, err
	}

	return dst, nil
}

// ForwardReal transforms a real sequence, zero-padded or truncated to n.
func ForwardReal(x []float64, n int) ([]complex128, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}

	buf := make([]complex128, n)
	for i := 0; i < n && i < len(x); i++ {
		buf[i] = complex(x[i], 0)
	}

	return Forward(buf)
}
