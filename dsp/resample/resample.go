package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/internal/fftplan"
)

var (
	// ErrInvalidRate indicates an invalid input or output sample rate.
	ErrInvalidRate = fmt.Errorf("resample: invalid sample rate: %w", core.ErrInvalidRange)
	// ErrEmptyOutput indicates a conversion that would produce no samples.
	ErrEmptyOutput = fmt.Errorf("resample: output length is zero: %w", core.ErrInvalidConfig)
)

// Mode selects how spectral content above the output Nyquist frequency is
// handled when the rate decreases.
type Mode int

const (
	// ModeFold aliases out-of-band components onto the output band.
	ModeFold Mode = iota
	// ModeTruncate drops out-of-band components.
	ModeTruncate
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFold:
		return "fold"
	case ModeTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

type config struct {
	mode Mode
}

// Option configures the resampler.
type Option func(*config)

// WithMode selects fold or truncate handling. Unknown modes are ignored.
func WithMode(m Mode) Option {
	return func(cfg *config) {
		if m == ModeFold || m == ModeTruncate {
			cfg.mode = m
		}
	}
}

// OutputLen returns round(n / fs · targetFs), the number of samples a
// buffer of n samples at fs occupies at targetFs.
func OutputLen(n int, fs, targetFs float64) (int, error) {
	if !core.ValidSampleRate(fs) {
		return 0, fmt.Errorf("%w: input %v", ErrInvalidRate, fs)
	}

	if !core.ValidSampleRate(targetFs) {
		return 0, fmt.Errorf("%w: target %v", ErrInvalidRate, targetFs)
	}

	m := math.Round(float64(n) / fs * targetFs)
	if m < 1 || m > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d samples at %v Hz to %v Hz", ErrEmptyOutput, n, fs, targetFs)
	}

	return int(m), nil
}

// Resample converts buf to targetFs. The returned buffer covers the same
// duration and has sample rate targetFs.
func Resample(buf *buffer.Buffer, targetFs float64, opts ...Option) (*buffer.Buffer, error) {
	n := buf.Len()
	if n == 0 {
		return nil, fmt.Errorf("resample: %w", core.ErrEmptySignal)
	}

	cfg := config{mode: ModeFold}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m, err := OutputLen(n, buf.SampleRate(), targetFs)
	if err != nil {
		return nil, err
	}

	in, err := fftplan.New(n)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	spec := make([]complex128, n)
	for i, x := range buf.Samples() {
		spec[i] = complex(x, 0)
	}

	if err := in.Forward(spec, spec); err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	out := mapBins(spec, m, cfg.mode)

	plan, err := fftplan.New(m)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	if err := plan.Inverse(out, out); err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	y := make([]float64, m)
	for i, v := range out {
		y[i] = real(v)
	}

	res, err := buffer.FromSlice(y, targetFs)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	return res, nil
}

// mapBins places the n-point spectrum x onto an m-point grid scaled by m/n.
// Bin k carries the signed frequency k (k < n/2) or k − n (k > n/2); an even
// length Nyquist bin is split evenly between +n/2 and −n/2. Each signed
// frequency f lands in bin f mod m.
func mapBins(x []complex128, m int, mode Mode) []complex128 {
	n := len(x)
	y := make([]complex128, m)
	scale := complex(float64(m)/float64(n), 0)

	place := func(f int, v complex128) {
		if mode == ModeTruncate && 2*absInt(f) > m {
			return
		}

		y[mod(f, m)] += v * scale
	}

	for k, v := range x {
		switch {
		case 2*k < n:
			place(k, v)
		case 2*k > n:
			place(k-n, v)
		default:
			place(n/2, v/2)
			place(-n/2, v/2)
		}
	}

	return y
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}

	return r
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
