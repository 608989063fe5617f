package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/window"
	"github.com/cwbudde/algo-siglab/internal/fftplan"
)

const (
	// MinFFTSize is the smallest default transform length.
	MinFFTSize = 1 << 14
	// DefaultFloor is added to linear magnitudes before conversion to dB.
	DefaultFloor = 1e-12
)

// Option configures [Analyze].
type Option func(*config)

type config struct {
	window    window.Type
	fftSize   int
	symmetric bool
	floor     float64
	err       error
}

func defaultConfig() config {
	return config{
		window: window.TypeHann,
		floor:  DefaultFloor,
	}
}

// WithWindow selects the analysis window. Default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		if !t.Valid() {
			c.err = fmt.Errorf("spectrum: unknown window type %d: %w", int(t), core.ErrInvalidConfig)
			return
		}

		c.window = t
	}
}

// WithWindowName selects the analysis window by name, see [window.Parse].
func WithWindowName(name string) Option {
	return func(c *config) {
		t, err := window.Parse(name)
		if err != nil {
			c.err = fmt.Errorf("spectrum: %w", err)
			return
		}

		c.window = t
	}
}

// WithFFTSize sets the transform length. It must be at least the signal
// length; any positive length is accepted.
func WithFFTSize(n int) Option {
	return func(c *config) {
		if n <= 0 {
			c.err = fmt.Errorf("spectrum: fft size must be > 0: %d: %w", n, core.ErrInvalidConfig)
			return
		}

		c.fftSize = n
	}
}

// WithSymmetricWindow uses the symmetric window form instead of the
// periodic one.
func WithSymmetricWindow() Option {
	return func(c *config) {
		c.symmetric = true
	}
}

// WithFloor sets the positive constant added before the dB conversion.
func WithFloor(v float64) Option {
	return func(c *config) {
		if !(v > 0) || math.IsInf(v, 0) {
			c.err = fmt.Errorf("spectrum: floor must be > 0 and finite: %v: %w", v, core.ErrInvalidConfig)
			return
		}

		c.floor = v
	}
}

// Spectrum is a single-sided magnitude spectrum from 0 to fs/2.
type Spectrum struct {
	Frequencies []float64
	Magnitude   []float64
	MagnitudeDB []float64
	FFTSize     int
	SampleRate  float64
	Window      window.Type
	Floor       float64
}

// Point is one bin of a [Spectrum].
type Point struct {
	FrequencyHz float64
	Magnitude   float64
	MagnitudeDB float64
}

// Len returns the number of bins, FFTSize/2 + 1.
func (s *Spectrum) Len() int {
	if s == nil {
		return 0
	}

	return len(s.Magnitude)
}

// BinWidth returns the frequency spacing between bins in Hz.
func (s *Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.FFTSize)
}

// Bin returns bin i.
func (s *Spectrum) Bin(i int) Point {
	return Point{
		FrequencyHz: s.Frequencies[i],
		Magnitude:   s.Magnitude[i],
		MagnitudeDB: s.MagnitudeDB[i],
	}
}

// NearestBin returns the bin index closest to hz, clamped to the spectrum.
func (s *Spectrum) NearestBin(hz float64) int {
	k := int(math.Round(hz / s.BinWidth()))
	return core.ClampInt(k, 0, s.Len()-1)
}

// Analyze computes the windowed magnitude spectrum of buf.
func Analyze(buf *buffer.Buffer, opts ...Option) (*Spectrum, error) {
	n := buf.Len()
	if n == 0 {
		return nil, fmt.Errorf("spectrum: %w", core.ErrEmptySignal)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.err != nil {
		return nil, cfg.err
	}

	nfft := cfg.fftSize
	if nfft == 0 {
		nfft = max(MinFFTSize, core.NextPowerOfTwo(n))
	}

	if nfft < n {
		return nil, fmt.Errorf("spectrum: fft size %d shorter than signal length %d: %w", nfft, n, core.ErrInvalidConfig)
	}

	var wopts []window.Option
	if !cfg.symmetric {
		wopts = append(wopts, window.WithPeriodic())
	}

	coeffs := window.Generate(cfg.window, n, wopts...)

	gain := window.Sum(coeffs) / 2
	if gain <= 0 {
		return nil, fmt.Errorf("spectrum: %s window of length %d has no coherent gain: %w", cfg.window, n, core.ErrInvalidConfig)
	}

	frame := make([]complex128, nfft)
	for i, x := range buf.Samples() {
		frame[i] = complex(x*coeffs[i], 0)
	}

	plan, err := fftplan.New(nfft)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	if err := plan.Forward(frame, frame); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	bins := nfft/2 + 1
	fs := buf.SampleRate()

	mag := Magnitude(frame[:bins])
	freqs := make([]float64, bins)
	db := make([]float64, bins)

	inv := 1 / gain
	df := fs / float64(nfft)
	for k := range mag {
		mag[k] *= inv
		freqs[k] = float64(k) * df
		db[k] = 20 * math.Log10(mag[k]+cfg.floor)
	}

	return &Spectrum{
		Frequencies: freqs,
		Magnitude:   mag,
		MagnitudeDB: db,
		FFTSize:     nfft,
		SampleRate:  fs,
		Window:      cfg.window,
		Floor:       cfg.floor,
	}, nil
}
