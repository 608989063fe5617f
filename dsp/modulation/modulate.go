package modulation

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-siglab/dsp/analytic"
	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

const defaultModulationIndex = 1.0

// Sideband selects which SSB sideband is kept.
type Sideband int

const (
	UpperSideband Sideband = iota
	LowerSideband
)

// String returns "usb" or "lsb".
func (s Sideband) String() string {
	if s == LowerSideband {
		return "lsb"
	}

	return "usb"
}

// Option mutates modulation parameters.
type Option func(*config) error

type config struct {
	fc, amplitude, phase          float64
	hasFc, hasAmplitude, hasPhase bool
	index                         float64
	withCarrier                   bool
	sideband                      Sideband
	spectrumOpts                  []spectrum.Option
}

// WithCarrierHz fixes the SSB carrier frequency instead of estimating it.
func WithCarrierHz(fc float64) Option {
	return func(cfg *config) error {
		if !(fc > 0) || math.IsInf(fc, 0) {
			return fmt.Errorf("modulation: carrier frequency must be > 0 and finite: %v: %w", fc, core.ErrInvalidConfig)
		}

		cfg.fc, cfg.hasFc = fc, true

		return nil
	}
}

// WithCarrierAmplitude fixes the SSB carrier amplitude instead of fitting it.
func WithCarrierAmplitude(a float64) Option {
	return func(cfg *config) error {
		if a < 0 || !core.IsFinite(a) {
			return fmt.Errorf("modulation: carrier amplitude must be >= 0 and finite: %v: %w", a, core.ErrInvalidConfig)
		}

		cfg.amplitude, cfg.hasAmplitude = a, true

		return nil
	}
}

// WithCarrierPhase fixes the SSB carrier phase in radians instead of
// fitting it.
func WithCarrierPhase(rad float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(rad) {
			return fmt.Errorf("modulation: carrier phase must be finite: %v: %w", rad, core.ErrInvalidConfig)
		}

		cfg.phase, cfg.hasPhase = rad, true

		return nil
	}
}

// WithModulationIndex sets μ for DSB-FC, y = (1 + μ·m)·c. Default 1.
func WithModulationIndex(mu float64) Option {
	return func(cfg *config) error {
		if mu < 0 || !core.IsFinite(mu) {
			return fmt.Errorf("modulation: index must be >= 0 and finite: %v: %w", mu, core.ErrInvalidConfig)
		}

		cfg.index = mu

		return nil
	}
}

// WithSSBCarrier adds the carrier to the SSB output.
func WithSSBCarrier() Option {
	return func(cfg *config) error {
		cfg.withCarrier = true
		return nil
	}
}

// WithLowerSideband keeps the lower sideband in the SSB output.
func WithLowerSideband() Option {
	return func(cfg *config) error {
		cfg.sideband = LowerSideband
		return nil
	}
}

// WithSpectrumOptions forwards options to every spectrum computed for the
// result and to carrier estimation.
func WithSpectrumOptions(opts ...spectrum.Option) Option {
	return func(cfg *config) error {
		cfg.spectrumOpts = append(cfg.spectrumOpts, opts...)
		return nil
	}
}

// Result holds the modulated signals and their spectra.
type Result struct {
	DSBFC *buffer.Buffer
	DSBSC *buffer.Buffer
	SSB   *buffer.Buffer

	DSBFCSpectrum *spectrum.Spectrum
	DSBSCSpectrum *spectrum.Spectrum
	SSBSpectrum   *spectrum.Spectrum

	// Carrier holds the SSB carrier parameters actually used.
	Carrier         Carrier
	Sideband        Sideband
	ModulationIndex float64
}

// Modulate combines message and carrier into DSB-FC, DSB-SC and SSB signals.
// Both buffers must have the same length and sample rate. No output is
// normalized.
func Modulate(message, carrier *buffer.Buffer, opts ...Option) (*Result, error) {
	if message.Len() == 0 || carrier.Len() == 0 {
		return nil, fmt.Errorf("modulation: %w", core.ErrEmptySignal)
	}

	if !message.SameShape(carrier) {
		return nil, fmt.Errorf("modulation: message (%d @ %v Hz) and carrier (%d @ %v Hz) differ: %w",
			message.Len(), message.SampleRate(), carrier.Len(), carrier.SampleRate(), core.ErrInvalidConfig)
	}

	cfg := config{index: defaultModulationIndex}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c, err := resolveCarrier(carrier, cfg)
	if err != nil {
		return nil, err
	}

	n := message.Len()
	fs := message.SampleRate()
	m := message.Samples()
	cs := carrier.Samples()

	fc := make([]float64, n)
	sc := make([]float64, n)
	for i := range n {
		fc[i] = (1 + cfg.index*m[i]) * cs[i]
		sc[i] = m[i] * cs[i]
	}

	z, err := analytic.ToAnalytic(message)
	if err != nil {
		return nil, fmt.Errorf("modulation: %w", err)
	}

	ssb := make([]float64, n)
	w := 2 * math.Pi * c.FrequencyHz / fs
	for i, v := range z.Samples() {
		if cfg.sideband == LowerSideband {
			v = cmplx.Conj(v)
		}

		rot := cmplx.Rect(c.Amplitude, w*float64(i)+c.Phase)
		ssb[i] = real(v * rot)

		if cfg.withCarrier {
			ssb[i] += cs[i]
		}
	}

	res := &Result{
		Carrier:         c,
		Sideband:        cfg.sideband,
		ModulationIndex: cfg.index,
	}

	if res.DSBFC, res.DSBFCSpectrum, err = withSpectrum(fc, fs, cfg.spectrumOpts); err != nil {
		return nil, err
	}

	if res.DSBSC, res.DSBSCSpectrum, err = withSpectrum(sc, fs, cfg.spectrumOpts); err != nil {
		return nil, err
	}

	if res.SSB, res.SSBSpectrum, err = withSpectrum(ssb, fs, cfg.spectrumOpts); err != nil {
		return nil, err
	}

	return res, nil
}

func withSpectrum(samples []float64, fs float64, opts []spectrum.Option) (*buffer.Buffer, *spectrum.Spectrum, error) {
	b, err := buffer.FromSlice(samples, fs)
	if err != nil {
		return nil, nil, fmt.Errorf("modulation: %w", err)
	}

	s, err := spectrum.Analyze(b, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("modulation: %w", err)
	}

	return b, s, nil
}

// resolveCarrier fills in whatever carrier parameters the options left open
// by estimating them from the carrier buffer.
func resolveCarrier(carrier *buffer.Buffer, cfg config) (Carrier, error) {
	if cfg.hasFc && cfg.hasAmplitude && cfg.hasPhase {
		c := Carrier{FrequencyHz: cfg.fc, Amplitude: cfg.amplitude, Phase: cfg.phase}
		if err := c.validate(carrier.SampleRate()); err != nil {
			return Carrier{}, err
		}

		return c, nil
	}

	var (
		c   Carrier
		err error
	)

	if cfg.hasFc {
		c, err = FitCarrier(carrier, cfg.fc)
	} else {
		c, err = EstimateCarrier(carrier, cfg.spectrumOpts...)
	}

	if err != nil {
		return Carrier{}, err
	}

	if cfg.hasAmplitude {
		c.Amplitude = cfg.amplitude
	}

	if cfg.hasPhase {
		c.Phase = cfg.phase
	}

	return c, nil
}
