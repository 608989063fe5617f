package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
)

const (
	// DefaultFadeSeconds is the raised-cosine fade length used by Tone.
	DefaultFadeSeconds = 0.01
	// maxFadeFraction caps the fade of short tones to a share of their length.
	maxFadeFraction = 0.1
)

// Generator creates deterministic test signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator producing buffers at sampleRate Hz.
func NewGenerator(sampleRate float64, opts ...Option) (*Generator, error) {
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %v: %w", sampleRate, core.ErrInvalidRange)
	}

	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g, nil
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 { return g.sampleRate }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Samples returns round(seconds · fs), the length of a signal lasting
// seconds.
func (g *Generator) Samples(seconds float64) int {
	return int(math.Round(seconds * g.sampleRate))
}

// Sine generates amplitude·sin(2π·f·n/fs).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (*buffer.Buffer, error) {
	return g.oscillator("sine", freqHz, amplitude, 0, samples)
}

// Cosine generates amplitude·cos(2π·f·n/fs).
func (g *Generator) Cosine(freqHz, amplitude float64, samples int) (*buffer.Buffer, error) {
	return g.oscillator("cosine", freqHz, amplitude, math.Pi/2, samples)
}

func (g *Generator) oscillator(name string, freqHz, amplitude, phase float64, samples int) (*buffer.Buffer, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: %s samples must be > 0: %d: %w", name, samples, core.ErrEmptySignal)
	}

	if !core.IsFinite(freqHz) || !core.IsFinite(amplitude) {
		return nil, fmt.Errorf("signal: %s frequency and amplitude must be finite: %w", name, core.ErrInvalidRange)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}

	return buffer.FromSlice(out, g.sampleRate)
}

// MultiTone sums sines of equal amplitude, one per frequency.
func (g *Generator) MultiTone(amplitude float64, samples int, freqsHz ...float64) (*buffer.Buffer, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: multitone samples must be > 0: %d: %w", samples, core.ErrEmptySignal)
	}

	if len(freqsHz) == 0 {
		return nil, fmt.Errorf("signal: multitone needs at least one frequency: %w", core.ErrInvalidConfig)
	}

	sum := make([]float64, samples)
	for _, f := range freqsHz {
		tone, err := g.Sine(f, amplitude, samples)
		if err != nil {
			return nil, err
		}

		for i, v := range tone.Samples() {
			sum[i] += v
		}
	}

	return buffer.FromSlice(sum, g.sampleRate)
}

// Tone generates a sine of the given duration with raised-cosine fade-in and
// fade-out of 10 ms, or 10% of the duration for short tones.
func (g *Generator) Tone(freqHz, amplitude, seconds float64) (*buffer.Buffer, error) {
	buf, err := g.Sine(freqHz, amplitude, g.Samples(seconds))
	if err != nil {
		return nil, err
	}

	fade := max(1, int(math.Min(DefaultFadeSeconds, seconds*maxFadeFraction)*g.sampleRate))
	x := buf.Samples()
	fade = min(fade, len(x))

	for i := range fade {
		// 0.5·(1 − cos) sampled over [0, π] inclusive.
		w := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(max(fade-1, 1))))

		x[i] *= w
		x[len(x)-1-i] *= w
	}

	return buf, nil
}

// Silence returns samples zeros.
func (g *Generator) Silence(samples int) (*buffer.Buffer, error) {
	return buffer.Zeros(samples, g.sampleRate)
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) (*buffer.Buffer, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d: %w", samples, core.ErrEmptySignal)
	}

	if amplitude < 0 || !core.IsFinite(amplitude) {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %v: %w", amplitude, core.ErrInvalidRange)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return buffer.FromSlice(out, g.sampleRate)
}
