package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/window"
)

// Goertzel evaluates a single DFT term at an arbitrary frequency.
//
// The analyzer accumulates every sample passed to ProcessBlock since the last
// Reset. Power and Magnitude match |X(f)|^2 and |X(f)| of a DFT over the same
// block.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates an analyzer for frequency in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("spectrum: goertzel sample rate must be > 0: %v: %w", sampleRate, core.ErrInvalidRange)
	}

	if frequency < 0 || frequency > sampleRate/2 || !core.IsFinite(frequency) {
		return nil, fmt.Errorf("spectrum: goertzel frequency must be in [0, %v]: %v: %w", sampleRate/2, frequency, core.ErrInvalidRange)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	for _, x := range input {
		s0, s1 = x+g.coeff*s0-s1, s0
	}

	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the accumulated component.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the accumulated component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Frequency returns the target frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude estimates the amplitude of the component of buf at hz using
// a Hann-windowed Goertzel probe, normalized like [Analyze].
func ToneAmplitude(buf *buffer.Buffer, hz float64) (float64, error) {
	n := buf.Len()
	if n == 0 {
		return 0, fmt.Errorf("spectrum: %w", core.ErrEmptySignal)
	}

	g, err := NewGoertzel(hz, buf.SampleRate())
	if err != nil {
		return 0, err
	}

	coeffs := window.Generate(window.TypeHann, n, window.WithPeriodic())

	gain := window.Sum(coeffs) / 2
	if gain <= 0 {
		return 0, fmt.Errorf("spectrum: signal of length %d too short for tone probe: %w", n, core.ErrInvalidConfig)
	}

	windowed := make([]float64, n)
	for i, x := range buf.Samples() {
		windowed[i] = x * coeffs[i]
	}

	g.ProcessBlock(windowed)

	return g.Magnitude() / gain, nil
}
