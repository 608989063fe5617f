package modulation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

const errNoCarrier = "modulation: cannot estimate carrier frequency; pass WithCarrierHz"

// Carrier describes c(t) = Amplitude·cos(2π·FrequencyHz·t + Phase).
type Carrier struct {
	FrequencyHz float64
	Amplitude   float64
	Phase       float64
}

// SineCarrier returns a unit sine carrier, cos shifted by −π/2.
func SineCarrier(fc float64) Carrier {
	return Carrier{FrequencyHz: fc, Amplitude: 1, Phase: -math.Pi / 2}
}

// At evaluates the carrier at time t in seconds.
func (c Carrier) At(t float64) float64 {
	return c.Amplitude * math.Cos(2*math.Pi*c.FrequencyHz*t+c.Phase)
}

// Generate samples the carrier at n instants spaced 1/fs apart from t = 0.
func (c Carrier) Generate(n int, fs float64) (*buffer.Buffer, error) {
	if err := c.validate(fs); err != nil {
		return nil, err
	}

	if n <= 0 {
		return nil, fmt.Errorf("modulation: carrier length must be > 0: %d: %w", n, core.ErrEmptySignal)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = c.At(float64(i) / fs)
	}

	return buffer.FromSlice(out, fs)
}

func (c Carrier) validate(fs float64) error {
	if !core.ValidSampleRate(fs) {
		return fmt.Errorf("modulation: sample rate must be > 0: %v: %w", fs, core.ErrInvalidRange)
	}

	if !(c.FrequencyHz > 0) || c.FrequencyHz > fs/2 {
		return fmt.Errorf("modulation: carrier frequency must be in (0, %v]: %v: %w", fs/2, c.FrequencyHz, core.ErrInvalidRange)
	}

	if !core.IsFinite(c.Amplitude) || !core.IsFinite(c.Phase) {
		return fmt.Errorf("modulation: carrier amplitude and phase must be finite: %w", core.ErrInvalidRange)
	}

	return nil
}

// FitCarrier estimates amplitude and phase of a carrier at fc Hz in buf by
// least squares over a cosine and sine basis.
func FitCarrier(buf *buffer.Buffer, fc float64) (Carrier, error) {
	n := buf.Len()
	if n == 0 {
		return Carrier{}, fmt.Errorf("modulation: %w", core.ErrEmptySignal)
	}

	fs := buf.SampleRate()
	if err := (Carrier{FrequencyHz: fc}).validate(fs); err != nil {
		return Carrier{}, err
	}

	if n < 2 {
		return Carrier{}, fmt.Errorf("modulation: carrier fit needs at least 2 samples: %w", core.ErrEmptySignal)
	}

	design := mat.NewDense(n, 2, nil)
	w := 2 * math.Pi * fc / fs
	for i := range n {
		design.Set(i, 0, math.Cos(w*float64(i)))
		design.Set(i, 1, math.Sin(w*float64(i)))
	}

	var coef mat.VecDense
	if err := coef.SolveVec(design, mat.NewVecDense(n, buf.Copy().Samples())); err != nil {
		return Carrier{}, fmt.Errorf("modulation: carrier fit at %v Hz failed: %w", fc, err)
	}

	// a·cos + b·sin = A·cos(wt + φ) with a = A·cos φ and b = −A·sin φ.
	a, b := coef.AtVec(0), coef.AtVec(1)

	return Carrier{
		FrequencyHz: fc,
		Amplitude:   math.Hypot(a, b),
		Phase:       math.Atan2(-b, a),
	}, nil
}

// EstimateCarrier locates the dominant tone of buf with [spectrum.FindPeak]
// and fits its amplitude and phase. Buffers shorter than two samples, silent
// buffers and buffers whose strongest bin is DC carry no usable tone and
// yield [core.ErrInvalidConfig].
func EstimateCarrier(buf *buffer.Buffer, opts ...spectrum.Option) (Carrier, error) {
	if buf.Len() < 2 {
		return Carrier{}, fmt.Errorf("%s: %d samples: %w", errNoCarrier, buf.Len(), core.ErrInvalidConfig)
	}

	s, err := spectrum.Analyze(buf, opts...)
	if err != nil {
		return Carrier{}, fmt.Errorf("modulation: %w", err)
	}

	p, err := spectrum.FindPeak(s)
	if err != nil {
		return Carrier{}, fmt.Errorf("modulation: %w", err)
	}

	if !(p.Magnitude > 0) || !(p.FrequencyHz > 0) {
		return Carrier{}, fmt.Errorf("%s: peak %v at %v Hz: %w", errNoCarrier, p.Magnitude, p.FrequencyHz, core.ErrInvalidConfig)
	}

	return FitCarrier(buf, p.FrequencyHz)
}
