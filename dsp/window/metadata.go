package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Metadata holds spectral properties computed from a set of coefficients.
type Metadata struct {
	Name string
	// CoherentGain is sum(w)/N, the window's response to a bin-centred tone.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// ScallopLossDB is the amplitude loss of a tone half a bin off centre.
	ScallopLossDB float64
}

// Describe generates a window of the given size and measures its properties.
func Describe(t Type, size int, opts ...Option) (Metadata, error) {
	if !t.Valid() {
		return Metadata{}, fmt.Errorf("window: unknown type %d: %w", int(t), core.ErrInvalidConfig)
	}

	if size <= 0 {
		return Metadata{}, fmt.Errorf("window: size must be > 0: %d: %w", size, core.ErrInvalidConfig)
	}

	coeffs := Generate(t, size, opts...)
	sum := Sum(coeffs)
	if sum == 0 {
		return Metadata{}, fmt.Errorf("window: %s has zero coherent gain at size %d: %w", t, size, core.ErrInvalidConfig)
	}

	sumSq := 0.0
	for _, c := range coeffs {
		sumSq += c * c
	}

	n := float64(size)
	half := dftMagnitude(coeffs, 0.5/n)

	return Metadata{
		Name:          t.String(),
		CoherentGain:  sum / n,
		ENBW:          n * sumSq / (sum * sum),
		ScallopLossDB: core.LinearToDB(half / math.Abs(sum)),
	}, nil
}

// dftMagnitude evaluates |W(f)| at normalized frequency f in cycles/sample.
func dftMagnitude(coeffs []float64, f float64) float64 {
	re, im := 0.0, 0.0
	w := 2 * math.Pi * f
	for k, c := range coeffs {
		phase := w * float64(k)
		re += c * math.Cos(phase)
		im -= c * math.Sin(phase)
	}

	return math.Hypot(re, im)
}
