package quantize

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Dither selects the noise added to each sample before quantization.
type Dither int

const (
	// DitherNone quantizes the samples as they are.
	DitherNone Dither = iota
	// DitherRectangular adds uniform noise in [−Δ/2, Δ/2).
	DitherRectangular
	// DitherTriangular adds triangular noise in (−Δ, Δ), the sum of two
	// rectangular draws. It decorrelates the error power from the signal.
	DitherTriangular
)

// String returns the canonical name of d.
func (d Dither) String() string {
	switch d {
	case DitherNone:
		return "none"
	case DitherRectangular:
		return "rpdf"
	case DitherTriangular:
		return "tpdf"
	default:
		return fmt.Sprintf("dither(%d)", int(d))
	}
}

// Valid reports whether d is a known dither type.
func (d Dither) Valid() bool {
	return d >= DitherNone && d <= DitherTriangular
}

// ParseDither resolves a dither name.
func ParseDither(name string) (Dither, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return DitherNone, nil
	case "rpdf", "rectangular", "uniform":
		return DitherRectangular, nil
	case "tpdf", "triangular":
		return DitherTriangular, nil
	default:
		return 0, fmt.Errorf("quantize: unknown dither %q: %w", name, core.ErrInvalidConfig)
	}
}

// source returns a generator of dither values for level spacing step, or
// nil for DitherNone. Each call starts from seed.
func (d Dither) source(step float64, seed int64) func() float64 {
	if d == DitherNone {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	if d == DitherRectangular {
		return func() float64 {
			return (rng.Float64() - 0.5) * step
		}
	}

	return func() float64 {
		return (rng.Float64() - rng.Float64()) * step
	}
}
