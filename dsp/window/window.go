package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeFlatTop
	TypeKaiser
	TypeTukey
	TypeTriangle
)

// Cosine-sum coefficients, w(x) = sum c[k]·cos(2πkx) for x in [0, 1].
var (
	hannCoeffs           = []float64{0.5, -0.5}
	hammingCoeffs        = []float64{0.54, -0.46}
	blackmanCoeffs       = []float64{0.42, -0.5, 0.08}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs        = unitPeak([]float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368})
)

// unitPeak scales cosine-sum coefficients so that w(1/2) = 1. The published
// flat-top values are rounded and overshoot it slightly.
func unitPeak(c []float64) []float64 {
	peak := 0.0
	for k, v := range c {
		if k%2 == 0 {
			peak += v
		} else {
			peak -= v
		}
	}

	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = v / peak
	}

	return out
}

type entry struct {
	name         string
	defaultAlpha float64
}

var entries = map[Type]entry{
	TypeRectangular:    {name: "rectangular"},
	TypeHann:           {name: "hann"},
	TypeHamming:        {name: "hamming"},
	TypeBlackman:       {name: "blackman"},
	TypeBlackmanHarris: {name: "blackman-harris"},
	TypeFlatTop:        {name: "flat-top"},
	TypeKaiser:         {name: "kaiser", defaultAlpha: 8.6},
	TypeTukey:          {name: "tukey", defaultAlpha: 0.5},
	TypeTriangle:       {name: "triangle"},
}

var aliases = map[string]Type{
	"boxcar":         TypeRectangular,
	"rect":           TypeRectangular,
	"none":           TypeRectangular,
	"hanning":        TypeHann,
	"flattop":        TypeFlatTop,
	"bartlett":       TypeTriangle,
	"blackmanharris": TypeBlackmanHarris,
}

// Types lists every supported window type in declaration order.
func Types() []Type {
	return []Type{
		TypeRectangular, TypeHann, TypeHamming, TypeBlackman,
		TypeBlackmanHarris, TypeFlatTop, TypeKaiser, TypeTukey, TypeTriangle,
	}
}

// String returns the canonical lowercase name of t.
func (t Type) String() string {
	if e, ok := entries[t]; ok {
		return e.name
	}

	return fmt.Sprintf("window(%d)", int(t))
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool {
	_, ok := entries[t]
	return ok
}

// Parse resolves a window name ("hann", "hamming", "kaiser", ...) to its
// Type. Matching ignores case and surrounding whitespace.
func Parse(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, e := range entries {
		if e.name == key {
			return t, nil
		}
	}

	if t, ok := aliases[key]; ok {
		return t, nil
	}

	return 0, fmt.Errorf("window: unknown window name %q: %w", name, core.ErrInvalidConfig)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	hasAlpha bool
	periodic bool
}

// WithAlpha sets the shape parameter of Kaiser (beta) and Tukey (taper
// fraction) windows. Negative values are ignored.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
			c.hasAlpha = true
		}
	}
}

// WithPeriodic selects the periodic (DFT-even) form used for spectral
// analysis instead of the symmetric filter-design form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. A length of one
// always yields [1]; a non-positive length yields nil.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.hasAlpha {
		cfg.alpha = entries[t].defaultAlpha
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	for i := range out {
		out[i] = eval(t, float64(i)/den, cfg.alpha)
	}

	return out
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// Sum returns the sum of the coefficients (N times the coherent gain).
func Sum(coeffs []float64) float64 {
	s := 0.0
	for _, c := range coeffs {
		s += c
	}

	return s
}

func eval(t Type, x, alpha float64) float64 {
	switch t {
	case TypeHann:
		return cosineSum(x, hannCoeffs)
	case TypeHamming:
		return cosineSum(x, hammingCoeffs)
	case TypeBlackman:
		return cosineSum(x, blackmanCoeffs)
	case TypeBlackmanHarris:
		return cosineSum(x, blackmanHarrisCoeffs)
	case TypeFlatTop:
		return cosineSum(x, flatTopCoeffs)
	case TypeKaiser:
		return kaiserAt(x, alpha)
	case TypeTukey:
		return tukeyAt(x, alpha)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	default:
		return 1
	}
}

func cosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineSum(x, hannCoeffs)
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

// besselI0 approximates the modified Bessel function of the first kind, order 0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
