package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Peak is the strongest spectral component found by [FindPeak].
type Peak struct {
	// FrequencyHz is the refined frequency estimate.
	FrequencyHz float64
	// Bin is the index of the maximum bin.
	Bin int
	// Offset is the parabolic correction in bins, within [-0.5, 0.5].
	Offset      float64
	Magnitude   float64
	MagnitudeDB float64
	// Refined reports whether parabolic interpolation was applied.
	Refined bool
}

// PeakOption configures [FindPeak].
type PeakOption func(*peakConfig)

type peakConfig struct {
	minHz    float64
	maxHz    float64
	noRefine bool
}

// WithMinHz restricts the search to bins at or above hz.
func WithMinHz(hz float64) PeakOption {
	return func(c *peakConfig) { c.minHz = hz }
}

// WithMaxHz restricts the search to bins at or below hz.
func WithMaxHz(hz float64) PeakOption {
	return func(c *peakConfig) { c.maxHz = hz }
}

// WithBand restricts the search to [minHz, maxHz].
func WithBand(minHz, maxHz float64) PeakOption {
	return func(c *peakConfig) {
		c.minHz = minHz
		c.maxHz = maxHz
	}
}

// WithoutRefinement returns the raw maximum bin.
func WithoutRefinement() PeakOption {
	return func(c *peakConfig) { c.noRefine = true }
}

// FindPeak locates the largest bin of s inside the search band and refines
// it with a parabola through the neighbouring linear magnitudes. When no bin
// lies inside the band the global maximum is used.
func FindPeak(s *Spectrum, opts ...PeakOption) (Peak, error) {
	if s.Len() == 0 {
		return Peak{}, fmt.Errorf("spectrum: peak search on empty spectrum: %w", core.ErrEmptySignal)
	}

	cfg := peakConfig{maxHz: math.Inf(1)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.minHz < 0 || cfg.maxHz < 0 || math.IsNaN(cfg.minHz) || math.IsNaN(cfg.maxHz) {
		return Peak{}, fmt.Errorf("spectrum: band bounds must be >= 0: [%v, %v]: %w", cfg.minHz, cfg.maxHz, core.ErrInvalidConfig)
	}

	if cfg.minHz > cfg.maxHz {
		return Peak{}, fmt.Errorf("spectrum: band min %v above max %v: %w", cfg.minHz, cfg.maxHz, core.ErrInvalidConfig)
	}

	k := argmaxInBand(s, cfg.minHz, cfg.maxHz)
	if k < 0 {
		k = argmaxInBand(s, 0, math.Inf(1))
	}

	p := Peak{
		Bin:         k,
		FrequencyHz: s.Frequencies[k],
		Magnitude:   s.Magnitude[k],
		MagnitudeDB: s.MagnitudeDB[k],
	}

	if cfg.noRefine || k == 0 || k == s.Len()-1 {
		return p, nil
	}

	a, b, c := s.Magnitude[k-1], s.Magnitude[k], s.Magnitude[k+1]

	denom := a - 2*b + c
	if !(denom < 0) {
		return p, nil
	}

	offset := core.Clamp(0.5*(a-c)/denom, -0.5, 0.5)

	p.Offset = offset
	p.FrequencyHz = (float64(k) + offset) * s.BinWidth()
	p.Magnitude = b - 0.25*(a-c)*offset
	p.MagnitudeDB = 20 * math.Log10(p.Magnitude+s.Floor)
	p.Refined = true

	return p, nil
}

// argmaxInBand returns the first maximal bin with frequency in [lo, hi], or
// -1 when no bin qualifies.
func argmaxInBand(s *Spectrum, lo, hi float64) int {
	best := -1
	for k, f := range s.Frequencies {
		if f < lo || f > hi {
			continue
		}

		if best < 0 || s.Magnitude[k] > s.Magnitude[best] {
			best = k
		}
	}

	return best
}
