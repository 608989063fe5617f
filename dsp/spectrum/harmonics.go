package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// MaxHarmonics bounds the number of marks Harmonics will produce.
const MaxHarmonics = 1 << 16

// Harmonics returns k·f0 for k = 1, 2, ... while k·f0 <= upTo. Requests for
// more than [MaxHarmonics] marks fail with [core.ErrInvalidConfig].
func Harmonics(f0, upTo float64) ([]float64, error) {
	if !(f0 > 0) || math.IsInf(f0, 0) {
		return nil, fmt.Errorf("spectrum: fundamental must be > 0: %v: %w", f0, core.ErrInvalidConfig)
	}

	if upTo < 0 || math.IsNaN(upTo) || math.IsInf(upTo, 0) {
		return nil, fmt.Errorf("spectrum: harmonic limit must be >= 0 and finite: %v: %w", upTo, core.ErrInvalidConfig)
	}

	count := math.Floor(upTo / f0)
	if count > MaxHarmonics {
		return nil, fmt.Errorf("spectrum: %v Hz up to %v Hz exceeds %d harmonics: %w", f0, upTo, MaxHarmonics, core.ErrInvalidConfig)
	}

	out := make([]float64, 0, int(count))
	for k := 1; float64(k)*f0 <= upTo; k++ {
		out = append(out, float64(k)*f0)
	}

	return out, nil
}

// HarmonicLevel is the spectrum level read at one harmonic mark.
type HarmonicLevel struct {
	Order       int
	FrequencyHz float64
	Magnitude   float64
	MagnitudeDB float64
}

// HarmonicLevels reads s at the nearest bin of every harmonic of f0 up to
// upTo. Marks above the Nyquist frequency of s are omitted.
func HarmonicLevels(s *Spectrum, f0, upTo float64) ([]HarmonicLevel, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("spectrum: harmonic levels on empty spectrum: %w", core.ErrEmptySignal)
	}

	marks, err := Harmonics(f0, upTo)
	if err != nil {
		return nil, err
	}

	nyquist := s.SampleRate / 2

	out := make([]HarmonicLevel, 0, len(marks))
	for i, f := range marks {
		if f > nyquist {
			break
		}

		k := s.NearestBin(f)
		out = append(out, HarmonicLevel{
			Order:       i + 1,
			FrequencyHz: f,
			Magnitude:   s.Magnitude[k],
			MagnitudeDB: s.MagnitudeDB[k],
		})
	}

	return out, nil
}
