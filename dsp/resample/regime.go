package resample

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Regime classifies a sample rate against the highest signal frequency.
type Regime int

const (
	// SubNyquist means fs < 2·fmax; some content aliases.
	SubNyquist Regime = iota
	// AtNyquist means fs == 2·fmax.
	AtNyquist
	// SuperNyquist means fs > 2·fmax.
	SuperNyquist
)

// String returns the regime label.
func (r Regime) String() string {
	switch r {
	case SubNyquist:
		return "sub-nyquist"
	case AtNyquist:
		return "at-nyquist"
	case SuperNyquist:
		return "super-nyquist"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// ClassifyRate returns the regime of sampling content up to maxSignalHz at
// fs.
func ClassifyRate(maxSignalHz, fs float64) (Regime, error) {
	if !core.ValidSampleRate(fs) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, fs)
	}

	if maxSignalHz < 0 || !core.IsFinite(maxSignalHz) {
		return 0, fmt.Errorf("resample: signal frequency must be >= 0: %v: %w", maxSignalHz, core.ErrInvalidRange)
	}

	switch nyquist := 2 * maxSignalHz; {
	case fs < nyquist:
		return SubNyquist, nil
	case fs == nyquist:
		return AtNyquist, nil
	default:
		return SuperNyquist, nil
	}
}

// AliasFrequency returns the apparent frequency in [0, fs/2] of a real tone
// at f Hz sampled at fs.
func AliasFrequency(f, fs float64) (float64, error) {
	if !core.ValidSampleRate(fs) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, fs)
	}

	if !core.IsFinite(f) {
		return 0, fmt.Errorf("resample: tone frequency must be finite: %v: %w", f, core.ErrInvalidRange)
	}

	r := math.Mod(math.Abs(f), fs)
	if r > fs/2 {
		r = fs - r
	}

	return r, nil
}
