package quantize

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

// Mode selects the quantizer level layout.
type Mode int

const (
	// ModeMidRise uses decision boundaries at multiples of Δ and
	// reconstruction levels at cell centres.
	ModeMidRise Mode = iota
	// ModeMidTread uses symmetric reconstruction levels including zero.
	ModeMidTread
)

// String returns the canonical name of m.
func (m Mode) String() string {
	switch m {
	case ModeMidRise:
		return "mid-rise"
	case ModeMidTread:
		return "mid-tread"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name. "boundary" and "symmetric" are accepted
// as aliases of mid-rise and mid-tread.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mid-rise", "midrise", "boundary":
		return ModeMidRise, nil
	case "mid-tread", "midtread", "symmetric":
		return ModeMidTread, nil
	default:
		return 0, fmt.Errorf("quantize: unknown mode %q: %w", name, core.ErrInvalidConfig)
	}
}
