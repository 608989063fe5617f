package core

import "errors"

// Error taxonomy shared by every analysis package. Callers match with
// errors.Is; packages wrap these with call-specific context.
var (
	// ErrInvalidRange reports a non-monotonic or non-positive range: a
	// quantization interval with max <= min, or a sample rate <= 0.
	ErrInvalidRange = errors.New("invalid range")
	// ErrEmptySignal reports a zero-length input to an analysis.
	ErrEmptySignal = errors.New("empty signal")
	// ErrInvalidConfig reports an unusable operation setting such as a bit
	// depth < 1, a negative frequency or a search band with min > max.
	ErrInvalidConfig = errors.New("invalid config")
)
