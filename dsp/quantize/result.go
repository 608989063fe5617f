package quantize

import (
	"github.com/cwbudde/algo-siglab/dsp/buffer"
)

// Result is the outcome of quantizing a buffer.
type Result struct {
	Quantized *buffer.Buffer
	// Codes holds the cell index of each sample in [0, 2^bits − 1].
	Codes []int
	Step  float64
	// SQNRdB is measured against the unclipped input; +Inf when the
	// quantization error is exactly zero.
	SQNRdB       float64
	Clipped      bool
	ClippedCount int
	Mode         Mode
	Bits         int
	LevelCount   int

	noise     []float64
	quantizer *Quantizer
}

// Noise returns the quantization error x − xq as a buffer.
func (r *Result) Noise() *buffer.Buffer {
	b, _ := buffer.New(r.noise, r.Quantized.SampleRate())
	return b
}

// Levels lists the reconstruction levels of the quantizer that produced r.
func (r *Result) Levels() []float64 {
	return r.quantizer.Levels()
}
