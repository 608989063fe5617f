package quantize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
)

// MaxBits is the largest supported resolution.
const MaxBits = 32

// Config describes a uniform quantizer.
type Config struct {
	Bits int
	Min  float64
	Max  float64
	Mode Mode
	// Dither is added before quantization, drawn from a generator seeded
	// with DitherSeed on every Apply.
	Dither     Dither
	DitherSeed int64
}

// Validate reports whether c describes a usable quantizer.
func (c Config) Validate() error {
	if c.Bits < 1 || c.Bits > MaxBits {
		return fmt.Errorf("quantize: bits must be in [1, %d]: %d: %w", MaxBits, c.Bits, core.ErrInvalidConfig)
	}

	if !core.IsFinite(c.Min) || !core.IsFinite(c.Max) || !(c.Max > c.Min) {
		return fmt.Errorf("quantize: range must satisfy min < max: [%v, %v]: %w", c.Min, c.Max, core.ErrInvalidRange)
	}

	if c.Mode != ModeMidRise && c.Mode != ModeMidTread {
		return fmt.Errorf("quantize: unknown mode %d: %w", int(c.Mode), core.ErrInvalidConfig)
	}

	if !c.Dither.Valid() {
		return fmt.Errorf("quantize: unknown dither %d: %w", int(c.Dither), core.ErrInvalidConfig)
	}

	return nil
}

// Quantizer maps samples onto a fixed level grid. The zero value is not
// usable; construct with [New] or [FromConfig].
type Quantizer struct {
	cfg    Config
	levels int
	step   float64
	// lo and hi bound the clipping interval.
	lo, hi float64
	// maxCode bounds mid-tread codes to [-maxCode, maxCode].
	maxCode int
}

// New returns a quantizer with the given resolution, range and mode.
func New(bits int, minValue, maxValue float64, mode Mode) (*Quantizer, error) {
	return FromConfig(Config{Bits: bits, Min: minValue, Max: maxValue, Mode: mode})
}

// FromConfig returns a quantizer for cfg.
func FromConfig(cfg Config) (*Quantizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	q := &Quantizer{
		cfg:    cfg,
		levels: 1 << cfg.Bits,
	}

	switch cfg.Mode {
	case ModeMidTread:
		xmax := math.Max(math.Abs(cfg.Min), math.Abs(cfg.Max))
		q.step = 2 * xmax / float64(q.levels-1)
		q.lo, q.hi = -xmax, xmax
		q.maxCode = q.levels/2 - 1
	default:
		q.step = (cfg.Max - cfg.Min) / float64(q.levels)
		q.lo, q.hi = cfg.Min, cfg.Max
	}

	return q, nil
}

// Config returns the quantizer configuration.
func (q *Quantizer) Config() Config { return q.cfg }

// Step returns the level spacing Δ.
func (q *Quantizer) Step() float64 { return q.step }

// LevelCount returns 2^bits, the size of the code space.
func (q *Quantizer) LevelCount() int { return q.levels }

// Value quantizes a single sample and returns the reconstruction level, its
// cell index and whether the sample was clipped.
func (q *Quantizer) Value(x float64) (level float64, index int, clipped bool) {
	c := x
	if c < q.lo {
		c, clipped = q.lo, true
	} else if c > q.hi {
		c, clipped = q.hi, true
	}

	if q.cfg.Mode == ModeMidTread {
		// math.Round rounds half away from zero.
		code := core.ClampInt(int(math.Round(c/q.step)), -q.maxCode, q.maxCode)
		return float64(code) * q.step, code + q.levels/2, clipped
	}

	idx := core.ClampInt(int(math.Floor((c-q.cfg.Min)/q.step)), 0, q.levels-1)

	return q.cfg.Min + (float64(idx)+0.5)*q.step, idx, clipped
}

// Levels lists every reconstruction level in ascending order. For large bit
// depths this is a large allocation.
func (q *Quantizer) Levels() []float64 {
	if q.cfg.Mode == ModeMidTread {
		out := make([]float64, 0, 2*q.maxCode+1)
		for k := -q.maxCode; k <= q.maxCode; k++ {
			out = append(out, float64(k)*q.step)
		}

		return out
	}

	out := make([]float64, q.levels)
	for i := range out {
		out[i] = q.cfg.Min + (float64(i)+0.5)*q.step
	}

	return out
}

// Apply quantizes every sample of buf. With dither enabled a sample counts
// as clipped only when the undithered input lies outside the range.
func (q *Quantizer) Apply(buf *buffer.Buffer) (*Result, error) {
	n := buf.Len()
	if n == 0 {
		return nil, fmt.Errorf("quantize: %w", core.ErrEmptySignal)
	}

	x := buf.Samples()
	out := make([]float64, n)
	codes := make([]int, n)
	clipped := 0
	dither := q.cfg.Dither.source(q.step, q.cfg.DitherSeed)

	for i, v := range x {
		in := v
		if dither != nil {
			in += dither()
		}

		level, idx, _ := q.Value(in)
		out[i] = level
		codes[i] = idx

		if v < q.lo || v > q.hi {
			clipped++
		}
	}

	noise := make([]float64, n)
	floats.SubTo(noise, x, out)

	quantized, err := buffer.FromSlice(out, buf.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("quantize: %w", err)
	}

	signalPower := floats.Dot(x, x) / float64(n)
	noisePower := floats.Dot(noise, noise) / float64(n)

	return &Result{
		Quantized:    quantized,
		Codes:        codes,
		Step:         q.step,
		SQNRdB:       core.PowerRatioDB(signalPower, noisePower),
		Clipped:      clipped > 0,
		ClippedCount: clipped,
		Mode:         q.cfg.Mode,
		Bits:         q.cfg.Bits,
		LevelCount:   q.levels,
		noise:        noise,
		quantizer:    q,
	}, nil
}

// Quantize is a one-shot helper equivalent to FromConfig(cfg) followed by
// Apply(buf).
func Quantize(buf *buffer.Buffer, cfg Config) (*Result, error) {
	q, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return q.Apply(buf)
}

// TheoreticalSQNR returns 6.02·bits + 1.76 dB, the ideal SQNR of a full-scale
// sinusoid.
func TheoreticalSQNR(bits int) float64 {
	return 6.02*float64(bits) + 1.76
}
