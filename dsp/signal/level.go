package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	timestats "github.com/cwbudde/algo-siglab/stats/time"
)

// levelEpsilon keeps peak-relative thresholds and gains finite on silence.
const levelEpsilon = 1e-12

// Normalize scales buf to targetPeak and returns a new buffer. Silence stays
// silent.
func Normalize(buf *buffer.Buffer, targetPeak float64) (*buffer.Buffer, error) {
	if targetPeak < 0 || !core.IsFinite(targetPeak) {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %v: %w", targetPeak, core.ErrInvalidRange)
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("signal: normalize: %w", core.ErrEmptySignal)
	}

	x := buf.Samples()
	out := make([]float64, len(x))

	if peak := timestats.Peak(x); peak > 0 && targetPeak > 0 {
		scale := targetPeak / peak
		for i, v := range x {
			out[i] = v * scale
		}
	}

	return buffer.FromSlice(out, buf.SampleRate())
}

// NormalizeDBFS scales buf so its peak sits at targetDBFS (for example −1).
func NormalizeDBFS(buf *buffer.Buffer, targetDBFS float64) (*buffer.Buffer, error) {
	if targetDBFS > 0 || math.IsNaN(targetDBFS) {
		return nil, fmt.Errorf("signal: dBFS target must be <= 0: %v: %w", targetDBFS, core.ErrInvalidRange)
	}

	return Normalize(buf, core.DBToLinear(targetDBFS))
}

// RemoveDC subtracts the mean of buf.
func RemoveDC(buf *buffer.Buffer) (*buffer.Buffer, error) {
	if buf.Len() == 0 {
		return nil, fmt.Errorf("signal: remove dc: %w", core.ErrEmptySignal)
	}

	x := buf.Samples()
	mean := timestats.DC(x)

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mean
	}

	return buffer.FromSlice(out, buf.SampleRate())
}

// Condition removes DC and normalizes the peak to targetDBFS, the usual
// preparation before comparing recordings.
func Condition(buf *buffer.Buffer, targetDBFS float64) (*buffer.Buffer, error) {
	centered, err := RemoveDC(buf)
	if err != nil {
		return nil, err
	}

	return NormalizeDBFS(centered, targetDBFS)
}

// TrimSilence drops leading and trailing samples whose level stays below
// thresholdDB relative to the peak, keeping padSeconds of margin on each side. A
// buffer with no sample above the threshold is returned unchanged.
func TrimSilence(buf *buffer.Buffer, thresholdDB, padSeconds float64) (*buffer.Buffer, error) {
	if buf.Len() == 0 {
		return nil, fmt.Errorf("signal: trim silence: %w", core.ErrEmptySignal)
	}

	if thresholdDB > 0 || math.IsNaN(thresholdDB) || padSeconds < 0 || !core.IsFinite(padSeconds) {
		return nil, fmt.Errorf("signal: trim silence needs threshold <= 0 dB and pad >= 0: %v, %v: %w",
			thresholdDB, padSeconds, core.ErrInvalidConfig)
	}

	x := buf.Samples()
	thr := core.DBToLinear(thresholdDB) * (timestats.Peak(x) + levelEpsilon)

	first, last := -1, -1
	for i, v := range x {
		if math.Abs(v) > thr {
			if first < 0 {
				first = i
			}

			last = i
		}
	}

	if first < 0 {
		return buf.Copy(), nil
	}

	pad := int(padSeconds * buf.SampleRate())
	start := max(0, first-pad)
	end := min(len(x), last+1+pad)

	return buffer.New(x[start:end], buf.SampleRate())
}

// Concat joins buffers of equal sample rate end to end.
func Concat(parts ...*buffer.Buffer) (*buffer.Buffer, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("signal: concat: %w", core.ErrEmptySignal)
	}

	var (
		out []float64
		fs  float64
	)

	for i, p := range parts {
		if p.Len() == 0 {
			return nil, fmt.Errorf("signal: concat part %d: %w", i, core.ErrEmptySignal)
		}

		if i == 0 {
			fs = p.SampleRate()
		} else if p.SampleRate() != fs {
			return nil, fmt.Errorf("signal: concat part %d at %v Hz, want %v Hz: %w", i, p.SampleRate(), fs, core.ErrInvalidConfig)
		}

		out = append(out, p.Samples()...)
	}

	return buffer.FromSlice(out, fs)
}
