package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
)

const (
	defaultBitDepth = 16
	wavFormatPCM    = 1
)

var errNotWAV = errors.New("siglab: not a valid WAV file")

// readWAV decodes a PCM WAV file into a mono buffer with samples in [−1, 1].
// Multichannel files are mixed down.
func readWAV(path string) (*buffer.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("siglab: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", errNotWAV, path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("siglab: read PCM from %s: %w", path, err)
	}

	if pcm.Format == nil || pcm.Format.NumChannels <= 0 || len(pcm.Data) == 0 {
		return nil, fmt.Errorf("siglab: %s: %w", path, core.ErrEmptySignal)
	}

	depth := pcm.SourceBitDepth
	if depth <= 0 {
		depth = int(dec.BitDepth)
	}

	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("siglab: %s: unsupported bit depth %d: %w", path, depth, core.ErrInvalidConfig)
	}

	full := float64(int64(1) << (depth - 1))
	x := make([]float64, len(pcm.Data))
	for i, v := range pcm.Data {
		// 8-bit WAV is unsigned.
		if depth == 8 {
			v -= 128
		}

		x[i] = float64(v) / full
	}

	channels, err := buffer.Deinterleave(x, pcm.Format.NumChannels, float64(pcm.Format.SampleRate))
	if err != nil {
		return nil, fmt.Errorf("siglab: %s: %w", path, err)
	}

	return buffer.MixDown(channels...)
}

// writeWAV encodes buf as mono PCM. Samples outside [−1, 1] are clamped.
func writeWAV(path string, buf *buffer.Buffer, bitDepth int) (err error) {
	if buf.Len() == 0 {
		return fmt.Errorf("siglab: write %s: %w", path, core.ErrEmptySignal)
	}

	if bitDepth != 8 && bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("siglab: write %s: bit depth %d: %w", path, bitDepth, core.ErrInvalidConfig)
	}

	rate := buf.SampleRate()
	if rate != math.Trunc(rate) {
		return fmt.Errorf("siglab: write %s: WAV needs an integer sample rate, got %v: %w", path, rate, core.ErrInvalidConfig)
	}

	full := float64(int64(1)<<(bitDepth-1)) - 1
	data := make([]int, buf.Len())
	for i, v := range buf.Samples() {
		data[i] = int(math.Round(core.Clamp(v, -1, 1) * full))
		if bitDepth == 8 {
			data[i] += 128
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("siglab: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("siglab: close %s: %w", path, cerr)
		}
	}()

	enc := wav.NewEncoder(f, int(rate), bitDepth, 1, wavFormatPCM)
	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(rate)},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("siglab: encode %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("siglab: finish %s: %w", path, err)
	}

	return nil
}
