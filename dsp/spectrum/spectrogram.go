package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
)

// STFT is a sequence of short-time spectra.
type STFT struct {
	// Times holds the centre time of each frame in seconds.
	Times     []float64
	Frames    []*Spectrum
	FrameSize int
	Hop       int
}

// Spectrogram analyzes consecutive frames of frameSize samples advanced by
// hop samples. Each frame is analyzed like [Analyze] with an FFT size equal
// to the frame size unless opts set a larger one. Trailing samples that do
// not fill a frame are dropped.
func Spectrogram(buf *buffer.Buffer, frameSize, hop int, opts ...Option) (*STFT, error) {
	n := buf.Len()
	if n == 0 {
		return nil, fmt.Errorf("spectrum: %w", core.ErrEmptySignal)
	}

	if frameSize <= 0 || hop <= 0 {
		return nil, fmt.Errorf("spectrum: frame size and hop must be > 0: %d, %d: %w", frameSize, hop, core.ErrInvalidConfig)
	}

	if frameSize > n {
		return nil, fmt.Errorf("spectrum: frame size %d exceeds signal length %d: %w", frameSize, n, core.ErrInvalidConfig)
	}

	count := 1 + (n-frameSize)/hop
	fs := buf.SampleRate()
	samples := buf.Samples()

	frameOpts := append([]Option{WithFFTSize(frameSize)}, opts...)

	out := &STFT{
		Times:     make([]float64, count),
		Frames:    make([]*Spectrum, count),
		FrameSize: frameSize,
		Hop:       hop,
	}

	for i := range count {
		start := i * hop

		frame, err := buffer.FromSlice(samples[start:start+frameSize], fs)
		if err != nil {
			return nil, fmt.Errorf("spectrum: frame %d: %w", i, err)
		}

		s, err := Analyze(frame, frameOpts...)
		if err != nil {
			return nil, fmt.Errorf("spectrum: frame %d: %w", i, err)
		}

		out.Frames[i] = s
		out.Times[i] = (float64(start) + float64(frameSize)/2) / fs
	}

	return out, nil
}
