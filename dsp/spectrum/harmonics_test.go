package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/internal/testutil"
)

func mustBuffer(t *testing.T, x []float64, fs float64) *buffer.Buffer {
	t.Helper()

	buf, err := buffer.New(x, fs)
	if err != nil {
		t.Fatalf("buffer.New() error = %v", err)
	}

	return buf
}

func TestHarmonics(t *testing.T) {
	got, err := Harmonics(440, 2000)
	if err != nil {
		t.Fatalf("Harmonics() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{440, 880, 1320, 1760}, 0)

	inclusive, err := Harmonics(500, 1500)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, inclusive, []float64{500, 1000, 1500}, 0)

	none, err := Harmonics(500, 100)
	if err != nil {
		t.Fatal(err)
	}

	if len(none) != 0 {
		t.Fatalf("Harmonics(500, 100) = %v, want empty", none)
	}
}

func TestHarmonicsErrors(t *testing.T) {
	for _, tc := range [][2]float64{
		{0, 100}, {-1, 100}, {100, -1}, {math.NaN(), 10},
		{1e-9, 1}, {1, MaxHarmonics + 1}, {math.SmallestNonzeroFloat64, 20000},
	} {
		if _, err := Harmonics(tc[0], tc[1]); !errors.Is(err, core.ErrInvalidConfig) {
			t.Fatalf("Harmonics(%v, %v) error = %v, want ErrInvalidConfig", tc[0], tc[1], err)
		}
	}
}

func TestHarmonicsAtLimit(t *testing.T) {
	marks, err := Harmonics(1, MaxHarmonics)
	if err != nil {
		t.Fatalf("Harmonics(1, MaxHarmonics) error = %v", err)
	}

	if len(marks) != MaxHarmonics || marks[len(marks)-1] != MaxHarmonics {
		t.Fatalf("got %d marks ending at %v", len(marks), marks[len(marks)-1])
	}
}

func TestHarmonicLevels(t *testing.T) {
	const fs = 8000.0

	// Fundamental 500 Hz with a third harmonic 20 dB down; bins are exact
	// at nfft = 2048.
	x := make([]float64, 2048)
	for i := range x {
		tt := float64(i) / fs
		x[i] = math.Sin(2*math.Pi*500*tt) + 0.1*math.Sin(2*math.Pi*1500*tt)
	}

	s, err := Analyze(mustBuffer(t, x, fs), WithFFTSize(2048))
	if err != nil {
		t.Fatal(err)
	}

	levels, err := HarmonicLevels(s, 500, 10000)
	if err != nil {
		t.Fatalf("HarmonicLevels() error = %v", err)
	}

	if len(levels) != 8 {
		t.Fatalf("len(levels) = %d, want 8 (marks up to Nyquist)", len(levels))
	}

	if levels[0].Order != 1 || math.Abs(levels[0].Magnitude-1) > 1e-9 {
		t.Fatalf("fundamental = %+v", levels[0])
	}

	if math.Abs(levels[2].MagnitudeDB-(-20)) > 1e-6 {
		t.Fatalf("third harmonic dB = %v, want -20", levels[2].MagnitudeDB)
	}

	if levels[1].MagnitudeDB > -100 {
		t.Fatalf("second harmonic dB = %v, want near floor", levels[1].MagnitudeDB)
	}
}

func TestSpectrogram(t *testing.T) {
	buf := sineBuffer(t, 1000, 8000, 1, 10000)

	st, err := Spectrogram(buf, 2048, 1024)
	if err != nil {
		t.Fatalf("Spectrogram() error = %v", err)
	}

	wantFrames := 1 + (10000-2048)/1024
	if len(st.Frames) != wantFrames || len(st.Times) != wantFrames {
		t.Fatalf("frames = %d/%d, want %d", len(st.Frames), len(st.Times), wantFrames)
	}

	if got, want := st.Times[0], 1024.0/8000; math.Abs(got-want) > 1e-12 {
		t.Fatalf("Times[0] = %v, want %v", got, want)
	}

	for i, fr := range st.Frames {
		if fr.FFTSize != 2048 {
			t.Fatalf("frame %d FFTSize = %d, want 2048", i, fr.FFTSize)
		}

		p, err := FindPeak(fr)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(p.FrequencyHz-1000) > fr.BinWidth() {
			t.Fatalf("frame %d peak = %v, want 1000", i, p.FrequencyHz)
		}
	}
}

func TestSpectrogramErrors(t *testing.T) {
	buf := sineBuffer(t, 1000, 8000, 1, 100)

	for _, tc := range [][2]int{{0, 10}, {10, 0}, {200, 10}} {
		if _, err := Spectrogram(buf, tc[0], tc[1]); !errors.Is(err, core.ErrInvalidConfig) {
			t.Fatalf("Spectrogram(%d, %d) error = %v, want ErrInvalidConfig", tc[0], tc[1], err)
		}
	}

	if _, err := Spectrogram(nil, 8, 4); !errors.Is(err, core.ErrEmptySignal) {
		t.Fatalf("nil buffer error = %v", err)
	}
}

func TestToneAmplitude(t *testing.T) {
	buf := sineBuffer(t, 1000, 8000, 0.7, 4000)

	on, err := ToneAmplitude(buf, 1000)
	if err != nil {
		t.Fatalf("ToneAmplitude() error = %v", err)
	}

	if math.Abs(on-0.7) > 1e-6 {
		t.Fatalf("ToneAmplitude(1000) = %v, want 0.7", on)
	}

	off, err := ToneAmplitude(buf, 2500)
	if err != nil {
		t.Fatal(err)
	}

	if off > 1e-6 {
		t.Fatalf("ToneAmplitude(2500) = %v, want about 0", off)
	}

	if _, err := ToneAmplitude(buf, 5000); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("above Nyquist error = %v, want ErrInvalidRange", err)
	}
}

func TestGoertzelMatchesAnalyzeBin(t *testing.T) {
	x := testutil.DeterministicSine(750, 8000, 1, 512)

	g, err := NewGoertzel(750, 8000)
	if err != nil {
		t.Fatal(err)
	}

	g.ProcessBlock(x)
	first := g.Magnitude()

	g.Reset()
	g.ProcessBlock(x)

	if g.Magnitude() != first {
		t.Fatalf("Reset did not clear state: %v != %v", g.Magnitude(), first)
	}

	// 750 Hz is bin 48 of a 512-point DFT; a rectangular window gives N/2.
	if math.Abs(first-256) > 1e-6 {
		t.Fatalf("Goertzel magnitude = %v, want 256", first)
	}
}
