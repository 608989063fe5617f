package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
	"github.com/cwbudde/algo-siglab/internal/testutil"
)

const refRate = 44100.0

func mustBuffer(t *testing.T, x []float64, fs float64) *buffer.Buffer {
	t.Helper()

	buf, err := buffer.New(x, fs)
	if err != nil {
		t.Fatalf("buffer.New() error = %v", err)
	}

	return buf
}

// threeTones is one second of 300 + 800 + 1500 Hz sines at 44.1 kHz.
func threeTones(t *testing.T) *buffer.Buffer {
	t.Helper()

	x := testutil.DeterministicTones(refRate, int(refRate), 300, 800, 1500)

	return mustBuffer(t, x, refRate)
}

func toneAmplitude(t *testing.T, buf *buffer.Buffer, hz float64) float64 {
	t.Helper()

	a, err := spectrum.ToneAmplitude(buf, hz)
	if err != nil {
		t.Fatalf("ToneAmplitude(%v) error = %v", hz, err)
	}

	return a
}

func TestOutputLen(t *testing.T) {
	tests := []struct {
		n        int
		fs, to   float64
		want     int
		wantFail bool
	}{
		{44100, 44100, 2000, 2000, false},
		{44100, 44100, 8000, 8000, false},
		{100, 1000, 333, 33, false},
		{100, 1000, 335, 34, false},
		{10, 1000, 4000, 40, false},
		{1, 44100, 8000, 0, true},
	}

	for _, tt := range tests {
		got, err := OutputLen(tt.n, tt.fs, tt.to)
		if tt.wantFail {
			if !errors.Is(err, ErrEmptyOutput) || !errors.Is(err, core.ErrInvalidConfig) {
				t.Fatalf("OutputLen(%d, %v, %v) error = %v, want ErrEmptyOutput", tt.n, tt.fs, tt.to, err)
			}

			continue
		}

		if err != nil || got != tt.want {
			t.Fatalf("OutputLen(%d, %v, %v) = %d, %v, want %d", tt.n, tt.fs, tt.to, got, err, tt.want)
		}
	}
}

func TestSubNyquistAliases(t *testing.T) {
	out, err := Resample(threeTones(t), 2000)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	if out.Len() != 2000 || out.SampleRate() != 2000 {
		t.Fatalf("Len() = %d, SampleRate() = %v, want 2000, 2000", out.Len(), out.SampleRate())
	}

	// 1500 Hz folds to |1500 - 2000| = 500 Hz.
	for _, hz := range []float64{300, 500, 800} {
		if a := toneAmplitude(t, out, hz); math.Abs(a-1) > 1e-6 {
			t.Fatalf("amplitude at %v Hz = %v, want 1", hz, a)
		}
	}

	s, err := spectrum.Analyze(out)
	if err != nil {
		t.Fatal(err)
	}

	alias, err := spectrum.FindPeak(s, spectrum.WithBand(400, 600))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(alias.FrequencyHz-500) > s.BinWidth() {
		t.Fatalf("alias peak = %v Hz, want 500", alias.FrequencyHz)
	}

	if alias.MagnitudeDB < -1 {
		t.Fatalf("alias peak level = %v dB, want about 0", alias.MagnitudeDB)
	}
}

func TestTruncateRemovesOutOfBandTone(t *testing.T) {
	out, err := Resample(threeTones(t), 2000, WithMode(ModeTruncate))
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	if a := toneAmplitude(t, out, 500); a > 1e-6 {
		t.Fatalf("amplitude at 500 Hz = %v, want about 0", a)
	}

	for _, hz := range []float64{300, 800} {
		if a := toneAmplitude(t, out, hz); math.Abs(a-1) > 1e-6 {
			t.Fatalf("amplitude at %v Hz = %v, want 1", hz, a)
		}
	}
}

func TestAtNyquistSineVanishes(t *testing.T) {
	out, err := Resample(threeTones(t), 3000)
	if err != nil {
		t.Fatal(err)
	}

	for _, hz := range []float64{300, 800} {
		if a := toneAmplitude(t, out, hz); math.Abs(a-1) > 1e-6 {
			t.Fatalf("amplitude at %v Hz = %v, want 1", hz, a)
		}
	}

	// A sine at exactly fs/2 is sampled at its zero crossings.
	if a := toneAmplitude(t, out, 1500); a > 1e-6 {
		t.Fatalf("amplitude at 1500 Hz = %v, want about 0", a)
	}
}

func TestSuperNyquistKeepsAllTones(t *testing.T) {
	out, err := Resample(threeTones(t), 8000)
	if err != nil {
		t.Fatal(err)
	}

	s, err := spectrum.Analyze(out)
	if err != nil {
		t.Fatal(err)
	}

	for _, hz := range []float64{300, 800, 1500} {
		p, err := spectrum.FindPeak(s, spectrum.WithBand(hz-50, hz+50))
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(p.FrequencyHz-hz) > s.BinWidth() {
			t.Fatalf("peak near %v Hz found at %v", hz, p.FrequencyHz)
		}

		if a := toneAmplitude(t, out, hz); math.Abs(a-1) > 1e-6 {
			t.Fatalf("amplitude at %v Hz = %v, want 1", hz, a)
		}
	}

	if a := toneAmplitude(t, out, 500); a > 1e-6 {
		t.Fatalf("unexpected energy at 500 Hz: %v", a)
	}
}

func TestUpsampleMatchesContinuousSignal(t *testing.T) {
	tests := []struct {
		n      int
		fs, to float64
		hz     float64
	}{
		{100, 1000, 4000, 100},
		{99, 990, 1980, 30},
		{64, 64, 100, 5},
	}

	for _, tt := range tests {
		x := testutil.DeterministicSine(tt.hz, tt.fs, 1, tt.n)

		out, err := Resample(mustBuffer(t, x, tt.fs), tt.to)
		if err != nil {
			t.Fatalf("Resample() error = %v", err)
		}

		want := testutil.DeterministicSine(tt.hz, tt.to, 1, out.Len())
		testutil.RequireSliceNearlyEqual(t, out.Samples(), want, 1e-9)
	}
}

func TestSameRateIsIdentity(t *testing.T) {
	for _, n := range []int{31, 32} {
		x := testutil.DeterministicNoise(5, 1, n)

		for _, mode := range []Mode{ModeFold, ModeTruncate} {
			out, err := Resample(mustBuffer(t, x, 8000), 8000, WithMode(mode))
			if err != nil {
				t.Fatal(err)
			}

			testutil.RequireSliceNearlyEqual(t, out.Samples(), x, 1e-12)
		}
	}
}

func TestResampleErrors(t *testing.T) {
	buf := mustBuffer(t, []float64{1, 2, 3}, 100)

	if _, err := Resample(nil, 100); !errors.Is(err, core.ErrEmptySignal) {
		t.Fatalf("nil buffer error = %v", err)
	}

	for _, fs := range []float64{0, -8000, math.NaN(), math.Inf(1)} {
		_, err := Resample(buf, fs)
		if !errors.Is(err, ErrInvalidRate) || !errors.Is(err, core.ErrInvalidRange) {
			t.Fatalf("Resample(fs=%v) error = %v, want ErrInvalidRate", fs, err)
		}
	}

	if _, err := Resample(buf, 10); !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("zero-length output error = %v", err)
	}
}

func TestClassifyRate(t *testing.T) {
	tests := []struct {
		fs   float64
		want Regime
	}{
		{2000, SubNyquist},
		{3000, AtNyquist},
		{8000, SuperNyquist},
	}

	for _, tt := range tests {
		got, err := ClassifyRate(1500, tt.fs)
		if err != nil || got != tt.want {
			t.Fatalf("ClassifyRate(1500, %v) = %v, %v, want %v", tt.fs, got, err, tt.want)
		}
	}

	if _, err := ClassifyRate(1500, 0); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("ClassifyRate(fs=0) error = %v", err)
	}

	if _, err := ClassifyRate(-1, 1000); !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("ClassifyRate(f=-1) error = %v", err)
	}
}

func TestAliasFrequency(t *testing.T) {
	tests := []struct {
		f, fs, want float64
	}{
		{1500, 2000, 500},
		{800, 2000, 800},
		{1500, 3000, 1500},
		{2100, 2000, 100},
		{300, 8000, 300},
		{-300, 8000, 300},
		{4000, 4000, 0},
	}

	for _, tt := range tests {
		got, err := AliasFrequency(tt.f, tt.fs)
		if err != nil || math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("AliasFrequency(%v, %v) = %v, %v, want %v", tt.f, tt.fs, got, err, tt.want)
		}
	}
}
