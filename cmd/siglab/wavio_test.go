package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/internal/testutil"
)

func TestWAVRoundTrip(t *testing.T) {
	tests := []struct {
		depth int
		tol   float64
	}{
		{depth: 16, tol: 2.0 / 32768},
		{depth: 24, tol: 2.0 / 8388608},
	}

	x := testutil.DeterministicSine(440, 8000, 0.8, 800)

	for _, tt := range tests {
		in, err := buffer.New(x, 8000)
		if err != nil {
			t.Fatal(err)
		}

		path := filepath.Join(t.TempDir(), "tone.wav")
		if err := writeWAV(path, in, tt.depth); err != nil {
			t.Fatalf("%d bit: writeWAV() error = %v", tt.depth, err)
		}

		out, err := readWAV(path)
		if err != nil {
			t.Fatalf("%d bit: readWAV() error = %v", tt.depth, err)
		}

		if out.SampleRate() != 8000 {
			t.Fatalf("%d bit: SampleRate() = %v, want 8000", tt.depth, out.SampleRate())
		}

		testutil.RequireSliceNearlyEqual(t, out.Samples(), x, tt.tol)
	}
}

func TestWriteWAVClampsAndValidates(t *testing.T) {
	dir := t.TempDir()

	loud, err := buffer.New([]float64{2, -2, 0}, 1000)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "loud.wav")
	if err := writeWAV(path, loud, 16); err != nil {
		t.Fatal(err)
	}

	back, err := readWAV(path)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, back.Samples(), []float64{32767.0 / 32768, -32767.0 / 32768, 0}, 1e-12)

	if err := writeWAV(filepath.Join(dir, "x.wav"), loud, 12); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("12-bit error = %v", err)
	}

	odd, err := buffer.New([]float64{0}, 44100.5)
	if err != nil {
		t.Fatal(err)
	}

	if err := writeWAV(filepath.Join(dir, "odd.wav"), odd, 16); !errors.Is(err, core.ErrInvalidConfig) {
		t.Fatalf("fractional rate error = %v", err)
	}
}

func TestReadWAVRejectsOtherFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio at all, just some text"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := readWAV(path); !errors.Is(err, errNotWAV) {
		t.Fatalf("readWAV() error = %v, want errNotWAV", err)
	}

	if _, err := readWAV(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
