package core

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
		{name: "upper edge", value: 1, min: -1, max: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(7, 0, 3); got != 3 {
		t.Fatalf("ClampInt(7, 0, 3) = %d, want 3", got)
	}
	if got := ClampInt(-2, 0, 3); got != 0 {
		t.Fatalf("ClampInt(-2, 0, 3) = %d, want 0", got)
	}
	if got := ClampInt(2, 3, 0); got != 2 {
		t.Fatalf("ClampInt(2, 3, 0) = %d, want 2", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {4096, 4096}, {4097, 8192},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}

	if !IsPowerOfTwo(16384) || IsPowerOfTwo(44100) || IsPowerOfTwo(0) {
		t.Fatal("IsPowerOfTwo misclassified")
	}
}

func TestValidSampleRate(t *testing.T) {
	for _, fs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if ValidSampleRate(fs) {
			t.Errorf("ValidSampleRate(%v) = true, want false", fs)
		}
	}
	if !ValidSampleRate(44100) {
		t.Fatal("ValidSampleRate(44100) = false")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
}

func TestPowerRatioDB(t *testing.T) {
	if got := PowerRatioDB(1, 0.01); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("PowerRatioDB(1, 0.01) = %v, want 20", got)
	}
	if got := PowerRatioDB(0, 0); !math.IsInf(got, 1) {
		t.Fatalf("PowerRatioDB(0, 0) = %v, want +Inf", got)
	}
}

func TestErrorsWrap(t *testing.T) {
	err := fmt.Errorf("quantize: bits must be >= 1: %d: %w", 0, ErrInvalidConfig)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatal("wrapped error does not match ErrInvalidConfig")
	}
	if errors.Is(err, ErrInvalidRange) {
		t.Fatal("wrapped error matches unrelated sentinel")
	}
}
