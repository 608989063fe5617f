// Package time computes level statistics of time-domain signals.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length int
	// DC is the mean.
	DC     float64
	RMS    float64
	RMSdB  float64
	Peak   float64
	PeakDB float64
	// PeakPos is the index of the first sample reaching Peak.
	PeakPos int
	// Energy is the sum of squares and Power the mean square.
	Energy        float64
	Power         float64
	CrestFactor   float64
	CrestFactorDB float64
	ZeroCrossings int
}

// ampTodB converts an amplitude to decibels, -Inf for zero.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes all statistics of signal in one pass per reduction.
// An empty signal yields zero values and -Inf for every dB field.
func Calculate(signal []float64) Stats {
	if len(signal) == 0 {
		return Stats{
			RMSdB:         math.Inf(-1),
			PeakDB:        math.Inf(-1),
			CrestFactorDB: math.Inf(-1),
		}
	}

	energy := Energy(signal)
	power := energy / float64(len(signal))
	rms := math.Sqrt(power)
	pos := PeakIndex(signal)
	peak := math.Abs(signal[pos])

	s := Stats{
		Length:        len(signal),
		DC:            DC(signal),
		RMS:           rms,
		RMSdB:         ampTodB(rms),
		Peak:          peak,
		PeakDB:        ampTodB(peak),
		PeakPos:       pos,
		Energy:        energy,
		Power:         power,
		ZeroCrossings: ZeroCrossings(signal),
		CrestFactorDB: math.Inf(-1),
	}

	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactorDB = ampTodB(s.CrestFactor)
	}

	return s
}

// Energy returns the sum of squares of the signal.
func Energy(signal []float64) float64 {
	return floats.Dot(signal, signal)
}

// Power returns the mean square of the signal, 0 when empty.
func Power(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return Energy(signal) / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	return math.Sqrt(Power(signal))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return floats.SumCompensated(signal) / float64(len(signal))
}

// PeakIndex returns the index of the largest absolute sample, -1 when empty.
func PeakIndex(signal []float64) int {
	if len(signal) == 0 {
		return -1
	}

	hi, lo := floats.MaxIdx(signal), floats.MinIdx(signal)
	if -signal[lo] > signal[hi] {
		return lo
	}

	return hi
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Abs(signal[PeakIndex(signal)])
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}
