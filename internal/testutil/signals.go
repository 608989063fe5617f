// Package testutil holds deterministic fixtures and tolerance checks shared
// by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns amplitude·sin(2π·f·n/fs) for n in [0, length).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return phasedSine(freqHz, sampleRate, amplitude, 0, length)
}

// DeterministicCosine returns amplitude·cos(2π·f·n/fs).
func DeterministicCosine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Cos(step*float64(i))
	}

	return out
}

// DeterministicTones sums unit-amplitude sines, one per frequency. It is
// the three-tone fixture the resampling tests sweep.
func DeterministicTones(sampleRate float64, length int, freqsHz ...float64) []float64 {
	out := make([]float64, max(length, 0))
	for _, f := range freqsHz {
		for i, v := range phasedSine(f, sampleRate, 1, 0, length) {
			out[i] += v
		}
	}

	return out
}

func phasedSine(freqHz, sampleRate, amplitude, phase float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}

	return out
}

// DeterministicNoise returns seeded uniform noise in [-amplitude, amplitude].
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}
