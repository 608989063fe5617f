package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	dspsignal "github.com/cwbudde/algo-siglab/dsp/signal"
)

// source selects the analysed signal: a WAV file when Input is set,
// otherwise a generated sine.
type source struct {
	Input      string  `yaml:"input"`
	ToneHz     float64 `yaml:"tone_hz"`
	Amplitude  float64 `yaml:"amplitude"`
	SampleRate float64 `yaml:"sample_rate"`
	Seconds    float64 `yaml:"seconds"`
}

func (s *source) register(fs *flag.FlagSet, toneHz, sampleRate float64) {
	fs.StringVar(&s.Input, "in", "", "input WAV file (overrides the generated tone)")
	fs.Float64Var(&s.ToneHz, "tone", toneHz, "generated tone frequency in Hz")
	fs.Float64Var(&s.Amplitude, "amp", 1, "generated tone amplitude")
	fs.Float64Var(&s.SampleRate, "fs", sampleRate, "generated tone sample rate in Hz")
	fs.Float64Var(&s.Seconds, "dur", 1, "generated tone duration in seconds")
}

func (s source) describe() string {
	if s.Input != "" {
		return s.Input
	}

	return fmt.Sprintf("sine %g Hz @ %g Hz, %g s", s.ToneHz, s.SampleRate, s.Seconds)
}

func (s source) load() (*buffer.Buffer, error) {
	if s.Input != "" {
		return readWAV(s.Input)
	}

	g, err := dspsignal.NewGenerator(s.SampleRate)
	if err != nil {
		return nil, err
	}

	amp := s.Amplitude
	if amp == 0 {
		amp = 1
	}

	return g.Sine(s.ToneHz, amp, g.Samples(s.Seconds))
}

// floatList is a comma-separated list flag such as "2000,3000,8000".
type floatList []float64

func (l *floatList) String() string {
	if l == nil {
		return ""
	}

	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	var out floatList
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("siglab: %q is not a number: %w", part, core.ErrInvalidConfig)
		}

		out = append(out, v)
	}

	if len(out) == 0 {
		return fmt.Errorf("siglab: empty list: %w", core.ErrInvalidConfig)
	}

	*l = out
	return nil
}
