package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/core"
	"github.com/cwbudde/algo-siglab/dsp/resample"
	dspsignal "github.com/cwbudde/algo-siglab/dsp/signal"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

type aliasExperiment struct {
	Rates        floatList `yaml:"rates"`
	Tones        floatList `yaml:"tones"`
	SampleRate   float64   `yaml:"sample_rate"`
	Seconds      float64   `yaml:"seconds"`
	Mode         string    `yaml:"mode"`
	OutputPrefix string    `yaml:"output_prefix"`
}

func (e *aliasExperiment) fill() {
	if len(e.Rates) == 0 {
		e.Rates = floatList{2000, 3000, 8000}
	}
	if len(e.Tones) == 0 {
		e.Tones = floatList{300, 800, 1500}
	}
	if e.SampleRate == 0 {
		e.SampleRate = 44100
	}
	if e.Seconds == 0 {
		e.Seconds = 1
	}
	if e.Mode == "" {
		e.Mode = resample.ModeFold.String()
	}
}

func aliasCommand(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger) error {
	var e aliasExperiment

	fs := flag.NewFlagSet("alias", flag.ContinueOnError)
	fs.Var(&e.Rates, "rates", "comma-separated target sample rates in Hz (default 2000,3000,8000)")
	fs.Var(&e.Tones, "tones", "comma-separated tone frequencies in Hz (default 300,800,1500)")
	fs.Float64Var(&e.SampleRate, "fs", 44100, "reference sample rate in Hz")
	fs.Float64Var(&e.Seconds, "dur", 1, "signal duration in seconds")
	fs.StringVar(&e.Mode, "mode", "fold", "out-of-band handling (fold, truncate)")
	fs.StringVar(&e.OutputPrefix, "out-prefix", "", "write each resampled signal to <prefix>-<rate>.wav")

	if err := fs.Parse(args); err != nil {
		return err
	}

	e.fill()

	return e.run(ctx, stdout, log)
}

func parseResampleMode(name string) (resample.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fold", "alias", "":
		return resample.ModeFold, nil
	case "truncate", "brickwall":
		return resample.ModeTruncate, nil
	default:
		return 0, fmt.Errorf("siglab: unknown resample mode %q: %w", name, core.ErrInvalidConfig)
	}
}

func (e *aliasExperiment) run(ctx context.Context, w io.Writer, log *zap.Logger) error {
	mode, err := parseResampleMode(e.Mode)
	if err != nil {
		return err
	}

	g, err := dspsignal.NewGenerator(e.SampleRate)
	if err != nil {
		return err
	}

	ref, err := g.MultiTone(1, g.Samples(e.Seconds), e.Tones...)
	if err != nil {
		return err
	}

	maxTone := slices.Max(e.Tones)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Rate [Hz]\tRegime\tTone [Hz]\tApparent [Hz]\tAmplitude\n")

	for _, rate := range e.Rates {
		if err := ctx.Err(); err != nil {
			return err
		}

		regime, err := resample.ClassifyRate(maxTone, rate)
		if err != nil {
			return err
		}

		out, err := resample.Resample(ref, rate, resample.WithMode(mode))
		if err != nil {
			return err
		}

		log.Debug("resampled",
			zap.Float64("rate", rate),
			zap.Stringer("regime", regime),
			zap.Int("samples", out.Len()))

		for _, tone := range e.Tones {
			apparent, err := resample.AliasFrequency(tone, rate)
			if err != nil {
				return err
			}

			amp, err := spectrum.ToneAmplitude(out, apparent)
			if err != nil {
				return err
			}

			fmt.Fprintf(tw, "%g\t%s\t%g\t%g\t%.3f\n", rate, regime, tone, apparent, amp)
		}

		if e.OutputPrefix != "" {
			if err := writeScaled(fmt.Sprintf("%s-%g.wav", e.OutputPrefix, rate), out); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// writeScaled peak-normalizes buf to -1 dBFS before writing, since sums and
// full-carrier signals exceed unit amplitude.
func writeScaled(path string, buf *buffer.Buffer) error {
	scaled, err := dspsignal.NormalizeDBFS(buf, conditionDBFS)
	if err != nil {
		return err
	}

	return writeWAV(path, scaled, defaultBitDepth)
}
