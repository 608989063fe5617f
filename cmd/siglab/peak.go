package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	dspsignal "github.com/cwbudde/algo-siglab/dsp/signal"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

const (
	trimThresholdDB = -40
	trimPadSeconds  = 0.02
	conditionDBFS   = -1
)

type peakExperiment struct {
	source `yaml:",inline"`

	MinHz       float64 `yaml:"fmin"`
	MaxHz       float64 `yaml:"fmax"`
	Window      string  `yaml:"window"`
	FFTSize     int     `yaml:"nfft"`
	HarmonicsHz float64 `yaml:"harmonics"`
	Condition   bool    `yaml:"condition"`
}

func (e *peakExperiment) fill() {
	if e.ToneHz == 0 && e.Input == "" {
		e.ToneHz = 440
	}
	if e.SampleRate == 0 {
		e.SampleRate = 44100
	}
	if e.Seconds == 0 {
		e.Seconds = 1
	}
	if e.Window == "" {
		e.Window = "hann"
	}
}

func peakCommand(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger) error {
	var e peakExperiment

	fs := flag.NewFlagSet("peak", flag.ContinueOnError)
	e.register(fs, 440, 44100)
	fs.Float64Var(&e.MinHz, "fmin", 0, "lower edge of the peak search band in Hz (0: none)")
	fs.Float64Var(&e.MaxHz, "fmax", 0, "upper edge of the peak search band in Hz (0: none)")
	fs.StringVar(&e.Window, "window", "hann", "analysis window")
	fs.IntVar(&e.FFTSize, "nfft", 0, "FFT size (0: next power of two, at least 16384)")
	fs.Float64Var(&e.HarmonicsHz, "harmonics", 0, "fundamental whose harmonics are reported (0: none)")
	fs.BoolVar(&e.Condition, "condition", false, "trim silence, remove DC and normalize to -1 dBFS first")

	if err := fs.Parse(args); err != nil {
		return err
	}

	return e.run(ctx, stdout, log)
}

func (e *peakExperiment) run(ctx context.Context, w io.Writer, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf, err := e.load()
	if err != nil {
		return err
	}

	if e.Condition {
		if buf, err = conditioned(buf); err != nil {
			return err
		}

		log.Debug("conditioned input", zap.Int("samples", buf.Len()))
	}

	opts := []spectrum.Option{spectrum.WithWindowName(e.Window)}
	if e.FFTSize > 0 {
		opts = append(opts, spectrum.WithFFTSize(e.FFTSize))
	}

	s, err := spectrum.Analyze(buf, opts...)
	if err != nil {
		return err
	}

	var popts []spectrum.PeakOption
	if e.MinHz > 0 {
		popts = append(popts, spectrum.WithMinHz(e.MinHz))
	}
	if e.MaxHz > 0 {
		popts = append(popts, spectrum.WithMaxHz(e.MaxHz))
	}

	p, err := spectrum.FindPeak(s, popts...)
	if err != nil {
		return err
	}

	log.Debug("spectrum",
		zap.Int("nfft", s.FFTSize),
		zap.Float64("bin_hz", s.BinWidth()),
		zap.Stringer("window", s.Window))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "signal\t%s\n", e.describe())
	fmt.Fprintf(tw, "window\t%s\n", s.Window)
	fmt.Fprintf(tw, "nfft\t%d\n", s.FFTSize)
	fmt.Fprintf(tw, "peak\t%.2f Hz\n", p.FrequencyHz)
	fmt.Fprintf(tw, "level\t%.2f dB\n", p.MagnitudeDB)
	fmt.Fprintf(tw, "bin\t%d (offset %+.3f, refined %t)\n", p.Bin, p.Offset, p.Refined)

	if e.HarmonicsHz > 0 {
		upTo := s.SampleRate / 2
		if e.MaxHz > 0 {
			upTo = e.MaxHz
		}

		levels, err := spectrum.HarmonicLevels(s, e.HarmonicsHz, upTo)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "\nHarmonic\tFrequency [Hz]\tLevel [dB]\n")
		for _, h := range levels {
			fmt.Fprintf(tw, "%d\t%.1f\t%.2f\n", h.Order, h.FrequencyHz, h.MagnitudeDB)
		}
	}

	return tw.Flush()
}

func conditioned(buf *buffer.Buffer) (*buffer.Buffer, error) {
	trimmed, err := dspsignal.TrimSilence(buf, trimThresholdDB, trimPadSeconds)
	if err != nil {
		return nil, err
	}

	return dspsignal.Condition(trimmed, conditionDBFS)
}
