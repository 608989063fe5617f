package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/buffer"
	"github.com/cwbudde/algo-siglab/dsp/modulation"
	dspsignal "github.com/cwbudde/algo-siglab/dsp/signal"
	"github.com/cwbudde/algo-siglab/dsp/spectrum"
)

type modulateExperiment struct {
	MessageHz    float64 `yaml:"fm"`
	CarrierHz    float64 `yaml:"fc"`
	SampleRate   float64 `yaml:"sample_rate"`
	Seconds      float64 `yaml:"seconds"`
	Index        float64 `yaml:"index"`
	Lower        bool    `yaml:"lower"`
	SSBCarrier   bool    `yaml:"ssb_carrier"`
	OutputPrefix string  `yaml:"output_prefix"`
}

func (e *modulateExperiment) fill() {
	if e.MessageHz == 0 {
		e.MessageHz = 200
	}
	if e.CarrierHz == 0 {
		e.CarrierHz = 5000
	}
	if e.SampleRate == 0 {
		e.SampleRate = 100000
	}
	if e.Seconds == 0 {
		e.Seconds = 0.025
	}
	if e.Index == 0 {
		e.Index = 1
	}
}

func modulateCommand(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger) error {
	var e modulateExperiment

	fs := flag.NewFlagSet("modulate", flag.ContinueOnError)
	fs.Float64Var(&e.MessageHz, "fm", 200, "message frequency in Hz")
	fs.Float64Var(&e.CarrierHz, "fc", 5000, "carrier frequency in Hz")
	fs.Float64Var(&e.SampleRate, "fs", 100000, "sample rate in Hz")
	fs.Float64Var(&e.Seconds, "dur", 0.025, "duration in seconds")
	fs.Float64Var(&e.Index, "index", 1, "DSB-FC modulation index")
	fs.BoolVar(&e.Lower, "lsb", false, "keep the lower sideband instead of the upper")
	fs.BoolVar(&e.SSBCarrier, "ssb-carrier", false, "add the carrier to the SSB signal")
	fs.StringVar(&e.OutputPrefix, "out-prefix", "", "write <prefix>-dsbfc.wav, -dsbsc.wav and -ssb.wav")

	if err := fs.Parse(args); err != nil {
		return err
	}

	return e.run(ctx, stdout, log)
}

func (e *modulateExperiment) run(ctx context.Context, w io.Writer, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := dspsignal.NewGenerator(e.SampleRate)
	if err != nil {
		return err
	}

	n := g.Samples(e.Seconds)

	message, err := g.Sine(e.MessageHz, 1, n)
	if err != nil {
		return err
	}

	carrier, err := modulation.SineCarrier(e.CarrierHz).Generate(n, e.SampleRate)
	if err != nil {
		return err
	}

	opts := []modulation.Option{
		modulation.WithCarrierHz(e.CarrierHz),
		modulation.WithModulationIndex(e.Index),
	}
	if e.Lower {
		opts = append(opts, modulation.WithLowerSideband())
	}
	if e.SSBCarrier {
		opts = append(opts, modulation.WithSSBCarrier())
	}

	res, err := modulation.Modulate(message, carrier, opts...)
	if err != nil {
		return err
	}

	log.Debug("modulated",
		zap.Int("samples", n),
		zap.Stringer("sideband", res.Sideband),
		zap.Float64("carrier_amplitude", res.Carrier.Amplitude),
		zap.Float64("carrier_phase", res.Carrier.Phase))

	lo, mid, hi := e.CarrierHz-e.MessageHz, e.CarrierHz, e.CarrierHz+e.MessageHz

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Signal\tPeak [Hz]\t%g Hz [dB]\t%g Hz [dB]\t%g Hz [dB]\n", lo, mid, hi)

	rows := []struct {
		name string
		s    *spectrum.Spectrum
	}{
		{"dsb-fc", res.DSBFCSpectrum},
		{"dsb-sc", res.DSBSCSpectrum},
		{"ssb-" + res.Sideband.String(), res.SSBSpectrum},
	}

	for _, row := range rows {
		p, err := spectrum.FindPeak(row.s, spectrum.WithBand(max(0, lo-e.MessageHz), hi+e.MessageHz))
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%.1f\t%.2f\t%.2f\t%.2f\n", row.name, p.FrequencyHz,
			levelAt(row.s, lo), levelAt(row.s, mid), levelAt(row.s, hi))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if e.OutputPrefix == "" {
		return nil
	}

	for suffix, buf := range map[string]*buffer.Buffer{
		"dsbfc": res.DSBFC,
		"dsbsc": res.DSBSC,
		"ssb":   res.SSB,
	} {
		path := fmt.Sprintf("%s-%s.wav", e.OutputPrefix, suffix)
		if err := writeScaled(path, buf); err != nil {
			return err
		}

		log.Info("wrote signal", zap.String("path", path))
	}

	return nil
}

func levelAt(s *spectrum.Spectrum, hz float64) float64 {
	return s.MagnitudeDB[s.NearestBin(hz)]
}
