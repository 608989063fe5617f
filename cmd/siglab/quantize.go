package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/quantize"
)

type quantizeExperiment struct {
	source `yaml:",inline"`

	Bits   int     `yaml:"bits"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Mode   string  `yaml:"mode"`
	Dither string  `yaml:"dither"`
	Seed   int64   `yaml:"seed"`
	Output string  `yaml:"output"`
}

func (e *quantizeExperiment) fill() {
	if e.ToneHz == 0 && e.Input == "" {
		e.ToneHz = 997
	}
	if e.SampleRate == 0 {
		e.SampleRate = 8000
	}
	if e.Seconds == 0 {
		e.Seconds = 1
	}
	if e.Bits == 0 {
		e.Bits = 8
	}
	if e.Min == 0 && e.Max == 0 {
		e.Min, e.Max = -1, 1
	}
	if e.Mode == "" {
		e.Mode = quantize.ModeMidRise.String()
	}
}

func quantizeCommand(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger) error {
	var e quantizeExperiment

	fs := flag.NewFlagSet("quantize", flag.ContinueOnError)
	e.register(fs, 997, 8000)
	fs.IntVar(&e.Bits, "bits", 8, "bits per sample")
	fs.Float64Var(&e.Min, "min", -1, "lower edge of the quantizer range")
	fs.Float64Var(&e.Max, "max", 1, "upper edge of the quantizer range")
	fs.StringVar(&e.Mode, "mode", "mid-rise", "quantizer layout (mid-rise, mid-tread)")
	fs.StringVar(&e.Dither, "dither", "none", "dither added before quantization (none, rpdf, tpdf)")
	fs.Int64Var(&e.Seed, "seed", 1, "dither seed")
	fs.StringVar(&e.Output, "out", "", "write the quantized signal to this WAV file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	return e.run(ctx, stdout, log)
}

func (e *quantizeExperiment) run(ctx context.Context, w io.Writer, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode, err := quantize.ParseMode(e.Mode)
	if err != nil {
		return err
	}

	dither, err := quantize.ParseDither(e.Dither)
	if err != nil {
		return err
	}

	buf, err := e.load()
	if err != nil {
		return err
	}

	res, err := quantize.Quantize(buf, quantize.Config{
		Bits:       e.Bits,
		Min:        e.Min,
		Max:        e.Max,
		Mode:       mode,
		Dither:     dither,
		DitherSeed: e.Seed,
	})
	if err != nil {
		return err
	}

	log.Debug("quantized",
		zap.Int("samples", buf.Len()),
		zap.Int("bits", res.Bits),
		zap.Int("clipped", res.ClippedCount))

	if res.Clipped {
		log.Warn("input exceeds quantizer range",
			zap.Float64("min", e.Min), zap.Float64("max", e.Max), zap.Int("samples", res.ClippedCount))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "signal\t%s\n", e.describe())
	fmt.Fprintf(tw, "mode\t%s\n", res.Mode)
	fmt.Fprintf(tw, "dither\t%s\n", dither)
	fmt.Fprintf(tw, "bits\t%d\n", res.Bits)
	fmt.Fprintf(tw, "levels\t%d\n", res.LevelCount)
	fmt.Fprintf(tw, "step\t%.6g\n", res.Step)
	fmt.Fprintf(tw, "sqnr\t%.2f dB\n", res.SQNRdB)
	fmt.Fprintf(tw, "theory\t%.2f dB\n", quantize.TheoreticalSQNR(res.Bits))
	fmt.Fprintf(tw, "clipped\t%d\n", res.ClippedCount)
	if err := tw.Flush(); err != nil {
		return err
	}

	if e.Output != "" {
		if err := writeWAV(e.Output, res.Quantized, defaultBitDepth); err != nil {
			return err
		}

		log.Info("wrote quantized signal", zap.String("path", e.Output))
	}

	return nil
}
