package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-siglab/dsp/window"
)

type windowsExperiment struct {
	Size     int      `yaml:"size"`
	Names    []string `yaml:"names"`
	Alpha    *float64 `yaml:"alpha"`
	Periodic bool     `yaml:"periodic"`
}

func (e *windowsExperiment) fill() {
	if e.Size == 0 {
		e.Size = 1024
	}
}

func windowsCommand(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger) error {
	var e windowsExperiment

	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.IntVar(&e.Size, "size", 1024, "window length in samples")
	alpha := fs.Float64("alpha", math.NaN(), "parameter for kaiser and tukey")
	fs.BoolVar(&e.Periodic, "periodic", false, "use the periodic (FFT) form instead of the symmetric one")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if !math.IsNaN(*alpha) {
		e.Alpha = alpha
	}
	e.Names = fs.Args()

	return e.run(ctx, stdout, log)
}

func (e *windowsExperiment) run(ctx context.Context, w io.Writer, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	types := window.Types()
	if len(e.Names) > 0 {
		types = types[:0:0]
		for _, name := range e.Names {
			t, err := window.Parse(name)
			if err != nil {
				return err
			}

			types = append(types, t)
		}
	}

	var opts []window.Option
	if e.Periodic {
		opts = append(opts, window.WithPeriodic())
	}
	if e.Alpha != nil {
		opts = append(opts, window.WithAlpha(*e.Alpha))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tScallop [dB]\n")

	for _, t := range types {
		md, err := window.Describe(t, e.Size, opts...)
		if err != nil {
			log.Warn("skipping window", zap.Stringer("window", t), zap.Error(err))
			continue
		}

		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.2f\n", md.Name, e.Size, md.CoherentGain, md.ENBW, md.ScallopLossDB)
	}

	return tw.Flush()
}
