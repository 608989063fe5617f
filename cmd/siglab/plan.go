package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-siglab/dsp/core"
)

type experiment interface {
	fill()
	run(ctx context.Context, w io.Writer, log *zap.Logger) error
}

// plan is a yaml list of experiments run concurrently by the run command.
//
//	concurrency: 2
//	experiments:
//	  - name: sqnr-4bit
//	    quantize: {bits: 4, mode: mid-tread}
//	  - name: aliasing
//	    alias: {rates: [2000, 3000, 8000]}
type plan struct {
	Concurrency int         `yaml:"concurrency"`
	Experiments []planEntry `yaml:"experiments"`
}

// planEntry names one experiment. Exactly one kind must be set.
type planEntry struct {
	Name     string              `yaml:"name"`
	Quantize *quantizeExperiment `yaml:"quantize"`
	Peak     *peakExperiment     `yaml:"peak"`
	Alias    *aliasExperiment    `yaml:"alias"`
	Modulate *modulateExperiment `yaml:"modulate"`
	Windows  *windowsExperiment  `yaml:"windows"`
}

func (p planEntry) experiment() (experiment, error) {
	var found []experiment
	if p.Quantize != nil {
		found = append(found, p.Quantize)
	}
	if p.Peak != nil {
		found = append(found, p.Peak)
	}
	if p.Alias != nil {
		found = append(found, p.Alias)
	}
	if p.Modulate != nil {
		found = append(found, p.Modulate)
	}
	if p.Windows != nil {
		found = append(found, p.Windows)
	}

	if len(found) != 1 {
		return nil, fmt.Errorf("siglab: experiment %q sets %d kinds, want exactly 1: %w", p.Name, len(found), core.ErrInvalidConfig)
	}

	found[0].fill()

	return found[0], nil
}

// loadPlan reads and validates a yaml plan.
func loadPlan(path string) (*plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("siglab: read plan: %w", err)
	}

	return parsePlan(data)
}

func parsePlan(data []byte) (*plan, error) {
	var p plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("siglab: parse plan: %w", err)
	}

	if len(p.Experiments) == 0 {
		return nil, fmt.Errorf("siglab: plan has no experiments: %w", core.ErrInvalidConfig)
	}

	if p.Concurrency < 0 {
		return nil, fmt.Errorf("siglab: concurrency must be >= 0: %d: %w", p.Concurrency, core.ErrInvalidConfig)
	}

	for i := range p.Experiments {
		if p.Experiments[i].Name == "" {
			p.Experiments[i].Name = fmt.Sprintf("experiment-%d", i+1)
		}

		if _, err := p.Experiments[i].experiment(); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

func runCommand(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("config", "", "yaml experiment plan")
	jobs := fs.Int("jobs", 0, "override the plan concurrency (0: keep)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errors.New("siglab: run needs -config")
	}

	p, err := loadPlan(*path)
	if err != nil {
		return err
	}

	if *jobs > 0 {
		p.Concurrency = *jobs
	}

	return p.run(ctx, stdout, log)
}

// run executes every experiment, at most Concurrency at a time (GOMAXPROCS
// when unset), and writes their reports to w in plan order. The first
// failure cancels the experiments that have not started.
func (p *plan) run(ctx context.Context, w io.Writer, log *zap.Logger) error {
	limit := p.Concurrency
	if limit == 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	reports := make([]bytes.Buffer, len(p.Experiments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, entry := range p.Experiments {
		exp, err := entry.experiment()
		if err != nil {
			return err
		}

		g.Go(func() error {
			elog := log.With(zap.String("experiment", entry.Name))
			elog.Debug("starting")

			if err := exp.run(ctx, &reports[i], elog); err != nil {
				return fmt.Errorf("siglab: experiment %q: %w", entry.Name, err)
			}

			elog.Info("finished")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, entry := range p.Experiments {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "== %s ==\n", entry.Name)
		if _, err := reports[i].WriteTo(w); err != nil {
			return err
		}
	}

	return nil
}
