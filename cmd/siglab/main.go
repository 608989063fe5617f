// Command siglab runs signal-lab experiments on generated tones or WAV files.
//
// Usage:
//
//	siglab [global flags] <command> [flags]
//
// Commands:
//
//	quantize   uniform quantization and SQNR against 6.02·b + 1.76 dB
//	peak       windowed spectrum peak search with harmonic marks
//	alias      resample a three-tone signal and report aliases
//	modulate   DSB-FC, DSB-SC and SSB spectra of a tone
//	windows    spectral properties of the window functions
//	run        run a yaml plan of experiments concurrently
//
// Examples:
//
//	siglab quantize -bits 4 -mode mid-tread
//	siglab peak -in take.wav -fmin 50 -fmax 2000 -harmonics 110
//	siglab alias -rates 2000,3000,8000
//	siglab -log-level debug run -config plan.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"go.uber.org/zap"
)

type command func(ctx context.Context, args []string, stdout io.Writer, log *zap.Logger) error

var commands = map[string]command{
	"quantize": quantizeCommand,
	"peak":     peakCommand,
	"alias":    aliasCommand,
	"modulate": modulateCommand,
	"windows":  windowsCommand,
	"run":      runCommand,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("siglab", flag.ContinueOnError)
	fs.SetOutput(stderr)

	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logJSON := fs.Bool("log-json", false, "emit JSON logs instead of console output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: siglab [global flags] <command> [flags]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		for _, name := range commandNames() {
			fmt.Fprintf(stderr, "  %s\n", name)
		}
		fmt.Fprintf(stderr, "\nGlobal flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	log, err := newLogger(*logLevel, *logJSON, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		log.Error("unknown command", zap.String("command", name), zap.Strings("available", commandNames()))
		return 2
	}

	if err := cmd(ctx, fs.Args()[1:], stdout, log.Named(name)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		log.Error("command failed", zap.String("command", name), zap.Error(err))
		return 1
	}

	return 0
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
