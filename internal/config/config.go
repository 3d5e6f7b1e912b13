package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap/zapcore"

	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/audio"
)

// ErrUsage marks errors caused by bad command-line arguments.
var ErrUsage = errors.New("usage")

type Config struct {
	Out         string
	Tone        audio.Params
	MetricsFile string
	LogLevel    zapcore.Level
}

// Load parses command-line arguments (without the program name). Tone values
// are not range checked. -h returns flag.ErrHelp after printing usage to output.
func Load(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("gentone", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Generate a 440 Hz + detuned 2x harmonic WAV.")
		fmt.Fprintln(fs.Output(), "\nUsage: gentone --out PATH [options]")
		fs.PrintDefaults()
	}

	def := audio.DefaultParams()
	fs.StringVar(&cfg.Out, "out", "", "Output WAV path (required)")
	fs.IntVar(&cfg.Tone.SampleRate, "sr", def.SampleRate, "Sample rate (Hz)")
	fs.Float64Var(&cfg.Tone.Duration, "dur", def.Duration, "Duration (seconds)")
	fs.Float64Var(&cfg.Tone.F0, "f0", def.F0, "Fundamental frequency (Hz)")
	fs.Float64Var(&cfg.Tone.Epsilon, "eps", def.Epsilon, "Fractional detune for 2x (e.g. 0.001 = +0.1%)")
	fs.Float64Var(&cfg.Tone.A0, "a0", def.A0, "Amplitude of f0 (0..1)")
	fs.Float64Var(&cfg.Tone.A2, "a2", def.A2, "Amplitude of 2x (0..1)")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics here after the run")
	fs.TextVar(&cfg.LogLevel, "log-level", zapcore.InfoLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("%w: unexpected arguments %q", ErrUsage, fs.Args())
	}
	if cfg.Out == "" {
		fs.Usage()
		return nil, fmt.Errorf("%w: --out is required", ErrUsage)
	}
	return cfg, nil
}
