package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{"--out", "tone.wav"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Out != "tone.wav" {
		t.Errorf("expected out tone.wav, got %q", cfg.Out)
	}
	p := cfg.Tone
	if p.SampleRate != 48000 || p.Duration != 10 || p.F0 != 440 ||
		p.Epsilon != 0.001 || p.A0 != 0.5 || p.A2 != 0.25 {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if cfg.LogLevel != zapcore.InfoLevel {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.MetricsFile != "" {
		t.Errorf("expected metrics disabled, got %q", cfg.MetricsFile)
	}
}

func TestLoadAllFlags(t *testing.T) {
	args := []string{
		"--out=out/x.wav", "--sr", "8000", "--dur", "0.001", "--f0", "220.5",
		"--eps", "-0.02", "--a0", "1", "--a2", "0", "-log-level", "debug",
		"--metrics-file", "gentone.prom",
	}
	cfg, err := Load(args, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := cfg.Tone
	if p.SampleRate != 8000 || p.Duration != 0.001 || p.F0 != 220.5 ||
		p.Epsilon != -0.02 || p.A0 != 1 || p.A2 != 0 {
		t.Errorf("unexpected params: %+v", p)
	}
	if cfg.Out != "out/x.wav" || cfg.MetricsFile != "gentone.prom" {
		t.Errorf("unexpected paths: out=%q metrics=%q", cfg.Out, cfg.MetricsFile)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoadPassesOutOfRangeValues(t *testing.T) {
	cfg, err := Load([]string{"--out", "x.wav", "--f0", "-5", "--a0", "3", "--sr", "0", "--dur", "-1"}, io.Discard)
	if err != nil {
		t.Fatalf("expected no validation, got %v", err)
	}
	if cfg.Tone.F0 != -5 || cfg.Tone.A0 != 3 || cfg.Tone.SampleRate != 0 || cfg.Tone.Duration != -1 {
		t.Errorf("values altered: %+v", cfg.Tone)
	}
}

func TestLoadUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing out", []string{"--sr", "8000"}},
		{"bad int", []string{"--out", "x.wav", "--sr", "48k"}},
		{"bad float", []string{"--out", "x.wav", "--dur", "ten"}},
		{"unknown flag", []string{"--out", "x.wav", "--stereo"}},
		{"bad level", []string{"--out", "x.wav", "--log-level", "loud"}},
		{"positional", []string{"--out", "x.wav", "extra"}},
	}
	for _, tt := range tests {
		var out strings.Builder
		_, err := Load(tt.args, &out)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("%s: expected ErrUsage, got %v", tt.name, err)
		}
		if !strings.Contains(out.String(), "-out") {
			t.Errorf("%s: expected usage text, got %q", tt.name, out.String())
		}
	}
}

func TestLoadHelp(t *testing.T) {
	var out strings.Builder
	_, err := Load([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "Usage: gentone") {
		t.Errorf("expected usage banner, got %q", out.String())
	}
}
