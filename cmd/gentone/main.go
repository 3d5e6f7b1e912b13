package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/config"
	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/metrics"
	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/render"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "gentone:", err)
		return exitUsage
	}

	logger := newLogger(cfg.LogLevel, stderr)
	defer logger.Sync()
	logger = logger.With(zap.String("run", uuid.NewString()))

	m := metrics.New()
	_, err = render.Render(cfg.Out, cfg.Tone, render.WithLogger(logger), render.WithMetrics(m))

	if cfg.MetricsFile != "" {
		if merr := m.WriteTextfile(cfg.MetricsFile); merr != nil {
			logger.Warn("metrics export failed", zap.String("path", cfg.MetricsFile), zap.Error(merr))
		}
	}

	if err != nil {
		// render has already logged the failure; the file at cfg.Out is unreliable.
		return exitError
	}
	return exitOK
}

// newLogger logs JSON like a production service, or human-readable console
// lines when stderr is a terminal.
func newLogger(level zapcore.Level, stderr io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(stderr)), level)
	return zap.New(core, zap.AddCaller())
}
