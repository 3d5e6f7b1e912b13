package render

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/metrics"
	"github.com/RenatoCabral2022/WhatsWebService/gentone/internal/wavfile"
)

// ChunkFrames is the number of samples synthesized per write.
const ChunkFrames = 4800

// Result summarizes a completed render.
type Result struct {
	Path    string
	Samples int
	Clipped int
	Elapsed time.Duration
}

type options struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures Render.
type Option func(*options)

// WithLogger sets the logger used for progress and failure messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records sample counts and timing into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Render synthesizes p and writes it to path as a mono 16-bit WAV file,
// creating the parent directory if needed. A write failure can leave a
// truncated file behind.
func Render(path string, p audio.Params, opts ...Option) (res Result, err error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With(zap.String("out", path))

	tone := audio.NewTone(p)
	logger.Info("render starting",
		zap.Float64("f0", p.F0),
		zap.Float64("f2", p.F2()),
		zap.Float64("a0", p.A0),
		zap.Float64("a2", p.A2),
		zap.Int("sampleRate", p.SampleRate),
		zap.Float64("durationSec", p.Duration),
		zap.Int("samples", tone.Remaining()),
	)

	start := time.Now()
	w, err := wavfile.Create(path, p.SampleRate)
	if err != nil {
		logger.Error("open output failed", zap.Error(err))
		return Result{}, fmt.Errorf("render %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("render %s: %w", path, cerr))
		}
		if err != nil {
			logger.Error("render failed", zap.Int("samplesWritten", w.Frames()), zap.Error(err))
			return
		}
		res = Result{
			Path:    path,
			Samples: w.Frames(),
			Clipped: tone.Clipped(),
			Elapsed: time.Since(start),
		}
		if o.metrics != nil {
			o.metrics.SamplesWrittenTotal.Add(float64(res.Samples))
			o.metrics.SamplesClippedTotal.Add(float64(res.Clipped))
			o.metrics.RenderDuration.Observe(res.Elapsed.Seconds())
			o.metrics.LastSuccessTimestamp.SetToCurrentTime()
		}
		if res.Clipped > 0 {
			logger.Debug("samples clipped", zap.Int("clipped", res.Clipped))
		}
		logger.Info("render complete",
			zap.Int("samples", res.Samples),
			zap.Duration("elapsed", res.Elapsed),
		)
	}()

	buf := make([]int, ChunkFrames)
	for {
		n := tone.Read(buf)
		if n == 0 {
			return res, nil
		}
		if err := w.Write(buf[:n]); err != nil {
			return res, fmt.Errorf("render %s: %w", path, err)
		}
	}
}
