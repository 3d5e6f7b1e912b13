package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters of a single generator run. Each instance owns
// its registry so a run exports only its own series.
type Metrics struct {
	Registry *prometheus.Registry

	// Counters
	SamplesWrittenTotal prometheus.Counter
	SamplesClippedTotal prometheus.Counter

	// Gauges
	LastSuccessTimestamp prometheus.Gauge

	// Histograms
	RenderDuration prometheus.Histogram
}

// New creates a Metrics with all series registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		SamplesWrittenTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "gentone_samples_written_total",
			Help: "Total PCM samples written to the output file",
		}),
		SamplesClippedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "gentone_samples_clipped_total",
			Help: "Samples whose waveform value exceeded the clip level",
		}),
		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "gentone_last_success_timestamp_seconds",
			Help: "Unix time of the last successful render",
		}),
		RenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gentone_render_duration_seconds",
			Help:    "Wall time spent synthesizing and writing the output file",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// WriteTextfile writes all series in the Prometheus text format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
