// Package metrics records generation and export counters and writes them
// in the Prometheus text format for a node-exporter textfile collector.
package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "daylist"

// Recorder holds the metrics of one process on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	blocks          prometheus.Gauge
	tracks          prometheus.Gauge
	insertions      prometheus.Gauge
	insertionPoints prometheus.Gauge
	shortBlocks     prometheus.Gauge
	warnings        *prometheus.CounterVec
	exports         *prometheus.CounterVec
	exportBytes     *prometheus.GaugeVec
	lastRun         prometheus.Gauge
}

// NewRecorder creates and registers all collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "blocks",
			Help: "Blocks in the last generated playlist.",
		}),
		tracks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "tracks",
			Help: "Music tracks in the last generated playlist.",
		}),
		insertions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "insertions",
			Help: "Special insertions in the last generated playlist.",
		}),
		insertionPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "insertion_points",
			Help: "Time-marker insertion points in the last generated playlist.",
		}),
		shortBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "short_blocks",
			Help: "Blocks that ended below the target track count.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "warnings_total",
			Help: "Warnings raised, by stage.",
		}, []string{"stage"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "exports_total",
			Help: "Playlist exports, by format and result.",
		}, []string{"format", "result"}),
		exportBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "export_bytes",
			Help: "Size of the last exported file, by format.",
		}, []string{"format"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_run_timestamp_seconds",
			Help: "Unix time of the last generation.",
		}),
	}

	r.registry.MustRegister(
		r.blocks, r.tracks, r.insertions, r.insertionPoints, r.shortBlocks,
		r.warnings, r.exports, r.exportBytes, r.lastRun,
	)
	return r
}

// Generation holds the counts of one generation run.
type Generation struct {
	Blocks          int
	Tracks          int
	Insertions      int
	InsertionPoints int
	ShortBlocks     int
	Warnings        int
}

// ObserveGeneration records a finished generation.
func (r *Recorder) ObserveGeneration(g Generation) {
	r.blocks.Set(float64(g.Blocks))
	r.tracks.Set(float64(g.Tracks))
	r.insertions.Set(float64(g.Insertions))
	r.insertionPoints.Set(float64(g.InsertionPoints))
	r.shortBlocks.Set(float64(g.ShortBlocks))
	r.warnings.WithLabelValues("generate").Add(float64(g.Warnings))
	r.lastRun.SetToCurrentTime()
}

// ObserveExport records one export attempt.
func (r *Recorder) ObserveExport(format string, size int64, warnings int, err error) {
	if err != nil {
		r.exports.WithLabelValues(format, "error").Inc()
		return
	}
	r.exports.WithLabelValues(format, "ok").Inc()
	r.exportBytes.WithLabelValues(format).Set(float64(size))
	r.warnings.WithLabelValues("export").Add(float64(warnings))
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
