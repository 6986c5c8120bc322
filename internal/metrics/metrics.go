package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MarketsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "polysignal_markets_processed_total", Help: "Markets processed by the signal pipeline"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "polysignal_signals_total", Help: "Signals emitted, by magnitude class"},
		[]string{"class"},
	)
	SnapshotsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "polysignal_snapshots_written_total", Help: "Snapshot rows written to the store"},
	)
	StorageErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "polysignal_storage_errors_total", Help: "Snapshot store failures"},
	)
	RecordsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "polysignal_records_skipped_total", Help: "Malformed market records skipped"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polysignal_run_duration_seconds",
			Help:    "Wall time of a full pipeline run",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		MarketsProcessed,
		SignalsTotal,
		SnapshotsWritten,
		StorageErrors,
		RecordsSkipped,
		RunDuration,
	)
}
