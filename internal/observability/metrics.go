// Package observability holds Prometheus instrumentation for the service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	samplesStoredCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readiness",
		Subsystem: "samples",
		Name:      "stored_total",
		Help:      "Biometric samples stored, by source.",
	}, []string{"source"})

	lastSampleGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "readiness",
		Subsystem: "samples",
		Name:      "last_stored_timestamp_seconds",
		Help:      "Unix timestamp of the most recent biometric sample stored.",
	})

	readinessComputedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readiness",
		Subsystem: "scoring",
		Name:      "computed_total",
		Help:      "Readiness results computed, by band.",
	}, []string{"band"})

	importedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readiness",
		Subsystem: "import",
		Name:      "entries_total",
		Help:      "Platform import entries processed, by platform and outcome.",
	}, []string{"platform", "outcome"})
)

func init() {
	prometheus.MustRegister(samplesStoredCounter, lastSampleGauge, readinessComputedCounter, importedCounter)
}

// RecordSampleStored counts a stored sample and advances the watermark gauge.
func RecordSampleStored(source string, ts time.Time) {
	samplesStoredCounter.WithLabelValues(source).Inc()
	if !ts.IsZero() {
		lastSampleGauge.Set(float64(ts.Unix()))
	}
}

// RecordReadinessComputed counts one scoring pass by resulting band.
func RecordReadinessComputed(band string) {
	readinessComputedCounter.WithLabelValues(band).Inc()
}

// RecordImportBatch counts the entries of a completed import batch.
func RecordImportBatch(platform string, imported, skipped int) {
	importedCounter.WithLabelValues(platform, "imported").Add(float64(imported))
	importedCounter.WithLabelValues(platform, "skipped").Add(float64(skipped))
}
