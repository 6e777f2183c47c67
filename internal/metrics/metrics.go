// Package metrics declares the Prometheus metrics of the scan service.
// All metrics are registered with the default registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ssccscan"

// ScansTotal counts barcode lookups.
// Label result: "found", "not_found", "invalid", "error".
var ScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Total number of barcode lookups by outcome.",
	},
	[]string{"result"},
)

// ExportsTotal counts status exports.
// Label result: "written", "uploaded", "write_failed", "upload_failed", "retried".
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of status XML exports by outcome.",
	},
	[]string{"result"},
)

var DBQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Duration of shipment table queries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"query"},
)

// ObserveQuery records the time elapsed since start for the named query.
func ObserveQuery(query string, start time.Time) {
	DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}
