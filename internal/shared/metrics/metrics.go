package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "dashboard_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	reportLatency *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	exportsTotal  *prometheus.CounterVec
)

// Init registers the dashboard metrics with the default registry. Safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		reportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_duration_seconds",
				Help:    "Report aggregation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report", "result"},
		)
		cacheLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_cache_lookups_total",
				Help: "Report cache lookups by outcome",
			},
			[]string{"report", "outcome"},
		)
		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Dashboard exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(reportLatency, cacheLookups, exportsTotal)
	})
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// ObserveReport records how long one report took.
func ObserveReport(report string, start time.Time, err error) {
	if reportLatency == nil {
		return
	}
	reportLatency.WithLabelValues(report, result(err)).Observe(time.Since(start).Seconds())
}

// CacheLookup counts a cache hit or miss for a report.
func CacheLookup(report string, hit bool) {
	if cacheLookups == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookups.WithLabelValues(report, outcome).Inc()
}

// ExportDone counts a finished export.
func ExportDone(format string, err error) {
	if exportsTotal == nil {
		return
	}
	exportsTotal.WithLabelValues(format, result(err)).Inc()
}
