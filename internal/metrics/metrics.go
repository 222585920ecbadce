package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pep299/keyword-analyzer/internal/analysis"
)

const namespace = "keyword_analyzer"

// Metrics holds the Prometheus collectors for analysis runs
type Metrics struct {
	Runs                 *prometheus.CounterVec
	RunFailures          prometheus.Counter
	RunDuration          prometheus.Histogram
	BucketSize           *prometheus.GaugeVec
	TotalMonthlySearches prometheus.Gauge
	AverageCPC           prometheus.Gauge
	LastRunTimestamp     prometheus.Gauge
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Completed analysis runs by content source",
			},
			[]string{"source"},
		),
		RunFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "run_failures_total",
				Help:      "Analysis runs that failed to publish artifacts",
			},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Analysis run duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		BucketSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "bucket_keywords",
				Help:      "Keywords in each bucket of the latest run",
			},
			[]string{"bucket"},
		),
		TotalMonthlySearches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "total_monthly_searches",
				Help:      "Summed monthly search volume of the latest run",
			},
		),
		AverageCPC: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "average_cpc_dollars",
				Help:      "Mean cost per click of the latest run",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the latest successful run",
			},
		),
	}

	reg.MustRegister(
		m.Runs,
		m.RunFailures,
		m.RunDuration,
		m.BucketSize,
		m.TotalMonthlySearches,
		m.AverageCPC,
		m.LastRunTimestamp,
	)
	return m
}

// ObserveSummary records the gauges describing a finished run
func (m *Metrics) ObserveSummary(summary *analysis.Summary) {
	for _, b := range analysis.AllBuckets {
		m.BucketSize.WithLabelValues(string(b)).Set(float64(len(summary.Bucket(b))))
	}
	m.TotalMonthlySearches.Set(float64(summary.TotalMonthlySearches))
	m.AverageCPC.Set(summary.AverageCPC)
}
