package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Collector backed by Prometheus.
type PrometheusCollector struct {
	runs          *prometheus.CounterVec
	linesRead     prometheus.Counter
	recordsParsed prometheus.Counter
	issues        prometheus.Counter
	matches       prometheus.Histogram
	duration      *prometheus.HistogramVec
}

var _ Collector = (*PrometheusCollector)(nil)

// NewPrometheus creates and registers the run metrics.
//
// reg defaults to prometheus.DefaultRegisterer and namespace to
// "employee_pairs" when empty.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "employee_pairs"
	}

	p := &PrometheusCollector{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matcher",
			Name:      "runs_total",
			Help:      "Total matching runs by source and cancellation.",
		}, []string{"source", "cancelled"}),
		linesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "lines_read_total",
			Help:      "Total raw input lines read.",
		}),
		recordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "records_parsed_total",
			Help:      "Total assignment records produced by the parser.",
		}),
		issues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "rejected_lines_total",
			Help:      "Total lines rejected for bad ids or dates.",
		}),
		matches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matcher",
			Name:      "pairs_per_run",
			Help:      "Number of employee pairs found per run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matcher",
			Name:      "run_duration_seconds",
			Help:      "Matching run duration in seconds by source.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"source"}),
	}

	for _, c := range []prometheus.Collector{p.runs, p.linesRead, p.recordsParsed, p.issues, p.matches, p.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RecordRun records the statistics of one run.
func (p *PrometheusCollector) RecordRun(stats RunStats) {
	p.runs.WithLabelValues(stats.Source, strconv.FormatBool(stats.Cancelled)).Inc()
	p.linesRead.Add(float64(stats.LinesRead))
	p.recordsParsed.Add(float64(stats.RecordsParsed))
	p.issues.Add(float64(stats.Issues))
	p.duration.WithLabelValues(stats.Source).Observe(stats.DurationSeconds)
	if !stats.Cancelled {
		p.matches.Observe(float64(stats.Matches))
	}
}
