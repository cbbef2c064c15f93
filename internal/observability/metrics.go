package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for report requests and the refresh scheduler.
type Metrics struct {
	Reports          *prometheus.CounterVec // labels: outcome={success,api_error,missing_data,unexpected}
	ProviderDuration prometheus.Histogram
	SchedulerRuns    prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plant_weather",
			Name:      "reports_total",
			Help:      "Weather report requests by outcome.",
		}, []string{"outcome"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plant_weather",
			Name:      "provider_request_duration_seconds",
			Help:      "OpenWeatherMap request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SchedulerRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_weather",
			Name:      "scheduler_runs_total",
			Help:      "Completed watch-list refresh runs.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.Reports, m.ProviderDuration, m.SchedulerRuns)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveReport implements weather.ReportObserver.
func (m *Metrics) ObserveReport(outcome string) {
	m.Reports.WithLabelValues(outcome).Inc()
}
