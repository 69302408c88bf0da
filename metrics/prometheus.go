package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "feed_dashboard"

type Prometheus struct {
	Fetches       *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	Fallbacks     *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_total",
				Help:      "Feed fetches by source and outcome.",
			}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Time spent fetching and normalizing a feed.",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			}, []string{"source"}),
		Fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallback_total",
				Help:      "Requests served by a source other than the one selected.",
			}, []string{"requested", "served"}),
	}
}

// Observer is the process wide metrics sink.
var Observer = NewPrometheusMetrics()

func init() {
	prometheus.MustRegister(Observer.Fetches, Observer.FetchDuration, Observer.Fallbacks)
}

func (p Prometheus) Fetch(source, outcome string, elapsed time.Duration) {
	p.Fetches.WithLabelValues(source, outcome).Inc()
	p.FetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func (p Prometheus) Fallback(requested, served string) {
	p.Fallbacks.WithLabelValues(requested, served).Inc()
}
