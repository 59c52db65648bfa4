package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry so tests can create collectors without
// default-registry collisions. All record methods are nil-safe; a nil
// collector disables metrics.
type Collector struct {
	registry             *prometheus.Registry
	decisionsTotal       *prometheus.CounterVec
	underwritingDuration prometheus.Histogram
	scoreDistribution    prometheus.Histogram
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		decisionsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "credit_decisions_total",
			Help: "Total number of underwriting decisions by status",
		}, []string{"status"}),
		underwritingDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "credit_underwriting_duration_seconds",
			Help:    "Time taken to underwrite a loan request",
			Buckets: prometheus.DefBuckets,
		}),
		scoreDistribution: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "credit_score_distribution",
			Help:    "Distribution of computed credit scores",
			Buckets: []float64{300, 400, 500, 600, 700, 800, 850},
		}),
	}
}

func (c *Collector) RecordDecision(status string, duration time.Duration, creditScore int) {
	if c == nil {
		return
	}

	c.decisionsTotal.WithLabelValues(status).Inc()
	c.underwritingDuration.Observe(duration.Seconds())
	c.scoreDistribution.Observe(float64(creditScore))
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
