package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	ImportRows   *prometheus.CounterVec
	ImportBatch  *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ImportRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Bulk import rows by entity and outcome.",
		}, []string{"entity", "outcome"}),
		ImportBatch: f.NewCounterVec(prometheus.CounterOpts{
			Name: "import_batches_total",
			Help: "Bulk import calls by entity and result.",
		}, []string{"entity", "result"}),
	}
}

// ObserveImport records one finished bulk import call.
func (m *Metrics) ObserveImport(entity string, created, updated, skipped int, err error) {
	if err != nil {
		m.ImportBatch.WithLabelValues(entity, "error").Inc()
		return
	}
	m.ImportBatch.WithLabelValues(entity, "success").Inc()
	m.ImportRows.WithLabelValues(entity, "created").Add(float64(created))
	m.ImportRows.WithLabelValues(entity, "updated").Add(float64(updated))
	m.ImportRows.WithLabelValues(entity, "skipped").Add(float64(skipped))
}
