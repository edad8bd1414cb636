package services

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query outcomes recorded per request.
const (
	QueryOutcomeSkipped      = "skipped"
	QueryOutcomeInsufficient = "insufficient"
	QueryOutcomeGrounded     = "grounded"
)

var (
	documentsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rag_documents_ingested_total",
		Help: "Number of documents successfully ingested.",
	})
	chunksIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rag_chunks_indexed_total",
		Help: "Number of chunks appended to the corpus.",
	})
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rag_queries_total",
		Help: "Number of queries processed, by outcome.",
	}, []string{"outcome"})
	retrievalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rag_retrieval_duration_seconds",
		Help:    "Wall time of hybrid retrieval, including the query embedding call.",
		Buckets: prometheus.DefBuckets,
	})
)

// MetricsService exposes pipeline counters and the Prometheus handler.
type MetricsService struct{}

// NewMetricsService creates the metrics service.
func NewMetricsService() *MetricsService {
	return &MetricsService{}
}

// ObserveIngest records one successfully ingested document.
func (ms *MetricsService) ObserveIngest(chunks int) {
	documentsIngested.Inc()
	chunksIndexed.Add(float64(chunks))
}

// ObserveQuery records one processed query.
func (ms *MetricsService) ObserveQuery(outcome string) {
	queriesTotal.WithLabelValues(outcome).Inc()
}

// ObserveRetrieval records the duration of one hybrid retrieval.
func (ms *MetricsService) ObserveRetrieval(elapsed time.Duration) {
	retrievalDuration.Observe(elapsed.Seconds())
}

// Handler returns the Prometheus exposition handler.
func (ms *MetricsService) Handler() http.Handler {
	return promhttp.Handler()
}

// ServeHTTP implements http.Handler.
func (ms *MetricsService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ms.Handler().ServeHTTP(w, r)
}
