package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry. All methods are
// safe on a nil receiver so callers never need to guard.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	graphQueries *prometheus.CounterVec
	graphLatency *prometheus.HistogramVec

	trackingDegraded *prometheus.CounterVec
	trackingSkipped  prometheus.Counter
	visitsRecorded   prometheus.Counter

	recommendations  *prometheus.CounterVec
	recommendedItems prometheus.Histogram
	cacheLookups     *prometheus.CounterVec
	hydrationMisses  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navgraph_api_requests_total",
			Help: "Total API requests by method/route/status and whether a visit was tracked.",
		}, []string{"method", "route", "status", "tracked"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "navgraph_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "navgraph_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		graphQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navgraph_graph_queries_total",
			Help: "Graph store queries by query name and outcome.",
		}, []string{"query", "outcome"}),
		graphLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "navgraph_graph_query_duration_seconds",
			Help:    "Graph store query latency in seconds by query name.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"query"}),
		trackingDegraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navgraph_tracking_degraded_total",
			Help: "Requests whose tracking was dropped after a store failure, by stage and error kind.",
		}, []string{"stage", "kind"}),
		trackingSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navgraph_tracking_skipped_total",
			Help: "Requests not tracked because they were asynchronous sub-requests.",
		}),
		visitsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "navgraph_visits_recorded_total",
			Help: "Visits written to the graph store.",
		}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navgraph_recommendations_total",
			Help: "Recommendation requests by outcome (served, empty, degraded, not_shown, error).",
		}, []string{"outcome"}),
		recommendedItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "navgraph_recommendation_items",
			Help:    "Number of hydrated items per served recommendation.",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navgraph_recommendation_cache_total",
			Help: "Recommendation cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		hydrationMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "navgraph_hydration_misses_total",
			Help: "Ranked entity references dropped during hydration, by entity type.",
		}, []string{"entity_type"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.graphQueries,
		m.graphLatency,
		m.trackingDegraded,
		m.trackingSkipped,
		m.visitsRecorded,
		m.recommendations,
		m.recommendedItems,
		m.cacheLookups,
		m.hydrationMisses,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// APIRequest labels one served request.
type APIRequest struct {
	Method  string
	Route   string
	Status  string
	Tracked bool
}

func (m *Metrics) ObserveAPI(r APIRequest, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(r.Method, r.Route, r.Status, strconv.FormatBool(r.Tracked)).Inc()
	m.apiLatency.WithLabelValues(r.Method, r.Route, r.Status).Observe(d.Seconds())
}

// ObserveGraphQuery satisfies neo4jdb.QueryObserver.
func (m *Metrics) ObserveGraphQuery(query, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.graphQueries.WithLabelValues(query, outcome).Inc()
	m.graphLatency.WithLabelValues(query).Observe(d.Seconds())
}

func (m *Metrics) TrackingDegraded(stage, kind string) {
	if m == nil {
		return
	}
	m.trackingDegraded.WithLabelValues(stage, kind).Inc()
}

func (m *Metrics) TrackingSkipped() {
	if m == nil {
		return
	}
	m.trackingSkipped.Inc()
}

func (m *Metrics) VisitRecorded() {
	if m == nil {
		return
	}
	m.visitsRecorded.Inc()
}

func (m *Metrics) RecommendationOutcome(outcome string, items int) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(outcome).Inc()
	if outcome == "served" || outcome == "empty" {
		m.recommendedItems.Observe(float64(items))
	}
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) HydrationMiss(entityType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.hydrationMisses.WithLabelValues(entityType).Add(float64(n))
}
