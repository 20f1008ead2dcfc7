package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAPI(APIRequest{Method: "GET", Route: "/x", Status: "200"}, time.Millisecond)
	m.ObserveGraphQuery("ping", "ok", time.Millisecond)
	m.TrackingDegraded("record_visit", "timeout")
	m.TrackingSkipped()
	m.VisitRecorded()
	m.RecommendationOutcome("served", 3)
	m.CacheLookup("hit")
	m.HydrationMiss("node", 1)
	if m.Registry() != nil {
		t.Fatalf("nil metrics must not expose a registry")
	}
}

func TestAPICountersSplitTrackedRequests(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI(APIRequest{Method: "GET", Route: "/pages/:entity_type/:entity_id", Status: "200", Tracked: true}, time.Millisecond)
	m.ObserveAPI(APIRequest{Method: "GET", Route: "/pages/:entity_type/:entity_id", Status: "200"}, time.Millisecond)
	m.ObserveAPI(APIRequest{Method: "GET", Route: "/pages/:entity_type/:entity_id", Status: "200", Tracked: true}, time.Millisecond)

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/pages/:entity_type/:entity_id", "200", "true")); got != 2 {
		t.Fatalf("tracked count: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/pages/:entity_type/:entity_id", "200", "false")); got != 1 {
		t.Fatalf("untracked count: got=%v want=1", got)
	}
}

func TestGraphQueryCounters(t *testing.T) {
	m := NewMetrics()
	m.ObserveGraphQuery("create_visit", "ok", 2*time.Millisecond)
	m.ObserveGraphQuery("create_visit", "ok", 3*time.Millisecond)
	m.ObserveGraphQuery("create_visit", "timeout", time.Second)

	if got := testutil.ToFloat64(m.graphQueries.WithLabelValues("create_visit", "ok")); got != 2 {
		t.Fatalf("ok count: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.graphQueries.WithLabelValues("create_visit", "timeout")); got != 1 {
		t.Fatalf("timeout count: got=%v want=1", got)
	}
}

func TestHydrationMissIgnoresZero(t *testing.T) {
	m := NewMetrics()
	m.HydrationMiss("node", 0)
	m.HydrationMiss("node", 2)
	if got := testutil.ToFloat64(m.hydrationMisses.WithLabelValues("node")); got != 2 {
		t.Fatalf("hydration misses: got=%v want=2", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.RecommendationOutcome("degraded", 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `navgraph_recommendations_total{outcome="degraded"} 1`) {
		t.Fatalf("missing recommendation counter in exposition:\n%s", rec.Body.String())
	}
}
