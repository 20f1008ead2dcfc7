package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/navgraph/internal/data/graph/graphtest"
	"github.com/yungbote/navgraph/internal/domain/content"
	"github.com/yungbote/navgraph/internal/domain/navigation"
	navmod "github.com/yungbote/navgraph/internal/modules/navigation"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type staticLoader map[string]map[string]*content.Entity

func (s staticLoader) LoadEntities(ctx context.Context, entityType string, ids []string) (map[string]*content.Entity, error) {
	out := map[string]*content.Entity{}
	for _, id := range ids {
		if e, ok := s[entityType][id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (s staticLoader) add(entityType, bundle string, ids ...string) staticLoader {
	if s[entityType] == nil {
		s[entityType] = map[string]*content.Entity{}
	}
	for _, id := range ids {
		s[entityType][id] = &content.Entity{EntityType: entityType, Bundle: bundle, EntityID: id, Title: "title " + id}
	}
	return s
}

type memCache struct {
	mu   sync.Mutex
	vals map[string][]navigation.RankedRef
	gets int
	sets int
	err  error
}

func newMemCache() *memCache { return &memCache{vals: map[string][]navigation.RankedRef{}} }

func (c *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return false, c.err
	}
	v, ok := c.vals[key]
	if !ok {
		return false, nil
	}
	*(dst.(*[]navigation.RankedRef)) = append([]navigation.RankedRef(nil), v...)
	return true, nil
}

func (c *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.vals[key] = append([]navigation.RankedRef(nil), val.([]navigation.RankedRef)...)
	return nil
}

const testPlacements = `
default: related
placements:
  related:
    label: Related articles
    source_types:
      article::news: true
    target_types:
      article::news: true
      page::basic: false
    limit: 5
    max_hops: 6
  pages_only:
    source_types:
      page::basic: true
    target_types:
      page::basic: true
`

func testPlacementSet(t *testing.T) *navmod.Placements {
	t.Helper()
	p, err := navmod.ParsePlacements([]byte(testPlacements))
	if err != nil {
		t.Fatalf("ParsePlacements: %v", err)
	}
	return p
}

type fixture struct {
	store   *graphtest.MemStore
	metrics *observability.Metrics
	nav     navmod.Usecases
}

func newFixture(loader staticLoader) *fixture {
	store := graphtest.NewMemStore()
	metrics := observability.NewMetrics()
	return &fixture{
		store:   store,
		metrics: metrics,
		nav: navmod.New(navmod.UsecasesDeps{
			Log:       logger.Nop(),
			Graph:     store,
			Entities:  loader,
			Hydration: metrics,
		}),
	}
}

func news(id string) navigation.Entity {
	return navigation.Entity{EntityType: "article", Bundle: "news", EntityID: id}
}

// exposition renders the metrics registry in the text format.
func exposition(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rec.Code)
	}
	return rec.Body.String()
}

func assertMetric(t *testing.T, m *observability.Metrics, line string) {
	t.Helper()
	if body := exposition(t, m); !strings.Contains(body, line) {
		t.Fatalf("metrics missing %q", line)
	}
}
