// Package graphtest provides an in-memory graph.Store that evaluates the named
// navigation queries with the same semantics as their Cypher templates.
package graphtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yungbote/navgraph/internal/data/graph"
)

type userNode struct {
	id    int64
	uid   string
	roles []string
}

type pageNode struct {
	id     int64
	uri    string
	method string
}

type entityNode struct {
	id         int64
	entityType string
	bundle     string
	entityID   string
}

type visitNode struct {
	id          int64
	user        int64
	page        int64
	ip          string
	requestTime int64
	prev        int64
	hasPrev     bool
	seen        []int64
}

type MemStore struct {
	mu sync.Mutex

	nextID   int64
	users    map[string]*userNode
	pages    map[string]*pageNode
	entities map[string]*entityNode
	visits   map[int64]*visitNode
	order    []int64

	failures map[string]error
	calls    []graph.Query
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:    map[string]*userNode{},
		pages:    map[string]*pageNode{},
		entities: map[string]*entityNode{},
		visits:   map[int64]*visitNode{},
		failures: map[string]error{},
	}
}

// FailOn makes every subsequent query with the given name return err.
// A nil err clears the failure.
func (m *MemStore) FailOn(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, name)
		return
	}
	m.failures[name] = err
}

// Calls returns the names of executed queries in order.
func (m *MemStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.calls))
	for _, q := range m.calls {
		out = append(out, q.Name)
	}
	return out
}

func (m *MemStore) Read(ctx context.Context, q graph.Query) (graph.Result, error) {
	return m.exec(ctx, q)
}

func (m *MemStore) Write(ctx context.Context, q graph.Query) (graph.Result, error) {
	return m.exec(ctx, q)
}

func (m *MemStore) exec(ctx context.Context, q graph.Query) (graph.Result, error) {
	if err := ctx.Err(); err != nil {
		kind := graph.ErrStoreUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			kind = graph.ErrStoreTimeout
		}
		return graph.Result{}, graph.NewStoreError(kind, q.Name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, q)
	if err, ok := m.failures[q.Name]; ok {
		return graph.Result{}, err
	}

	switch q.Name {
	case graph.QueryPreviousVisit:
		return m.previousVisit(q.Params), nil
	case graph.QueryCreateVisit:
		return m.createVisit(q.Params), nil
	case graph.QueryObserveEntity:
		m.observeEntity(q.Params)
		return graph.Result{}, nil
	case graph.QueryRelatedEntities:
		return m.related(q.Params), nil
	case graph.QueryPing, graph.QuerySchema:
		return graph.Result{}, nil
	default:
		return graph.Result{}, graph.NewStoreError(graph.ErrStoreQueryRejected, q.Name, fmt.Errorf("unknown query %q", q.Name))
	}
}

func (m *MemStore) newID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemStore) previousVisit(p map[string]any) graph.Result {
	uid, ip, uri := str(p["uid"]), str(p["ip"]), str(p["uri"])
	var best *visitNode
	for _, id := range m.order {
		v := m.visits[id]
		if v.ip != ip || m.pageByID(v.page).uri != uri || m.userByID(v.user).uid != uid {
			continue
		}
		if best == nil || v.requestTime > best.requestTime || (v.requestTime == best.requestTime && v.id > best.id) {
			best = v
		}
	}
	if best == nil {
		return graph.Result{}
	}
	return graph.Result{Records: []graph.Record{{"id": best.id}}}
}

func (m *MemStore) createVisit(p map[string]any) graph.Result {
	roles := strs(p["roles"])
	ukey := str(p["uid"]) + "|" + strings.Join(roles, ",")
	u, ok := m.users[ukey]
	if !ok {
		u = &userNode{id: m.newID(), uid: str(p["uid"]), roles: roles}
		m.users[ukey] = u
	}
	pkey := str(p["method"]) + " " + str(p["requestUri"])
	pg, ok := m.pages[pkey]
	if !ok {
		pg = &pageNode{id: m.newID(), uri: str(p["requestUri"]), method: str(p["method"])}
		m.pages[pkey] = pg
	}
	v := &visitNode{
		id:          m.newID(),
		user:        u.id,
		page:        pg.id,
		ip:          str(p["ip"]),
		requestTime: i64(p["requestTime"]),
	}
	if prev, ok := p["previous"]; ok {
		if pv, exists := m.visits[i64(prev)]; exists {
			v.prev, v.hasPrev = pv.id, true
		}
	}
	m.visits[v.id] = v
	m.order = append(m.order, v.id)
	return graph.Result{Records: []graph.Record{{"id": v.id}}}
}

func (m *MemStore) observeEntity(p map[string]any) {
	key := str(p["entity_type"]) + "|" + str(p["bundle"]) + "|" + str(p["entity_id"])
	e, ok := m.entities[key]
	if !ok {
		e = &entityNode{id: m.newID(), entityType: str(p["entity_type"]), bundle: str(p["bundle"]), entityID: str(p["entity_id"])}
		m.entities[key] = e
	}
	if v, ok := m.visits[i64(p["visit"])]; ok {
		v.seen = append(v.seen, e.id)
	}
}

func (m *MemStore) related(p map[string]any) graph.Result {
	anchorType, anchorID := str(p["entity_type"]), str(p["entity_id"])
	limit := int(i64(p["limit"]))
	maxHops := int(i64(p["max_hops"]))
	allowed := map[string]bool{}
	for _, t := range strs(p["targets"]) {
		allowed[t] = true
	}

	anchorPages := map[int64]bool{}
	for _, id := range m.order {
		v := m.visits[id]
		for _, eid := range v.seen {
			e := m.entityByID(eid)
			if e.entityType == anchorType && e.entityID == anchorID {
				anchorPages[v.page] = true
			}
		}
	}

	adj := m.prevAdjacency()
	type agg struct {
		entityType, entityID string
		sum, n               float64
	}
	acc := map[string]*agg{}
	for _, id := range m.order {
		start := m.visits[id]
		if !anchorPages[start.page] {
			continue
		}
		for reached, dist := range bfs(adj, start.id, maxHops) {
			for _, eid := range m.visits[reached].seen {
				e := m.entityByID(eid)
				if !allowed[e.entityType+"::"+e.bundle] {
					continue
				}
				if e.entityType == anchorType && e.entityID == anchorID {
					continue
				}
				k := e.entityType + "|" + e.entityID
				a, ok := acc[k]
				if !ok {
					a = &agg{entityType: e.entityType, entityID: e.entityID}
					acc[k] = a
				}
				a.sum += float64(dist)
				a.n++
			}
		}
	}

	rows := make([]graph.Record, 0, len(acc))
	for _, a := range acc {
		rows = append(rows, graph.Record{
			"entity_type": a.entityType,
			"entity_id":   a.entityID,
			"distance":    a.sum / a.n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		di, dj := rows[i].Float64("distance"), rows[j].Float64("distance")
		if di != dj {
			return di < dj
		}
		if ti, tj := rows[i].String("entity_type"), rows[j].String("entity_type"); ti != tj {
			return ti < tj
		}
		return rows[i].String("entity_id") < rows[j].String("entity_id")
	})
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return graph.Result{Records: rows}
}

// prevAdjacency treats PREV edges as undirected.
func (m *MemStore) prevAdjacency() map[int64][]int64 {
	adj := map[int64][]int64{}
	for _, id := range m.order {
		v := m.visits[id]
		if v.hasPrev {
			adj[v.id] = append(adj[v.id], v.prev)
			adj[v.prev] = append(adj[v.prev], v.id)
		}
	}
	return adj
}

// bfs returns hop distances in [1, maxHops] from start. PREV edges form a forest,
// so each reachable visit has exactly one path and BFS depth is its length.
func bfs(adj map[int64][]int64, start int64, maxHops int) map[int64]int {
	dist := map[int64]int{start: 0}
	frontier := []int64{start}
	for depth := 1; depth <= maxHops && len(frontier) > 0; depth++ {
		var next []int64
		for _, n := range frontier {
			for _, nb := range adj[n] {
				if _, seen := dist[nb]; seen {
					continue
				}
				dist[nb] = depth
				next = append(next, nb)
			}
		}
		frontier = next
	}
	delete(dist, start)
	return dist
}

func (m *MemStore) userByID(id int64) *userNode {
	for _, u := range m.users {
		if u.id == id {
			return u
		}
	}
	return &userNode{}
}

func (m *MemStore) pageByID(id int64) *pageNode {
	for _, p := range m.pages {
		if p.id == id {
			return p
		}
	}
	return &pageNode{}
}

func (m *MemStore) entityByID(id int64) *entityNode {
	for _, e := range m.entities {
		if e.id == id {
			return e
		}
	}
	return &entityNode{}
}

// Predecessor reports the PREV target of a visit.
func (m *MemStore) Predecessor(visitID int64) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visits[visitID]
	if !ok || !v.hasPrev {
		return 0, false
	}
	return v.prev, true
}

// SeenCount counts SEEN edges from a visit to the entity (type, bundle, id).
func (m *MemStore) SeenCount(visitID int64, entityType, bundle, entityID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visits[visitID]
	if !ok {
		return 0
	}
	n := 0
	for _, eid := range v.seen {
		e := m.entityByID(eid)
		if e.entityType == entityType && e.bundle == bundle && e.entityID == entityID {
			n++
		}
	}
	return n
}

// Counts returns the number of User, Page, Visit and Entity nodes.
func (m *MemStore) Counts() (users, pages, visits, entities int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), len(m.pages), len(m.visits), len(m.entities)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strs(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			out = append(out, str(x))
		}
		return out
	default:
		return nil
	}
}

func i64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	default:
		return -1
	}
}
