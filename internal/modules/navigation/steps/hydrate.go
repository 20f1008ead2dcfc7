package steps

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/navgraph/internal/domain/content"
	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

// EntityLoader batch-loads entities of one type. Ids that do not load are
// absent from the returned map.
type EntityLoader interface {
	LoadEntities(ctx context.Context, entityType string, ids []string) (map[string]*content.Entity, error)
}

type HydrationObserver interface {
	HydrationMiss(entityType string, n int)
}

type HydrateDeps struct {
	Log      *logger.Logger
	Loader   EntityLoader
	Observer HydrationObserver
	// MaxConcurrency bounds parallel per-type loads; <= 0 means 4.
	MaxConcurrency int
}

type HydrateInput struct {
	Refs []navigation.RankedRef
}

type HydrateOutput struct {
	Items   []navigation.Recommendation `json:"items"`
	Dropped int                         `json:"dropped"`
}

// Hydrate loads the ranked refs grouped by type and re-walks the rank order,
// keeping only refs that loaded. A failed batch drops that type's refs; it is
// never an error for the caller.
func Hydrate(ctx context.Context, deps HydrateDeps, in HydrateInput) HydrateOutput {
	out := HydrateOutput{Items: []navigation.Recommendation{}}
	if len(in.Refs) == 0 {
		return out
	}
	if deps.Loader == nil {
		out.Dropped = len(in.Refs)
		return out
	}

	byType := map[string][]string{}
	var typeOrder []string
	for _, r := range in.Refs {
		if _, ok := byType[r.EntityType]; !ok {
			typeOrder = append(typeOrder, r.EntityType)
		}
		byType[r.EntityType] = append(byType[r.EntityType], r.EntityID)
	}

	limit := deps.MaxConcurrency
	if limit <= 0 {
		limit = 4
	}
	var (
		mu     sync.Mutex
		loaded = make(map[string]map[string]*content.Entity, len(byType))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, entityType := range typeOrder {
		entityType, ids := entityType, byType[entityType]
		g.Go(func() error {
			rows, err := deps.Loader.LoadEntities(gctx, entityType, ids)
			if err != nil {
				if deps.Log != nil {
					deps.Log.Warn("hydration batch failed (dropping)", "entity_type", entityType, "count", len(ids), "error", err)
				}
				rows = nil
			}
			mu.Lock()
			loaded[entityType] = rows
			mu.Unlock()
			// Load failures are absorbed so one type never cancels the others.
			return nil
		})
	}
	_ = g.Wait()

	misses := map[string]int{}
	for _, r := range in.Refs {
		e := loaded[r.EntityType][r.EntityID]
		if e == nil {
			misses[r.EntityType]++
			out.Dropped++
			continue
		}
		out.Items = append(out.Items, navigation.Recommendation{
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Bundle:     e.Bundle,
			Title:      e.Title,
			URL:        e.URL,
			Distance:   r.Distance,
		})
	}
	if deps.Observer != nil {
		for entityType, n := range misses {
			deps.Observer.HydrationMiss(entityType, n)
		}
	}
	return out
}
