package graph

import (
	"context"

	"github.com/yungbote/navgraph/internal/domain/navigation"
)

// ListRelatedEntities runs the co-visitation traversal for req and returns the
// candidates in store order: ascending mean hop distance, then type, then id.
// The request is expected to be normalized; an empty target set short-circuits.
func ListRelatedEntities(ctx context.Context, store Store, req navigation.RecommendRequest) ([]navigation.RankedRef, error) {
	if len(req.Targets) == 0 || req.Limit <= 0 {
		return nil, nil
	}
	hops := ClampHops(req.MaxHops, navigation.DefaultMaxHops)

	res, err := store.Read(ctx, Query{
		Name:   QueryRelatedEntities,
		Cypher: relatedEntitiesStatement(hops),
		Params: map[string]any{
			"entity_type": req.Anchor.EntityType,
			"entity_id":   req.Anchor.EntityID,
			"targets":     req.Targets,
			"limit":       int64(req.Limit),
			"max_hops":    int64(hops),
		},
	})
	if err != nil {
		return nil, err
	}

	out := make([]navigation.RankedRef, 0, len(res.Records))
	for _, rec := range res.Records {
		ref := navigation.EntityRef{
			EntityType: rec.String("entity_type"),
			EntityID:   rec.String("entity_id"),
		}
		if ref.EntityType == "" || ref.EntityID == "" {
			continue
		}
		out = append(out, navigation.RankedRef{EntityRef: ref, Distance: rec.Float64("distance")})
	}
	return out, nil
}
