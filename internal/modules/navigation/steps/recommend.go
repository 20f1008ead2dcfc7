package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type RankRelatedDeps struct {
	Log   *logger.Logger
	Graph graph.Store
}

type RankRelatedInput = navigation.RecommendRequest

type RankRelatedOutput struct {
	Request navigation.RecommendRequest `json:"request"`
	Refs    []navigation.RankedRef      `json:"refs"`
}

// RankRelated runs the co-visitation traversal for the anchor and returns the
// ranked references. No history or no candidates is an empty result; store
// failures are returned to the caller untouched.
func RankRelated(ctx context.Context, deps RankRelatedDeps, in RankRelatedInput) (RankRelatedOutput, error) {
	req := in.Normalized()
	req.Anchor.EntityType = strings.TrimSpace(req.Anchor.EntityType)
	req.Anchor.EntityID = strings.TrimSpace(req.Anchor.EntityID)
	req.MaxHops = graph.ClampHops(req.MaxHops, navigation.DefaultMaxHops)
	out := RankRelatedOutput{Request: req, Refs: []navigation.RankedRef{}}

	if req.Anchor.EntityType == "" || req.Anchor.EntityID == "" {
		return out, ErrInvalidAnchor
	}
	if len(req.Targets) == 0 {
		return out, nil
	}
	if deps.Graph == nil {
		return out, ErrNoStore
	}

	rows, err := graph.ListRelatedEntities(ctx, deps.Graph, req)
	if err != nil {
		return out, fmt.Errorf("list related entities: %w", err)
	}
	out.Refs = rankRefs(req.Anchor, rows, req.Limit)

	if deps.Log != nil {
		deps.Log.Debug("related entities ranked",
			"anchor", req.Anchor.String(),
			"targets", len(req.Targets),
			"candidates", len(rows),
			"returned", len(out.Refs),
		)
	}
	return out, nil
}
