package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type ObserveEntityDeps struct {
	Log   *logger.Logger
	Graph graph.Store
}

type ObserveEntityInput struct {
	VisitID int64
	Entity  navigation.Entity
}

// ObserveEntity links a recorded visit to the entity rendered on its page.
// Every call adds a SEEN edge; callers observe each (visit, entity) pair once.
func ObserveEntity(ctx context.Context, deps ObserveEntityDeps, in ObserveEntityInput) error {
	if deps.Graph == nil {
		return ErrNoStore
	}
	e := navigation.Entity{
		EntityType: strings.TrimSpace(in.Entity.EntityType),
		Bundle:     strings.TrimSpace(in.Entity.Bundle),
		EntityID:   strings.TrimSpace(in.Entity.EntityID),
	}
	if !e.Valid() {
		return ErrInvalidEntity
	}
	if err := graph.LinkSeenEntity(ctx, deps.Graph, in.VisitID, e); err != nil {
		return fmt.Errorf("observe entity %s: %w", e.Ref(), err)
	}
	if deps.Log != nil {
		deps.Log.Debug("entity observed", "visit_id", in.VisitID, "entity", e.Ref().String(), "bundle", e.Bundle)
	}
	return nil
}
