package graph

import (
	"context"

	"github.com/yungbote/navgraph/internal/domain/navigation"
)

// LinkSeenEntity merges the Entity node and adds a SEEN edge from the visit.
// An unknown visit id matches nothing and is not an error. Calling it twice for
// the same pair creates two edges.
func LinkSeenEntity(ctx context.Context, store Store, visitID int64, e navigation.Entity) error {
	_, err := store.Write(ctx, Query{
		Name:   QueryObserveEntity,
		Cypher: observeEntityCypher,
		Params: map[string]any{
			"entity_type": e.EntityType,
			"bundle":      e.Bundle,
			"entity_id":   e.EntityID,
			"visit":       visitID,
		},
	})
	return err
}
