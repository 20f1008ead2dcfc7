package graph

import (
	"context"

	"github.com/yungbote/navgraph/internal/platform/logger"
)

// EnsureSchema creates the lookup indexes used by the tracking and traversal
// queries. Best-effort: failures are logged and skipped.
func EnsureSchema(ctx context.Context, store Store, log *logger.Logger) {
	if store == nil {
		return
	}
	for _, stmt := range schemaStatements {
		if _, err := store.Write(ctx, Query{Name: QuerySchema, Cypher: stmt}); err != nil {
			if log != nil {
				log.Warn("neo4j schema init failed (continuing)", "statement", stmt, "error", err)
			}
		}
	}
}
