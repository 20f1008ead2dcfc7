package app

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/navgraph/internal/data/db"
	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/logger"
	"github.com/yungbote/navgraph/internal/platform/neo4jdb"
	"github.com/yungbote/navgraph/internal/platform/rediscache"
)

type Clients struct {
	Neo4j     *neo4jdb.Client
	Cache     *rediscache.Cache
	ContentDB *db.ContentDBService
}

// GraphStore returns the graph store, or nil when Neo4j is not configured.
func (c Clients) GraphStore() graph.Store {
	if c.Neo4j == nil {
		return nil
	}
	return c.Neo4j
}

func wireClients(log *logger.Logger, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	// Content store
	contentDB, err := db.NewContentDBService(log, db.ConfigFromEnv())
	if err != nil {
		return Clients{}, fmt.Errorf("init content db: %w", err)
	}
	if err := contentDB.AutoMigrateAll(); err != nil {
		_ = contentDB.Close()
		return Clients{}, err
	}

	// Neo4j
	graphClient, err := neo4jdb.NewFromEnv(log, neo4jdb.WithObserver(metrics))
	if err != nil {
		_ = contentDB.Close()
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}
	if graphClient == nil {
		log.Warn("Neo4j not configured; tracking is disabled and recommendations are empty")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		graph.EnsureSchema(ctx, graphClient, log)
		cancel()
	}

	// Redis
	cache, err := rediscache.NewFromEnv(log)
	if err != nil {
		log.Warn("Redis unavailable; recommendation cache disabled", "error", err)
		cache = nil
	}

	return Clients{Neo4j: graphClient, Cache: cache, ContentDB: contentDB}, nil
}

func (c Clients) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
	_ = c.Cache.Close()
	_ = c.ContentDB.Close()
}
