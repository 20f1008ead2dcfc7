package neo4jdb

import (
	"context"
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yungbote/navgraph/internal/data/graph"
)

var errNotConfigured = errors.New("neo4j client not configured")

// classify maps driver and breaker errors onto the graph store error kinds.
func classify(query string, err error) error {
	if err == nil {
		return nil
	}
	var se *graph.StoreError
	if errors.As(err, &se) {
		return err
	}
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return graph.NewStoreError(graph.ErrStoreUnavailable, query, err)
	case errors.Is(err, context.DeadlineExceeded):
		return graph.NewStoreError(graph.ErrStoreTimeout, query, err)
	case errors.Is(err, context.Canceled):
		return graph.NewStoreError(graph.ErrStoreUnavailable, query, err)
	case neo4j.IsConnectivityError(err):
		return graph.NewStoreError(graph.ErrStoreUnavailable, query, err)
	}

	var nerr *neo4j.Neo4jError
	if errors.As(err, &nerr) {
		// Codes look like Neo.<Classification>.<Category>.<Title>.
		parts := strings.Split(nerr.Code, ".")
		classification, title := "", ""
		if len(parts) >= 2 {
			classification = parts[1]
		}
		if len(parts) >= 4 {
			title = parts[3]
		}
		switch {
		case strings.Contains(title, "TimedOut"):
			return graph.NewStoreError(graph.ErrStoreTimeout, query, err)
		case classification == "ClientError":
			return graph.NewStoreError(graph.ErrStoreQueryRejected, query, err)
		}
	}
	return graph.NewStoreError(graph.ErrStoreUnavailable, query, err)
}

// countsAsFailure decides what trips the breaker: rejected queries and caller
// cancellations say nothing about store health.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, graph.ErrStoreQueryRejected) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
