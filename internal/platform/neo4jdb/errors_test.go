package neo4jdb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yungbote/navgraph/internal/data/graph"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), graph.ErrStoreTimeout},
		{"canceled", context.Canceled, graph.ErrStoreUnavailable},
		{"breaker open", gobreaker.ErrOpenState, graph.ErrStoreUnavailable},
		{"breaker half-open", gobreaker.ErrTooManyRequests, graph.ErrStoreUnavailable},
		{"syntax error", &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "bad"}, graph.ErrStoreQueryRejected},
		{"tx timeout", &neo4j.Neo4jError{Code: "Neo.ClientError.Transaction.TransactionTimedOut", Msg: "slow"}, graph.ErrStoreTimeout},
		{"transient", &neo4j.Neo4jError{Code: "Neo.TransientError.General.DatabaseUnavailable", Msg: "down"}, graph.ErrStoreUnavailable},
		{"unknown", errors.New("boom"), graph.ErrStoreUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classify(graph.QueryCreateVisit, tc.err)
			if !errors.Is(err, tc.want) {
				t.Fatalf("classify(%v) = %v, want kind %v", tc.err, err, tc.want)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("classified error must keep its cause")
			}
		})
	}

	if classify("q", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
	already := graph.NewStoreError(graph.ErrStoreQueryRejected, "q", errors.New("x"))
	if got := classify("q", already); got != error(already) {
		t.Fatalf("store errors must pass through unchanged")
	}
}

func TestCountsAsFailure(t *testing.T) {
	if countsAsFailure(nil) {
		t.Fatalf("nil is a success")
	}
	if countsAsFailure(graph.NewStoreError(graph.ErrStoreQueryRejected, "q", errors.New("syntax"))) {
		t.Fatalf("rejected queries must not trip the breaker")
	}
	if countsAsFailure(graph.NewStoreError(graph.ErrStoreUnavailable, "q", context.Canceled)) {
		t.Fatalf("caller cancellation must not trip the breaker")
	}
	if !countsAsFailure(graph.NewStoreError(graph.ErrStoreTimeout, "q", context.DeadlineExceeded)) {
		t.Fatalf("timeouts must count")
	}
}

func TestNilClientIsUnavailable(t *testing.T) {
	var c *Client
	_, err := c.Read(context.Background(), graph.PingQuery())
	if !errors.Is(err, graph.ErrStoreUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if c.BreakerState() != "disabled" {
		t.Fatalf("nil client breaker state: %q", c.BreakerState())
	}
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}
