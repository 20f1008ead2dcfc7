package graph

import (
	"context"
	"fmt"
	"strconv"
)

// Query is one parameterized Cypher statement. Name identifies the statement for
// tracing, metrics and test doubles; it never changes the semantics.
type Query struct {
	Name   string
	Cypher string
	Params map[string]any
}

// Store executes single queries, each in its own transaction.
type Store interface {
	Read(ctx context.Context, q Query) (Result, error)
	Write(ctx context.Context, q Query) (Result, error)
}

type Result struct {
	Records []Record
}

func (r Result) First() (Record, bool) {
	if len(r.Records) == 0 {
		return nil, false
	}
	return r.Records[0], true
}

// Record is one row keyed by column alias.
type Record map[string]any

// String returns the column as text; integer columns are formatted in base 10.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (r Record) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func (r Record) Float64(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}
