package graph

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable   = errors.New("graph store unavailable")
	ErrStoreTimeout       = errors.New("graph store timeout")
	ErrStoreQueryRejected = errors.New("graph store rejected query")
)

// StoreError wraps a store failure with its kind (one of the Err* sentinels) and
// the name of the query that failed. errors.Is matches both the kind and the cause.
type StoreError struct {
	Kind  error
	Query string
	Err   error
}

func NewStoreError(kind error, query string, err error) *StoreError {
	return &StoreError{Kind: kind, Query: query, Err: err}
}

func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("graph %s: %v", e.Query, e.Kind)
	}
	return fmt.Sprintf("graph %s: %v: %v", e.Query, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// KindOf returns a short label for metrics and logs.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrStoreTimeout):
		return "timeout"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	case errors.Is(err, ErrStoreQueryRejected):
		return "rejected"
	default:
		return "error"
	}
}
