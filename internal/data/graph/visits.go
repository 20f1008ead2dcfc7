package graph

import (
	"context"
	"errors"
	"strings"

	"github.com/yungbote/navgraph/internal/domain/navigation"
)

// FindPreviousVisit returns the most recent visit of uid from ip whose page URI
// equals referer. An empty referer or no match reports ok=false with a nil error.
func FindPreviousVisit(ctx context.Context, store Store, uid, ip, referer string) (int64, bool, error) {
	if strings.TrimSpace(referer) == "" {
		return 0, false, nil
	}
	res, err := store.Read(ctx, Query{
		Name:   QueryPreviousVisit,
		Cypher: previousVisitCypher,
		Params: map[string]any{
			"uid": uid,
			"ip":  ip,
			"uri": referer,
		},
	})
	if err != nil {
		return 0, false, err
	}
	rec, ok := res.First()
	if !ok {
		return 0, false, nil
	}
	id, ok := rec.Int64("id")
	return id, ok, nil
}

// NewVisit is everything needed to create one Visit node and its edges.
type NewVisit struct {
	User        navigation.UserKey
	Method      string
	RequestURI  string
	ClientIP    string
	RequestTime int64

	Previous    int64
	HasPrevious bool
}

// CreateVisit merges the User and Page, creates the Visit with its VISIT and OF
// edges and, when a predecessor is given, the PREV edge, all in one statement.
func CreateVisit(ctx context.Context, store Store, v NewVisit) (int64, error) {
	roles := v.User.Roles
	if roles == nil {
		roles = []string{}
	}
	params := map[string]any{
		"uid":         v.User.UID,
		"roles":       roles,
		"requestUri":  v.RequestURI,
		"method":      v.Method,
		"ip":          v.ClientIP,
		"requestTime": v.RequestTime,
	}
	cypher := createVisitCypher
	if v.HasPrevious {
		cypher = createLinkedVisitCypher
		params["previous"] = v.Previous
	}
	res, err := store.Write(ctx, Query{Name: QueryCreateVisit, Cypher: cypher, Params: params})
	if err != nil {
		return 0, err
	}
	rec, ok := res.First()
	if !ok {
		return 0, NewStoreError(ErrStoreQueryRejected, QueryCreateVisit, errors.New("no visit id returned"))
	}
	id, ok := rec.Int64("id")
	if !ok {
		return 0, NewStoreError(ErrStoreQueryRejected, QueryCreateVisit, errors.New("visit id is not an integer"))
	}
	return id, nil
}
