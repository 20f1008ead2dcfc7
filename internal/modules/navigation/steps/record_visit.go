package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/platform/logger"
)

type RecordVisitDeps struct {
	Log   *logger.Logger
	Graph graph.Store
	// Now defaults to time.Now; overridden in tests.
	Now func() time.Time
}

type RecordVisitInput = navigation.VisitRequest

type RecordVisitOutput struct {
	VisitID     int64 `json:"visit_id"`
	PreviousID  int64 `json:"previous_id,omitempty"`
	HasPrevious bool  `json:"has_previous"`
}

// RecordVisit resolves the predecessor visit through the referer and then
// creates the visit, linked to that predecessor, in a single write. A failed
// lookup aborts the whole operation so no half-linked visit is produced.
func RecordVisit(ctx context.Context, deps RecordVisitDeps, in RecordVisitInput) (RecordVisitOutput, error) {
	if deps.Graph == nil {
		return RecordVisitOutput{}, ErrNoStore
	}
	method := strings.ToUpper(strings.TrimSpace(in.Method))
	uri := strings.TrimSpace(in.RequestURI)
	if method == "" || uri == "" {
		return RecordVisitOutput{}, ErrInvalidVisit
	}
	at := in.RequestTime
	if at <= 0 {
		now := time.Now
		if deps.Now != nil {
			now = deps.Now
		}
		at = now().Unix()
	}
	user := in.User()

	prev, hasPrev, err := graph.FindPreviousVisit(ctx, deps.Graph, user.UID, in.ClientIP, in.Referer)
	if err != nil {
		return RecordVisitOutput{}, fmt.Errorf("find previous visit: %w", err)
	}

	id, err := graph.CreateVisit(ctx, deps.Graph, graph.NewVisit{
		User:        user,
		Method:      method,
		RequestURI:  uri,
		ClientIP:    in.ClientIP,
		RequestTime: at,
		Previous:    prev,
		HasPrevious: hasPrev,
	})
	if err != nil {
		return RecordVisitOutput{}, fmt.Errorf("create visit: %w", err)
	}

	if deps.Log != nil {
		deps.Log.Debug("visit recorded",
			"visit_id", id,
			"uid", user.UID,
			"client_ip", in.ClientIP,
			"request_uri", uri,
			"linked", hasPrev,
		)
	}
	return RecordVisitOutput{VisitID: id, PreviousID: prev, HasPrevious: hasPrev}, nil
}
