package handlers

import (
	"errors"

	"github.com/yungbote/navgraph/internal/data/graph"
	navmod "github.com/yungbote/navgraph/internal/modules/navigation"
	"github.com/yungbote/navgraph/internal/platform/apierr"
	"github.com/yungbote/navgraph/internal/services"
)

// toAPIError maps domain and store errors onto HTTP statuses.
func toAPIError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrUnknownPlacement):
		return apierr.NotFound("placement_not_found", err)
	case errors.Is(err, navmod.ErrInvalidVisit):
		return apierr.BadRequest("invalid_visit", err)
	case errors.Is(err, navmod.ErrInvalidEntity):
		return apierr.BadRequest("invalid_entity", err)
	case errors.Is(err, navmod.ErrInvalidAnchor):
		return apierr.BadRequest("invalid_anchor", err)
	case errors.Is(err, navmod.ErrNoStore):
		return apierr.Unavailable("graph_not_configured", err)
	case errors.Is(err, graph.ErrStoreTimeout),
		errors.Is(err, graph.ErrStoreUnavailable),
		errors.Is(err, graph.ErrStoreQueryRejected):
		return apierr.Unavailable("graph_"+graph.KindOf(err), err)
	default:
		return err
	}
}
