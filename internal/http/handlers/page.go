package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/http/response"
	navmod "github.com/yungbote/navgraph/internal/modules/navigation"
	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
	"github.com/yungbote/navgraph/internal/services"
)

// PageHandler renders an entity page as JSON: the entity itself plus the
// recommendation block for it. The request has already been recorded as a
// visit by the tracking middleware.
type PageHandler struct {
	log             *logger.Logger
	content         services.ContentService
	tracking        services.TrackingHook
	recommendations services.RecommendationService
}

func NewPageHandler(log *logger.Logger, content services.ContentService, tracking services.TrackingHook, recommendations services.RecommendationService) *PageHandler {
	return &PageHandler{
		log:             log.With("handler", "PageHandler"),
		content:         content,
		tracking:        tracking,
		recommendations: recommendations,
	}
}

// GET /pages/:entity_type/:entity_id
func (h *PageHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	route := navmod.CanonicalRoute(c.Param("entity_type"))
	entityType := navmod.EntityTypeFromRoute(route)
	if entityType == "" {
		response.RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}

	row, err := h.content.Get(ctx, entityType, c.Param("entity_id"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "content_load_failed", err)
		return
	}
	if row == nil {
		response.RespondError(c, http.StatusNotFound, "entity_not_found", nil)
		return
	}
	entity := navigation.Entity{EntityType: row.EntityType, Bundle: row.Bundle, EntityID: row.EntityID}

	if visitID, ok := ctxutil.VisitID(ctx); ok && h.tracking != nil {
		h.tracking.OnEntity(ctx, visitID, entity)
	}

	res, err := h.recommendations.Recommend(ctx, services.RecommendationQuery{
		Placement: c.Query("placement"),
		Entity:    entity,
	})
	if err != nil {
		response.RespondAPIError(c, toAPIError(err))
		return
	}
	response.RespondOK(c, gin.H{
		"route":           route,
		"entity":          row,
		"recommendations": res,
	})
}
