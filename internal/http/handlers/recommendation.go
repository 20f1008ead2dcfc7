package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/http/response"
	"github.com/yungbote/navgraph/internal/services"
)

type RecommendationHandler struct {
	recommendations services.RecommendationService
}

func NewRecommendationHandler(recommendations services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// GET /api/recommendations?placement=&entity_type=&bundle=&entity_id=&limit=&max_hops=&strict=
func (h *RecommendationHandler) List(c *gin.Context) {
	limit, err := optionalInt(c, "limit")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	maxHops, err := optionalInt(c, "max_hops")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_max_hops", err)
		return
	}
	strict, _ := strconv.ParseBool(c.DefaultQuery("strict", "false"))

	res, err := h.recommendations.Recommend(c.Request.Context(), services.RecommendationQuery{
		Placement: c.Query("placement"),
		Entity: navigation.Entity{
			EntityType: c.Query("entity_type"),
			Bundle:     c.Query("bundle"),
			EntityID:   c.Query("entity_id"),
		},
		Limit:   limit,
		MaxHops: maxHops,
		Strict:  strict,
	})
	if err != nil {
		response.RespondAPIError(c, toAPIError(err))
		return
	}
	response.RespondOK(c, res)
}

func optionalInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
