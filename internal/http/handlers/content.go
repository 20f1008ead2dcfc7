package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/http/response"
	"github.com/yungbote/navgraph/internal/services"
)

type ContentHandler struct {
	content services.ContentService
}

func NewContentHandler(content services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// PUT /api/content
func (h *ContentHandler) Upsert(c *gin.Context) {
	var in services.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if in.EntityType == "" || in.Bundle == "" || in.EntityID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_entity", nil)
		return
	}
	row, err := h.content.Upsert(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "content_upsert_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"entity": row})
}

// DELETE /api/content/:entity_type/:entity_id
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.content.Delete(c.Request.Context(), c.Param("entity_type"), c.Param("entity_id")); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "content_delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
