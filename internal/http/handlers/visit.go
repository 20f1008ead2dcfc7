package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/http/response"
	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/services"
)

type VisitHandler struct {
	tracking services.TrackingService
}

func NewVisitHandler(tracking services.TrackingService) *VisitHandler {
	return &VisitHandler{tracking: tracking}
}

type recordVisitRequest struct {
	Method      string   `json:"method"`
	RequestURI  string   `json:"request_uri"`
	ClientIP    string   `json:"client_ip"`
	Referer     string   `json:"referer"`
	UserID      string   `json:"user_id"`
	Roles       []string `json:"roles"`
	RequestTime int64    `json:"request_time"`
}

// POST /api/visits
func (h *VisitHandler) RecordVisit(c *gin.Context) {
	var req recordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	// The caller's principal stands in when the body names no user.
	if strings.TrimSpace(req.UserID) == "" {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			req.UserID = rd.UserID
			req.Roles = rd.Roles
		}
	}
	id, err := h.tracking.RecordVisit(c.Request.Context(), navigation.VisitRequest{
		Method:      req.Method,
		RequestURI:  req.RequestURI,
		ClientIP:    req.ClientIP,
		Referer:     req.Referer,
		UserID:      req.UserID,
		Roles:       req.Roles,
		RequestTime: req.RequestTime,
	})
	if err != nil {
		response.RespondAPIError(c, toAPIError(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"visit_id": id})
}

// POST /api/visits/:id/entities
func (h *VisitHandler) ObserveEntity(c *gin.Context) {
	visitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_visit_id", err)
		return
	}
	var e navigation.Entity
	if err := c.ShouldBindJSON(&e); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.tracking.ObserveEntity(c.Request.Context(), visitID, e); err != nil {
		response.RespondAPIError(c, toAPIError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
