package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/data/graph"
	"github.com/yungbote/navgraph/internal/http/response"
)

// GraphPinger is the connectivity check of the graph store client.
type GraphPinger interface {
	Ping(ctx context.Context) error
	BreakerState() string
}

type HealthHandler struct {
	graph GraphPinger
}

// NewHealthHandler accepts a nil pinger when no graph store is configured.
func NewHealthHandler(graph GraphPinger) *HealthHandler { return &HealthHandler{graph: graph} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) GraphHealth(c *gin.Context) {
	if h.graph == nil {
		response.RespondError(c, http.StatusServiceUnavailable, "graph_not_configured", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := h.graph.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"kind":    graph.KindOf(err),
			"breaker": h.graph.BreakerState(),
			"error":   err.Error(),
		})
		return
	}
	response.RespondOK(c, gin.H{"status": "ok", "breaker": h.graph.BreakerState()})
}
