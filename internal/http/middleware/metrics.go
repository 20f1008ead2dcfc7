package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/observability"
	"github.com/yungbote/navgraph/internal/platform/ctxutil"
)

// Metrics records request counts and latency per route, split by whether the
// request produced a tracked visit.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		_, tracked := ctxutil.VisitID(c.Request.Context())
		m.ObserveAPI(observability.APIRequest{
			Method:  c.Request.Method,
			Route:   route,
			Status:  strconv.Itoa(c.Writer.Status()),
			Tracked: tracked,
		}, time.Since(start))
	}
}
