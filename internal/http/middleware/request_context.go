package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/platform/ctxutil"
)

// AttachRequestContext gives every request an empty RequestData that later
// middleware fills with the principal and the recorded visit.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if ctxutil.GetRequestData(ctx) == nil {
			ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{})
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
