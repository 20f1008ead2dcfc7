package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/services"
)

// TrackVisits records the request as a Visit before the handler runs and
// stores the visit id on the request data. Tracking never fails the request.
func TrackVisits(hook services.TrackingHook) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hook == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil {
			rd = &ctxutil.RequestData{}
			ctx = ctxutil.WithRequestData(ctx, rd)
			c.Request = c.Request.WithContext(ctx)
		}

		id, ok := hook.OnRequest(ctx, services.RequestDescriptor{
			VisitRequest: navigation.VisitRequest{
				Method:      c.Request.Method,
				RequestURI:  c.Request.URL.RequestURI(),
				ClientIP:    c.ClientIP(),
				Referer:     c.Request.Referer(),
				UserID:      rd.UserID,
				Roles:       rd.Roles,
				RequestTime: time.Now().Unix(),
			},
			Ajax:     isAjax(c),
			SiteBase: siteBase(c),
		})
		if ok {
			rd.VisitID = id
			rd.HasVisit = true
		}
		c.Next()
	}
}

func isAjax(c *gin.Context) bool {
	if strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	if c.Query("_ajax") != "" {
		return true
	}
	if strings.HasPrefix(c.ContentType(), "application/x-www-form-urlencoded") {
		return c.PostForm("_ajax") != ""
	}
	return false
}

func siteBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")); proto != "" {
		scheme = strings.ToLower(strings.Split(proto, ",")[0])
	}
	if c.Request.Host == "" {
		return ""
	}
	return scheme + "://" + c.Request.Host
}
