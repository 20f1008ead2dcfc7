package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/domain/navigation"
	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
	"github.com/yungbote/navgraph/internal/services"
)

type recordingHook struct {
	got  []services.RequestDescriptor
	id   int64
	fail bool
}

func (h *recordingHook) OnRequest(ctx context.Context, req services.RequestDescriptor) (int64, bool) {
	h.got = append(h.got, req)
	if h.fail || req.Ajax {
		return 0, false
	}
	return h.id, true
}

func (h *recordingHook) OnEntity(ctx context.Context, visitID int64, e navigation.Entity) {}

func trackedEngine(hook services.TrackingHook, seen *ctxutil.RequestData) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachRequestContext())
	r.Use(NewAuthMiddleware(logger.Nop(), services.NewAuthService(logger.Nop(), "")).AttachPrincipal())
	r.Use(TrackVisits(hook))
	handler := func(c *gin.Context) {
		*seen = *ctxutil.GetRequestData(c.Request.Context())
		c.Status(http.StatusOK)
	}
	r.GET("/pages/:entity_type/:entity_id", handler)
	r.POST("/pages/:entity_type/:entity_id", handler)
	return r
}

func TestTrackVisitsBuildsDescriptor(t *testing.T) {
	hook := &recordingHook{id: 0}
	var seen ctxutil.RequestData
	r := trackedEngine(hook, &seen)

	req := httptest.NewRequest(http.MethodGet, "http://site.example/pages/node/1?x=1", nil)
	req.Header.Set("Referer", "http://site.example/pages/node/0")
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if len(hook.got) != 1 {
		t.Fatalf("expected one tracked request, got %d", len(hook.got))
	}
	d := hook.got[0]
	if d.Method != "GET" || d.RequestURI != "/pages/node/1?x=1" || d.ClientIP != "10.1.2.3" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if d.Referer != "http://site.example/pages/node/0" || d.SiteBase != "http://site.example" {
		t.Fatalf("unexpected referer/base: %q %q", d.Referer, d.SiteBase)
	}
	if d.UserID != services.AnonymousUserID || len(d.Roles) != 1 || d.Roles[0] != services.AnonymousRole {
		t.Fatalf("anonymous principal expected, got uid=%q roles=%v", d.UserID, d.Roles)
	}
	if d.RequestTime <= 0 {
		t.Fatalf("request time must be set")
	}
	if !seen.HasVisit || seen.VisitID != 0 {
		t.Fatalf("visit id 0 must be carried on the request, got %+v", seen)
	}
}

func TestTrackVisitsAjaxAndFailures(t *testing.T) {
	cases := []struct {
		name  string
		build func() *http.Request
		fail  bool
		ajax  bool
	}{
		{
			name: "header",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/pages/node/1", nil)
				req.Header.Set("X-Requested-With", "XMLHttpRequest")
				return req
			},
			ajax: true,
		},
		{
			name: "query flag",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/pages/node/1?_ajax=1", nil)
			},
			ajax: true,
		},
		{
			name: "form flag",
			build: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/pages/node/1", strings.NewReader("_ajax=1"))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
			ajax: true,
		},
		{
			name: "store failure",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/pages/node/1", nil)
			},
			fail: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hook := &recordingHook{id: 5, fail: tc.fail}
			var seen ctxutil.RequestData
			rec := httptest.NewRecorder()
			trackedEngine(hook, &seen).ServeHTTP(rec, tc.build())

			if rec.Code != http.StatusOK {
				t.Fatalf("tracking must never fail the request, got %d", rec.Code)
			}
			if len(hook.got) != 1 || hook.got[0].Ajax != tc.ajax {
				t.Fatalf("unexpected descriptors: %+v", hook.got)
			}
			if seen.HasVisit {
				t.Fatalf("no visit id expected, got %+v", seen)
			}
		})
	}
}

func TestSiteBaseHonoursForwardedProto(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "http://www.example.com/pages/node/1", nil)
	c.Request.Header.Set("X-Forwarded-Proto", "https, http")
	if got := siteBase(c); got != "https://www.example.com" {
		t.Fatalf("siteBase: %q", got)
	}
}
