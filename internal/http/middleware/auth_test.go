package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/navgraph/internal/platform/ctxutil"
	"github.com/yungbote/navgraph/internal/platform/logger"
	"github.com/yungbote/navgraph/internal/services"
)

func TestAttachPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := services.NewAuthService(logger.Nop(), "secret")
	token, err := auth.IssueToken("42", []string{"editor"}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	r := gin.New()
	r.Use(AttachRequestContext())
	r.Use(NewAuthMiddleware(logger.Nop(), auth).AttachPrincipal())
	r.GET("/whoami", func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.String(http.StatusOK, rd.UserID)
	})

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"anonymous", "", http.StatusOK, services.AnonymousUserID},
		{"bearer", "Bearer " + token, http.StatusOK, "42"},
		{"lowercase scheme", "bearer " + token, http.StatusOK, "42"},
		{"invalid", "Bearer nope", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantStatus)
			}
			if tc.wantBody != "" && rec.Body.String() != tc.wantBody {
				t.Fatalf("body: got=%q want=%q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}
