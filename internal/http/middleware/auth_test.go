package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursecatalog-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
	"github.com/yungbote/coursecatalog-backend/internal/services"
)

func newAuthRouter(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth := services.NewAuthService(logger.Nop(), "mw-secret", "", time.Hour)
	am := NewAuthMiddleware(logger.Nop(), auth)

	whoami := func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()).String())
	}
	r := gin.New()
	r.GET("/optional", am.OptionalAuth(), whoami)
	r.GET("/private", am.RequireAuth(), whoami)
	r.GET("/staff", am.RequireAuth(), am.RequireStaff(), whoami)
	return r, auth
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareVariants(t *testing.T) {
	r, auth := newAuthRouter(t)
	learner := uuid.New()
	staff := uuid.New()
	learnerTok, err := auth.IssueAccessToken(learner, false, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	staffTok, err := auth.IssueAccessToken(staff, true, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name   string
		path   string
		token  string
		status int
		body   string
	}{
		{"optional anonymous", "/optional", "", http.StatusOK, uuid.Nil.String()},
		{"optional learner", "/optional", learnerTok, http.StatusOK, learner.String()},
		{"optional bad token", "/optional", "garbage", http.StatusUnauthorized, ""},
		{"private anonymous", "/private", "", http.StatusUnauthorized, ""},
		{"private learner", "/private", learnerTok, http.StatusOK, learner.String()},
		{"staff as learner", "/staff", learnerTok, http.StatusForbidden, ""},
		{"staff as staff", "/staff", staffTok, http.StatusOK, staff.String()},
		{"staff anonymous", "/staff", "", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(r, tc.path, tc.token)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tc.body)
			}
		})
	}
}
