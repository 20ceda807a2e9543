package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursecatalog-backend/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/ids", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, td.TraceID+"|"+td.RequestID)
	})

	t.Run("generates ids", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ids", nil))
		traceID, reqID := rec.Header().Get(HeaderTraceID), rec.Header().Get(HeaderRequestID)
		if traceID == "" || reqID == "" {
			t.Fatalf("expected generated ids, got trace=%q request=%q", traceID, reqID)
		}
		if rec.Body.String() != traceID+"|"+reqID {
			t.Fatalf("context ids %q do not match headers", rec.Body.String())
		}
	})

	t.Run("keeps caller ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ids", nil)
		req.Header.Set(HeaderTraceID, "trace-1")
		req.Header.Set(HeaderRequestID, "req-1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Body.String() != "trace-1|req-1" {
			t.Fatalf("unexpected ids: %s", rec.Body.String())
		}
	})
}

func TestMetricsMiddlewareDisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil), RequestLogger(nil))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK || !bytes.Equal(rec.Body.Bytes(), []byte("ok")) {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}
