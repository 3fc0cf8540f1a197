package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "req-42")
	req.Header.Set(headerTraceID, "trace.abc_1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.NotNil(t, seen)
	require.Equal(t, "req-42", seen.RequestID)
	require.Equal(t, "trace.abc_1", seen.TraceID)
	require.Equal(t, "req-42", rec.Header().Get(headerRequestID))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "bad\nid")
	req.Header.Set(headerTraceID, strings.Repeat("t", 65))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.NotEqual(t, "bad\nid", seen.RequestID)
	require.Len(t, seen.RequestID, 36)
	require.Len(t, seen.TraceID, 36)
	require.Equal(t, seen.TraceID, rec.Header().Get(headerTraceID))
}
