package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// AttachTraceContext stores the request's trace and request ids for logging
// and echoes them back in the response headers.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		td := ctxutil.ResolveTraceData(ctx, c.GetHeader(headerTraceID), c.GetHeader(headerRequestID))
		c.Request = c.Request.WithContext(ctxutil.WithTraceData(ctx, td))
		c.Writer.Header().Set(headerTraceID, td.TraceID)
		c.Writer.Header().Set(headerRequestID, td.RequestID)
		c.Next()
	}
}
