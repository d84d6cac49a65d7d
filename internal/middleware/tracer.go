package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/collabpad/collab-notepad-service/pkg/util"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
	DefaultTraceIDHeader = "X-Trace-ID"
	// TraceIDKey Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
)

// TraceMiddleware 创建请求追踪中间件（支持依赖注入）
// 功能：
// 1. 从请求头获取或生成唯一的 Trace ID
// 2. 将 Trace ID 注入到 gin.Context 和 request.Context
// 3. 在响应头中返回 Trace ID
func TraceMiddleware(enabled bool, headerName string) gin.HandlerFunc {
	if headerName == "" {
		headerName = DefaultTraceIDHeader
	}

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		// 尝试从请求头获取 Trace ID
		traceID := c.GetHeader(headerName)
		if traceID == "" {
			// 生成新的 Trace ID
			traceID = generateTraceID()
		}

		// 存储到 gin.Context
		c.Set(TraceIDKey, traceID)

		// 注入到 request.Context
		ctx := context.WithValue(c.Request.Context(), TraceIDKey, traceID)
		c.Request = c.Request.WithContext(ctx)

		// 添加到响应头
		c.Header(headerName, traceID)

		c.Next()
	}
}

// generateTraceID 生成唯一的 Trace ID
// 格式: {timestamp_nano}-{random}
func generateTraceID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), util.GetRandomString(8))
}

// GetTraceID 从 context.Context 获取 Trace ID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(TraceIDKey).(string); ok {
		return id
	}
	return ""
}
