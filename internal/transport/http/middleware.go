package httpt

import (
	"fmt"
	"net/http"
	"time"

	"shopsample/pkg/logger"

	"github.com/gin-gonic/gin"
)

const _headerRequestID = "X-Request-ID"

func (h *ProductHandler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(_headerRequestID)
		if requestID == "" {
			requestID = logger.NewRequestID()
		}

		ctx := logger.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(_headerRequestID, requestID)

		c.Next()
	}
}

func (h *ProductHandler) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method

		// Route templates keep the metric label set bounded.
		route := c.FullPath()

		h.log.LogAttrs(c.Request.Context(), logger.InfoLevel, "HTTP request",
			logger.String("method", method),
			logger.String("path", c.Request.URL.Path),
			logger.String("route", route),
			logger.Int("status", status),
			logger.Duration("duration", latency),
			logger.String("client_ip", c.ClientIP()),
			logger.String("user_agent", c.Request.UserAgent()),
		)

		h.http.Request(method, route, status, latency)
	}
}

func (h *ProductHandler) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		h.log.LogAttrs(c.Request.Context(), logger.ErrorLevel, "panic recovered",
			logger.String("path", c.Request.URL.Path),
			logger.String("panic", fmt.Sprint(recovered)),
		)
		h.abortWithError(c, http.StatusInternalServerError, "Internal service error", "")
	})
}
