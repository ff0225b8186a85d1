package middleware

import (
	"net/http"
	"time"

	"property-dashboard/internal/errors"
	"property-dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute stands in for the route template when no handler matched.
const unmatchedRoute = "unmatched"

// LoggingMiddleware writes one line per request keyed by the route template,
// so session ids and listing indexes do not fan out into distinct paths.
// Server errors log at ERROR, client errors at WARN.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()
		code := "-"
		if len(c.Errors) > 0 {
			code = errors.MapError(c.Errors.Last().Err).Code
		}

		const line = "route=%q method=%s status=%d code=%s latency=%v client_ip=%s"
		args := []interface{}{route, c.Request.Method, status, code, time.Since(start), c.ClientIP()}
		switch {
		case status >= http.StatusInternalServerError:
			logger.GlobalLogger.Errorf(line, args...)
		case status >= http.StatusBadRequest:
			logger.GlobalLogger.Warnf(line, args...)
		default:
			logger.GlobalLogger.Printf(line, args...)
		}
	}
}
