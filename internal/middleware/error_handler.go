package middleware

import (
	"property-dashboard/internal/errors"
	"property-dashboard/internal/models"
	"property-dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler catches errors and returns standardized responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr := errors.MapError(err)

			// Log technical details
			route := c.FullPath()
			if route == "" {
				route = unmatchedRoute
			}
			logger.GlobalLogger.Errorf("Request failed: route=%s, method=%s, client_ip=%s, code=%s, error=%s",
				route,
				c.Request.Method,
				c.ClientIP(),
				appErr.Code,
				appErr.TechnicalMessage)

			if c.Writer.Written() {
				return
			}
			c.JSON(appErr.HTTPStatus, models.ErrorResponse{
				Error:   appErr.UserMessage,
				Code:    appErr.Code,
				Details: appErr.Details,
			})
		}
	}
}
