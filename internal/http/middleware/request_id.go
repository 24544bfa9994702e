package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"schenkly.app/concierge/common/id"
	"schenkly.app/concierge/common/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID assigns each request a Snowflake ID, returns it in the response
// header, and threads it through the request context for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.New()
		c.Header(RequestIDHeader, strconv.FormatInt(requestID, 10))

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: logger.Ptr(requestID),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
