package middlewares

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs one line when it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		user := "-"
		if userID, _, ok := CurrentUser(c); ok {
			user = strconv.FormatUint(uint64(userID), 10)
		}
		log.Printf("[HTTP] %s %s %d %s user=%s ip=%s id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), user, c.ClientIP(), requestID)
	}
}
