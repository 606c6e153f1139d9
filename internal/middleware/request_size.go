package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-occupancy-tracker/pkg/utils"
)

// Every payload here is a small JSON object; 1 MiB is generous.
const DefaultMaxRequestSize = 1 << 20

// RequestSizeLimitMiddleware caps incoming request bodies at maxSize bytes.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
