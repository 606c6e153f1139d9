package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse writes the uniform error body. Every failure leaving the API
// boundary is reduced to {"error": message}.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// SuccessResponse writes {"message": ..., "data": ...}; data is omitted when nil.
func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}
