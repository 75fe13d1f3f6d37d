package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam parses a numeric path parameter and stores it in the
// context under contextKey, aborting with 400 on malformed input.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || value == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + paramName + " parameter"})
			return
		}
		c.Set(contextKey, uint(value))
		c.Next()
	}
}
