package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoyacJ/qmt-gateway/models"
)

const (
	bearerPrefix     = "Bearer "
	CodeUnauthorized = "UNAUTHORIZED"
)

// BearerAuth gates every route it is attached to behind a static token.
// An empty token disables the gate.
func BearerAuth(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		got := []byte(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			abortUnauthorized(c, "invalid bearer token")
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: msg,
		Code:  CodeUnauthorized,
	})
}
