package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naemfares/weathermail/internal/domain"
	"github.com/naemfares/weathermail/internal/token"
)

const (
	errTokenInvalid = "Invalid token"
	errTokenExpired = "Token expired"
)

// Auth validates a Bearer JWT and sets "email" in the gin context.
func Auth(tokens *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}

		email, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			msg := errTokenInvalid
			if errors.Is(err, domain.ErrTokenExpired) {
				msg = errTokenExpired
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set("email", email)
		c.Next()
	}
}
