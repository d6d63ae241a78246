package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafsal3/VideoGen-v1/internal/auth/domain"
)

const (
	CtxUser     = "current_user"
	CtxUsername = "username"
)

// TokenVerifier resolves a bearer token to a user.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// RequireUser validates the Authorization bearer token and stores the
// resolved user in the Gin context. Requests without a valid token get 401.
func RequireUser(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		user, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUsername, user.Username)
		c.Next()
	}
}

// OptionalUser resolves the bearer token when present but never rejects.
// Used on catalog listings so anonymous browsing still works.
func OptionalUser(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if user, err := verifier.VerifyToken(c.Request.Context(), token); err == nil {
				c.Set(CtxUser, user)
				c.Set(CtxUsername, user.Username)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the Gin context, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// Username extracts the authenticated username from the Gin context.
func Username(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUsername))
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
