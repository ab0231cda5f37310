package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parkatlas/core/internal/pkg/jwt"
	"github.com/parkatlas/core/internal/pkg/response"
	"github.com/parkatlas/core/internal/repository"
)

const ContextKeyUserID = "user_id"

// Auth returns a middleware that enforces JWT authentication and confirms the
// token's subject still exists.
func Auth(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := validateToken(users, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not
// block the request.
func OptionalAuth(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := validateToken(users, extractToken(c)); err == nil {
			c.Set(ContextKeyUserID, userID)
		}
		c.Next()
	}
}

func validateToken(users repository.UserRepository, rawToken string) (string, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return "", errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return "", err
	}
	user, err := users.ByID(claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.New("user no longer exists")
	}
	return user.ID, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
