package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wordbook/api/internal/auth"
	"github.com/wordbook/api/internal/model"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// AuthMiddleware requires a valid JWT whose user still exists.
func AuthMiddleware(jwtSecret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
			abort(c, http.StatusUnauthorized, "Token is required")
			return
		}

		claims, err := auth.ValidateAccessToken(strings.TrimSpace(parts[1]), jwtSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abort(c, http.StatusUnauthorized, "Token has expired")
				return
			}
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, model.ErrNotFound) {
			abort(c, http.StatusUnauthorized, "User not found")
			return
		}
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "load authenticated user", "user_id", claims.UserID, "error", err)
			abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)

		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
