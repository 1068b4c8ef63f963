package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wordbook/api/internal/middleware"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}
