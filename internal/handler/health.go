package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingFunc reports whether a backing service is reachable.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	database PingFunc
	cache    PingFunc
}

func NewHealthHandler(database, cache PingFunc) *HealthHandler {
	return &HealthHandler{database: database, cache: cache}
}

func (h *HealthHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Fullstack Challenge 🏅 - Dictionary"})
}

// Health reports 503 only when the database is down. A missing cache only
// degrades lookups.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	db := probe(ctx, h.database)
	cache := probe(ctx, h.cache)

	status, code := "ok", http.StatusOK
	switch {
	case db != "up":
		status, code = "unavailable", http.StatusServiceUnavailable
	case cache != "up":
		status = "degraded"
	}
	c.JSON(code, gin.H{"status": status, "database": db, "cache": cache})
}

func probe(ctx context.Context, ping PingFunc) string {
	if ping == nil || ping(ctx) != nil {
		return "down"
	}
	return "up"
}
