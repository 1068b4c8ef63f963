package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wordbook/api/internal/middleware"
	"github.com/wordbook/api/internal/ratelimit"
	"github.com/wordbook/api/internal/scheduler"
)

type RouterConfig struct {
	Auth      *AuthHandler
	Words     *WordHandler
	Users     *UserHandler
	Health    *HealthHandler
	JWTSecret string
	// AuthUsers resolves the user behind a token.
	AuthUsers middleware.UserFinder
	// Limiter may be nil to disable rate limiting.
	Limiter *ratelimit.Limiter
	// Warmer is nil when the background cache warmer is disabled.
	Warmer *scheduler.CacheWarmer
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "x-cache")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/", cfg.Health.Welcome)
	r.GET("/health", cfg.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/scheduler/status", func(c *gin.Context) {
		if cfg.Warmer != nil {
			c.JSON(200, cfg.Warmer.GetStatus())
		} else {
			c.JSON(200, gin.H{"enabled": false, "message": "Cache warmer is disabled"})
		}
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", middleware.RateLimit(cfg.Limiter, ratelimit.ActionSignup), cfg.Auth.Signup)
		authGroup.POST("/signin", middleware.RateLimit(cfg.Limiter, ratelimit.ActionSignin), cfg.Auth.Signin)
	}

	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret, cfg.AuthUsers)

	entries := r.Group("/entries/en", requireAuth)
	{
		entries.GET("", middleware.RateLimit(cfg.Limiter, ratelimit.ActionList), cfg.Words.List)
		entries.GET("/:wordId", middleware.RateLimit(cfg.Limiter, ratelimit.ActionLookup), cfg.Words.Get)
		entries.DELETE("/:wordId/cache", cfg.Words.ClearCache)
	}

	user := r.Group("/user/me", requireAuth)
	{
		user.GET("", cfg.Users.Me)
		user.GET("/history", cfg.Users.History)
		user.GET("/favorites", cfg.Users.Favorites)
		user.POST("/:wordId/favorite", cfg.Users.MarkFavorite)
		user.DELETE("/:wordId/unfavorite", cfg.Users.UnmarkFavorite)
	}

	return r
}
