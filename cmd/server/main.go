package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wordbook/api/internal/cache"
	"github.com/wordbook/api/internal/catalog"
	"github.com/wordbook/api/internal/client"
	"github.com/wordbook/api/internal/config"
	"github.com/wordbook/api/internal/database"
	"github.com/wordbook/api/internal/dictionary"
	"github.com/wordbook/api/internal/handler"
	"github.com/wordbook/api/internal/metrics"
	"github.com/wordbook/api/internal/ratelimit"
	"github.com/wordbook/api/internal/repository"
	"github.com/wordbook/api/internal/scheduler"
	"github.com/wordbook/api/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	gin.SetMode(cfg.GinMode)

	if err := validator.RegisterBindings(); err != nil {
		logger.Error("register validators", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate database", "error", err)
		os.Exit(1)
	}

	// Lookups keep working without Redis, just uncached.
	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Warn("redis disabled", "error", err)
	}
	defer redisCache.Close()

	users := repository.NewUserRepository(db)
	words := repository.NewWordRepository(db)
	history := repository.NewHistoryRepository(db)
	favorites := repository.NewFavoriteRepository(db)

	provider := client.NewDictionaryClient(cfg.DictionaryAPIURL, cfg.DictionaryTimeout)
	dict := dictionary.NewService(redisCache, provider, cfg.CacheTTL, logger,
		dictionary.WithObserver(metrics.RecordWordLookup))
	paginator := catalog.NewPaginator(words)

	var limiter *ratelimit.Limiter
	if cfg.RateLimitEnabled && redisCache.Client() != nil {
		limiter = ratelimit.NewLimiter(ratelimit.NewRedisStorage(redisCache.Client()), ratelimit.DefaultLimits)
	}

	var warmer *scheduler.CacheWarmer
	if cfg.WarmerEnabled {
		warmer = scheduler.NewCacheWarmer(paginator, dict, scheduler.WarmerConfig{
			Interval:  cfg.WarmerInterval,
			BatchSize: cfg.WarmerBatchSize,
		}, logger)
		go warmer.Start(ctx)
		defer warmer.Stop()
	}

	router := handler.NewRouter(handler.RouterConfig{
		Auth:   handler.NewAuthHandler(users, cfg.JWTSecret, cfg.JWTExpiry, cfg.BcryptCost, logger),
		Words:  handler.NewWordHandler(words, paginator, dict, history, favorites, logger),
		Users:  handler.NewUserHandler(users, words, history, favorites, logger),
		Health: handler.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }, redisCache.Ping),

		JWTSecret: cfg.JWTSecret,
		AuthUsers: users,
		Limiter:   limiter,
		Warmer:    warmer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", "error", err)
	}
}
