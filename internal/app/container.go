package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/glisdarx/beee-media/internal/config"
	"github.com/glisdarx/beee-media/internal/constants"
	"github.com/glisdarx/beee-media/internal/server"
	"github.com/glisdarx/beee-media/internal/service/cache"
	"github.com/glisdarx/beee-media/internal/service/creator"
	"github.com/glisdarx/beee-media/internal/service/database"
	"github.com/glisdarx/beee-media/internal/service/library"
	"github.com/glisdarx/beee-media/internal/service/ratelimit"
	"github.com/glisdarx/beee-media/internal/service/trends"
	"github.com/glisdarx/beee-media/internal/tikhub"
	"go.uber.org/zap"
)

// Container bundles assembled services for the HTTP server.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Creators *creator.Service
	Trends   *trends.Service
	Library  *library.Service

	server  *server.Server
	closers []func()
}

// Build assembles the upstream client, optional Redis and PostgreSQL backends,
// and the HTTP routes. Redis is optional at runtime: if it cannot be reached the
// service starts without rate limiting. A configured but unreachable database
// is a startup error.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	client := tikhub.NewClient(cfg.TikHub.BaseURL, cfg.TikHub.APIKey, logger)
	c.Creators = creator.NewService(client, logger)
	c.Trends = trends.NewService(client, logger)

	checks := make(map[string]server.DependencyCheck)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if cacheErr != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(cacheErr))
		} else {
			c.closers = append(c.closers, func() {
				_ = cacheSvc.Close()
			})
			checks["redis"] = cacheSvc.Ping
			limiter = ratelimit.NewLimiter(cacheSvc, constants.RateLimitConfig.Window, map[string]int64{
				server.RouteSearch: int64(cfg.RateLimit.SearchPerMinute),
				server.RouteTrends: int64(cfg.RateLimit.TrendsPerMinute),
			}, logger)
			logger.Info("Rate limiting enabled",
				zap.Int("search_per_minute", cfg.RateLimit.SearchPerMinute),
				zap.Int("trends_per_minute", cfg.RateLimit.TrendsPerMinute),
			)
		}
	}

	if cfg.Postgres.Enabled() {
		postgresSvc, dbErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if dbErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", dbErr)
		}
		c.closers = append(c.closers, func() {
			_ = postgresSvc.Close()
		})

		if err := postgresSvc.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		checks["postgres"] = postgresSvc.Ping
		db := postgresSvc.GetDB()
		c.Library = library.NewService(
			library.NewHistoryRepository(db, logger),
			library.NewFavoriteRepository(db, logger),
			logger,
		)
		// Flush pending history writes before the pool closes.
		c.closers = append(c.closers, c.Library.Wait)
	} else {
		logger.Info("POSTGRES_HOST not set, search history and favorites disabled")
	}

	c.server, err = server.New(server.Dependencies{
		Creators:       c.Creators,
		Trends:         c.Trends,
		Library:        c.Library,
		Limiter:        limiter,
		Checks:         checks,
		TrustedProxies: cfg.Server.TrustedProxies,
		Info: server.Info{
			TikHubBaseURL:    cfg.TikHub.BaseURL,
			TikHubConfigured: cfg.TikHub.APIKey != "",
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// NewHTTPServer returns an http.Server bound to the configured address.
// WriteTimeout leaves room for the upstream call timeout.
func (c *Container) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              c.Config.Server.Addr(),
		Handler:           c.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      constants.APIConfig.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Close releases backends in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
