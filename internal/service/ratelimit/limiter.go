package ratelimit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Counter increments a windowed counter and returns its current value.
type Counter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter enforces fixed-window request limits per route and client.
type Limiter struct {
	counter Counter
	window  time.Duration
	limits  map[string]int64
	logger  *zap.Logger
	now     func() time.Time
}

func NewLimiter(counter Counter, window time.Duration, limits map[string]int64, logger *zap.Logger) *Limiter {
	return &Limiter{
		counter: counter,
		window:  window,
		limits:  limits,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow reports whether one more request from client on route fits in the
// current window. Routes without a limit are always allowed. Counter errors
// allow the request.
func (l *Limiter) Allow(ctx context.Context, route, client string) bool {
	limit, ok := l.limits[route]
	if !ok || limit <= 0 {
		return true
	}

	key := l.key(route, client)
	count, err := l.counter.IncrWindow(ctx, key, l.window)
	if err != nil {
		l.logger.Warn("Rate limit check failed, allowing request",
			zap.String("route", route),
			zap.String("client", client),
			zap.Error(err),
		)
		return true
	}

	if count > limit {
		l.logger.Info("Rate limit exceeded",
			zap.String("route", route),
			zap.String("client", client),
			zap.Int64("count", count),
			zap.Int64("limit", limit),
		)
		return false
	}
	return true
}

// key buckets by window start so a new window gets a fresh counter even if
// the previous key has not expired yet.
func (l *Limiter) key(route, client string) string {
	slot := l.now().UnixMilli() / l.window.Milliseconds()
	return fmt.Sprintf("ratelimit:%s:%s:%d", route, client, slot)
}
