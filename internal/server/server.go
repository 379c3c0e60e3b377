package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glisdarx/beee-media/internal/constants"
	"github.com/glisdarx/beee-media/internal/service/creator"
	"github.com/glisdarx/beee-media/internal/service/library"
	"github.com/glisdarx/beee-media/internal/service/ratelimit"
	"github.com/glisdarx/beee-media/internal/service/trends"
	"go.uber.org/zap"
)

// Route names used as rate limit buckets.
const (
	RouteSearch = "search"
	RouteTrends = "trends"
)

// DependencyCheck pings one backing service for the health endpoint.
type DependencyCheck func(ctx context.Context) error

// Dependencies wires the server. Library and Limiter are optional; a nil value
// disables the corresponding feature. Forwarding headers are only honoured from
// TrustedProxies, so rate limit buckets follow the peer address otherwise.
type Dependencies struct {
	Creators       *creator.Service
	Trends         *trends.Service
	Library        *library.Service
	Limiter        *ratelimit.Limiter
	Checks         map[string]DependencyCheck
	TrustedProxies []string
	Info           Info
	Logger         *zap.Logger
}

// Info is the static configuration summary reported by /api/health and
// /api/config.
type Info struct {
	TikHubBaseURL    string
	TikHubConfigured bool
}

type Server struct {
	engine   *gin.Engine
	creators *creator.Service
	trends   *trends.Service
	library  *library.Service
	limiter  *ratelimit.Limiter
	checks   map[string]DependencyCheck
	info     Info
	logger   *zap.Logger
}

func New(deps Dependencies) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		creators: deps.Creators,
		trends:   deps.Trends,
		library:  deps.Library,
		limiter:  deps.Limiter,
		checks:   deps.Checks,
		info:     deps.Info,
		logger:   logger,
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	engine.Use(s.requestLogger(), s.recovery(), cors())
	engine.NoRoute(func(c *gin.Context) {
		writeMessage(c, http.StatusNotFound, constants.Messages.NotFound)
	})
	engine.NoMethod(func(c *gin.Context) {
		writeMessage(c, http.StatusMethodNotAllowed, constants.Messages.MethodNotAllowed)
	})

	s.engine = engine
	s.registerRoutes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}
