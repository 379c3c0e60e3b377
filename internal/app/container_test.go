package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glisdarx/beee-media/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func minimalConfig() *config.Config {
	return &config.Config{
		TikHub: config.TikHubConfig{APIKey: "k", BaseURL: "https://api.tikhub.io"},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 9090, GinMode: "test"},
	}
}

func TestBuildWithoutBackends(t *testing.T) {
	c, err := Build(context.Background(), minimalConfig(), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	require.NotNil(t, c.Creators)
	require.NotNil(t, c.Trends)
	require.Nil(t, c.Library)

	srv := c.NewHTTPServer()
	require.Equal(t, "127.0.0.1:9090", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"features":{"tikhub_search":true,"search_history":false,"rate_limit":false}}`, rec.Body.String())
}

func TestBuildRejectsNilInputs(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	require.Error(t, err)

	_, err = Build(context.Background(), minimalConfig(), nil)
	require.Error(t, err)
}

func TestBuildRejectsInvalidTrustedProxies(t *testing.T) {
	cfg := minimalConfig()
	cfg.Server.TrustedProxies = []string{"not-an-ip"}

	_, err := Build(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "trusted proxies")
}
