package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glisdarx/beee-media/internal/constants"
	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/glisdarx/beee-media/internal/util"
	"github.com/tidwall/gjson"
)

type searchRequest struct {
	SearchKeyword string
	domain.SearchFilters
}

// parseSearchRequest reads the body loosely: any JSON value is accepted and
// fields of an unexpected type read as their string form ("" for null or
// missing), which leaves an unrecognised filter unenforced.
func parseSearchRequest(raw []byte) (searchRequest, bool) {
	if !gjson.ValidBytes(raw) {
		return searchRequest{}, false
	}
	body := gjson.ParseBytes(raw)
	str := func(path string) string {
		v := body.Get(path)
		if v.IsArray() || v.IsObject() {
			return ""
		}
		return v.String()
	}
	return searchRequest{
		SearchKeyword: str("searchKeyword"),
		SearchFilters: domain.SearchFilters{
			Country:            str("country"),
			FollowerRange:      str("followerRange"),
			Language:           str("language"),
			VideoCount:         str("videoCount"),
			DaysSinceLastVideo: str("daysSinceLastVideo"),
			AvgPlayCount:       str("avgPlayCount"),
		},
	}, true
}

func (s *Server) handleCreatorSearch(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		writeMessage(c, http.StatusBadRequest, constants.Messages.InvalidBody)
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	req, ok := parseSearchRequest(raw)
	if !ok {
		writeMessage(c, http.StatusBadRequest, constants.Messages.InvalidBody)
		return
	}

	result, err := s.creators.Search(c.Request.Context(), req.SearchKeyword, req.SearchFilters)
	if err != nil {
		s.writeError(c, err)
		return
	}

	if s.library != nil {
		s.library.RecordSearchAsync(userID(c), result, req.SearchFilters)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      result.Creators,
		"total":     len(result.Creators),
		"keyword":   result.Keyword,
		"timestamp": util.NowISO(),
	})
}

func (s *Server) handleTrends(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		country = constants.TrendsConfig.DefaultCountry
	}

	trends, err := s.trends.Fetch(c.Request.Context(), country)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      trends,
		"total":     len(trends),
		"country":   country,
		"timestamp": util.NowISO(),
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := s.library.History(c.Request.Context(), userID(c), limit)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"total":   len(entries),
	})
}

func (s *Server) handleListFavorites(c *gin.Context) {
	favorites, err := s.library.Favorites(c.Request.Context(), userID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    favorites,
		"total":   len(favorites),
	})
}

type favoriteRequest struct {
	Creator json.RawMessage `json:"creator"`
}

func (s *Server) handleAddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, constants.Messages.InvalidBody)
		return
	}

	fav, err := s.library.AddFavorite(c.Request.Context(), userID(c), req.Creator)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": constants.Messages.FavoriteAdded,
		"data":    fav,
	})
}

func (s *Server) handleRemoveFavorite(c *gin.Context) {
	if err := s.library.RemoveFavorite(c.Request.Context(), userID(c), c.Param("uniqueId")); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": constants.Messages.FavoriteRemoved,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	dependencies := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			dependencies[name] = "unavailable"
			status = "degraded"
			continue
		}
		dependencies[name] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"timestamp":    util.NowISO(),
		"config":       s.publicConfig(),
		"dependencies": dependencies,
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"features": gin.H{
			"tikhub_search":  s.info.TikHubConfigured,
			"search_history": s.library != nil,
			"rate_limit":     s.limiter != nil,
		},
	})
}

func (s *Server) publicConfig() gin.H {
	return gin.H{
		"tikhub_base_url":        s.info.TikHubBaseURL,
		"tikhub_api_configured":  s.info.TikHubConfigured,
		"search_history_enabled": s.library != nil,
		"rate_limit_enabled":     s.limiter != nil,
	}
}
