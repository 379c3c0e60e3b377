package server

const (
	pathSearchLegacy = "/.netlify/functions/creators-search"
	pathSearch       = "/api/creators/search"
	pathTrendsLegacy = "/.netlify/functions/trends"
	pathTrends       = "/api/trends"
	pathHealth       = "/api/health"
	pathConfig       = "/api/config"
	pathHistory      = "/api/search/history"
	pathFavorites    = "/api/creators/favorites"
	pathFavorite     = "/api/creators/favorites/:uniqueId"
)

func (s *Server) registerRoutes() {
	r := s.engine

	for _, path := range []string{pathSearchLegacy, pathSearch} {
		r.OPTIONS(path, preflight("POST, OPTIONS", "Content-Type"))
		r.POST(path, s.rateLimit(RouteSearch), s.handleCreatorSearch)
	}

	for _, path := range []string{pathTrendsLegacy, pathTrends} {
		r.OPTIONS(path, preflight("GET, OPTIONS", "Content-Type"))
		r.GET(path, s.rateLimit(RouteTrends), s.handleTrends)
	}

	r.GET(pathHealth, s.handleHealth)
	r.GET(pathConfig, s.handleConfig)

	libraryHeaders := "Content-Type, X-User-ID"
	r.OPTIONS(pathHistory, preflight("GET, OPTIONS", libraryHeaders))
	r.OPTIONS(pathFavorites, preflight("GET, POST, OPTIONS", libraryHeaders))
	r.OPTIONS(pathFavorite, preflight("DELETE, OPTIONS", libraryHeaders))

	lib := r.Group("", s.requireLibrary())
	{
		lib.GET(pathHistory, s.handleHistory)
		lib.GET(pathFavorites, s.handleListFavorites)
		lib.POST(pathFavorites, s.handleAddFavorite)
		lib.DELETE(pathFavorite, s.handleRemoveFavorite)
	}
}
