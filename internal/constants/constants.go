package constants

import "time"

var APIConfig = struct {
	SearchPath     string
	TrendsPath     string
	RequestTimeout time.Duration
	UserAgent      string
}{
	SearchPath:     "/api/v1/tiktok/app/v3/fetch_general_search_result",
	TrendsPath:     "/api/v1/twitter/web/fetch_trending",
	RequestTimeout: 30 * time.Second,
	UserAgent:      "Beee-Media-Web/1.0",
}

// SearchParams are the fixed page/sort parameters sent with every search call.
var SearchParams = struct {
	Offset      int
	Count       int
	SortType    int
	PublishTime int
}{
	Offset:      0,
	Count:       50,
	SortType:    0,
	PublishTime: 0,
}

var TrendsConfig = struct {
	DefaultCountry string
}{
	DefaultCountry: "UnitedStates",
}

var RateLimitConfig = struct {
	Window time.Duration
}{
	Window: time.Minute,
}

var LibraryConfig = struct {
	DefaultHistoryLimit int
	MaxHistoryLimit     int
	SnapshotSize        int
	WriteTimeout        time.Duration
	AnonymousUser       string
}{
	DefaultHistoryLimit: 50,
	MaxHistoryLimit:     100,
	SnapshotSize:        5, // 검색 결과 앞 5건만 스냅샷
	WriteTimeout:        2 * time.Second,
	AnonymousUser:       "anonymous",
}

var Messages = struct {
	KeywordRequired   string
	InvalidBody       string
	MethodNotAllowed  string
	NotFound          string
	InternalError     string
	RateLimited       string
	RateLimitedDetail string
	InvalidCreator    string
	AlreadyFavorited  string
	FavoriteAdded     string
	FavoriteRemoved   string
	FavoriteNotFound  string
	DatabaseDisabled  string
}{
	KeywordRequired:   "请输入搜索关键词",
	InvalidBody:       "Invalid request body",
	MethodNotAllowed:  "Method not allowed",
	NotFound:          "Not found",
	InternalError:     "Internal server error",
	RateLimited:       "Rate limit exceeded",
	RateLimitedDetail: "请求过于频繁，请稍后再试",
	InvalidCreator:    "创作者数据无效",
	AlreadyFavorited:  "该创作者已在收藏列表中",
	FavoriteAdded:     "收藏成功",
	FavoriteRemoved:   "取消收藏成功",
	FavoriteNotFound:  "收藏记录不存在",
	DatabaseDisabled:  "Database not configured",
}
