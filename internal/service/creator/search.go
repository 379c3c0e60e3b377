package creator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glisdarx/beee-media/internal/constants"
	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/glisdarx/beee-media/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Searcher is the upstream general-search call.
type Searcher interface {
	SearchGeneral(ctx context.Context, keyword string) ([]gjson.Result, error)
}

// Service turns raw TikTok search results into filtered, de-duplicated creator
// records. It holds no per-request state.
type Service struct {
	searcher Searcher
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(searcher Searcher, logger *zap.Logger) *Service {
	return &Service{
		searcher: searcher,
		logger:   logger,
		now:      time.Now,
	}
}

// Search runs one upstream search for keyword and returns the creators that
// pass filters, in upstream order. The first occurrence of each creator wins.
func (s *Service) Search(ctx context.Context, keyword string, filters domain.SearchFilters) (*domain.CreatorSearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.NewValidationError(constants.Messages.KeywordRequired, "searchKeyword", keyword)
	}

	s.logger.Info("Searching creators",
		zap.String("keyword", keyword),
		zap.String("follower_range", filters.FollowerRange),
	)

	items, err := s.searcher.SearchGeneral(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search creators %q: %w", keyword, err)
	}

	now := s.now()
	seen := make(map[string]struct{})
	creators := make([]*domain.Creator, 0, len(items))

	for _, item := range items {
		if !isVideoItem(item) {
			continue
		}

		aweme := item.Get("aweme_info")
		key := dedupKey(aweme.Get("author"))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}

		record := BuildCreator(keyword, key, aweme, now)
		if !MatchesFilters(record, filters) {
			continue
		}

		creators = append(creators, record)
		seen[key] = struct{}{}
	}

	s.logger.Info("Creator search completed",
		zap.String("keyword", keyword),
		zap.Int("items", len(items)),
		zap.Int("creators", len(creators)),
	)

	return &domain.CreatorSearchResult{
		Keyword:  keyword,
		Creators: creators,
	}, nil
}

// BuildCreator maps one aweme_info object to a record. Absent fields read as
// zero values.
func BuildCreator(keyword, key string, aweme gjson.Result, now time.Time) *domain.Creator {
	author := aweme.Get("author")
	stats := aweme.Get("statistics")
	signature := author.Get("signature").String()
	rawUniqueID := author.Get("unique_id").String()
	followers := author.Get("follower_count").Int()
	likes := author.Get("total_favorited").Int()
	playCount := stats.Get("play_count").Int()

	return &domain.Creator{
		SearchKeyword:   keyword,
		Nickname:        author.Get("nickname").String(),
		UniqueID:        key,
		FollowerCount:   followers,
		TotalVideos:     author.Get("aweme_count").Int(),
		TotalLikes:      likes,
		AccountURL:      "https://tiktok.com/@" + rawUniqueID,
		BioDescription:  signature,
		BioLinkURL:      ExtractBioLink(signature),
		Language:        DetectLanguage(signature),
		LatestVideoLink: fmt.Sprintf("https://tiktok.com/@%s/video/%s", rawUniqueID, aweme.Get("aweme_id").String()),

		LatestVideoPlayCount: playCount,

		DaysSinceLastVideo: DaysSinceLastVideo(aweme.Get("create_time").Int(), now),
		AvgVideoPlayCount:  playCount,
		MedianViewCount:    playCount,
		ExpectedPrice:      ExpectedPrice(followers, likes),
		Email:              ExtractEmail(signature),
		AvatarURL:          avatarURL(author),
		VideoCoverURL:      firstURL(aweme.Get("video.cover")),
		VideoPlayURL:       firstURL(aweme.Get("video.play_addr")),
	}
}

func isVideoItem(item gjson.Result) bool {
	t := item.Get("type")
	return t.Type == gjson.Number && t.Num == 1 && truthy(item.Get("aweme_info"))
}

// dedupKey: unique_id, then sec_uid, then nickname.
func dedupKey(author gjson.Result) string {
	for _, field := range []string{"unique_id", "sec_uid", "nickname"} {
		if v := author.Get(field); truthy(v) {
			return v.String()
		}
	}
	return ""
}

func avatarURL(author gjson.Result) string {
	if larger := author.Get("avatar_larger"); truthy(larger.Get("url_list")) {
		return firstURL(larger)
	}
	return firstURL(author.Get("avatar_medium"))
}

func firstURL(image gjson.Result) string {
	list := image.Get("url_list")
	if !truthy(list) {
		return ""
	}
	return list.Get("0").String()
}

// truthy mirrors loose JSON truthiness: null, false, 0 and "" are false.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return true
	}
}
