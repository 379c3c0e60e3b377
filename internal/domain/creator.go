package domain

// Creator is one TikTok account surfaced by a keyword search, enriched with
// fields derived from its bio and metrics.
type Creator struct {
	SearchKeyword  string `json:"search_keyword"`
	Nickname       string `json:"nickname"`
	UniqueID       string `json:"unique_id"`
	FollowerCount  int64  `json:"follower_count"`
	TotalVideos    int64  `json:"total_video_count"`
	TotalLikes     int64  `json:"total_likes_count"`
	AccountURL     string `json:"tiktok_account_url"`
	BioDescription string `json:"tiktok_account_bio_description"`
	BioLinkURL     string `json:"bio_link_url"`
	Language       string `json:"language"`

	LatestVideoLink            string `json:"latest_video_link"`
	LatestVideoPlayCount       int64  `json:"latest_video_play_count"`
	SecondLatestVideoLink      string `json:"second_latest_video_link"`
	SecondLatestVideoPlayCount int64  `json:"second_latest_video_play_count"`
	ThirdLatestVideoLink       string `json:"third_latest_video_link"`
	ThirdLatestVideoPlayCount  int64  `json:"third_latest_video_play_count"`
	FourthLatestVideoLink      string `json:"fourth_latest_video_link"`
	FourthLatestVideoPlayCount int64  `json:"fourth_latest_video_play_count"`
	FifthLatestVideoLink       string `json:"fifth_latest_video_link"`
	FifthLatestVideoPlayCount  int64  `json:"fifth_latest_video_play_count"`

	DaysSinceLastVideo int64  `json:"days_since_last_video"`
	AvgVideoPlayCount  int64  `json:"avg_video_play_count"`
	MedianViewCount    int64  `json:"median_view_count"`
	ExpectedPrice      int64  `json:"expected_price"`
	Email              string `json:"email"`
	AvatarURL          string `json:"avatar_url"`
	VideoCoverURL      string `json:"video_cover_url"`
	VideoPlayURL       string `json:"video_play_url"`
}

// Language codes produced by bio language detection.
const (
	LanguageChinese = "zh"
	LanguageEnglish = "en"
)

// CreatorSearchResult is the ordered, de-duplicated output of one search.
type CreatorSearchResult struct {
	Keyword  string
	Creators []*Creator
}
