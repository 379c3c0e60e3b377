// Package export writes creator search results to CSV files and JSON summary
// reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/glisdarx/beee-media/internal/util"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

const activeWithinDays = 30

var csvColumns = []struct {
	name  string
	value func(c *domain.Creator) string
}{
	{"search_keyword", func(c *domain.Creator) string { return c.SearchKeyword }},
	{"nickname", func(c *domain.Creator) string { return c.Nickname }},
	{"unique_id", func(c *domain.Creator) string { return c.UniqueID }},
	{"follower_count", func(c *domain.Creator) string { return itoa(c.FollowerCount) }},
	{"total_video_count", func(c *domain.Creator) string { return itoa(c.TotalVideos) }},
	{"total_likes_count", func(c *domain.Creator) string { return itoa(c.TotalLikes) }},
	{"tiktok_account_url", func(c *domain.Creator) string { return c.AccountURL }},
	{"tiktok_account_bio_description", func(c *domain.Creator) string { return c.BioDescription }},
	{"bio_link_url", func(c *domain.Creator) string { return c.BioLinkURL }},
	{"language", func(c *domain.Creator) string { return c.Language }},
	{"latest_video_link", func(c *domain.Creator) string { return c.LatestVideoLink }},
	{"latest_video_play_count", func(c *domain.Creator) string { return itoa(c.LatestVideoPlayCount) }},
	{"days_since_last_video", func(c *domain.Creator) string { return itoa(c.DaysSinceLastVideo) }},
	{"avg_video_play_count", func(c *domain.Creator) string { return itoa(c.AvgVideoPlayCount) }},
	{"median_view_count", func(c *domain.Creator) string { return itoa(c.MedianViewCount) }},
	{"expected_price", func(c *domain.Creator) string { return itoa(c.ExpectedPrice) }},
	{"email", func(c *domain.Creator) string { return c.Email }},
	{"avatar_url", func(c *domain.Creator) string { return c.AvatarURL }},
	{"video_cover_url", func(c *domain.Creator) string { return c.VideoCoverURL }},
	{"video_play_url", func(c *domain.Creator) string { return c.VideoPlayURL }},
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// NextFileNumber returns one more than the highest numeric prefix among the
// CSV and report files in dir, or 1 when there are none.
func NextFileNumber(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, "_report.json") {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(prefix); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

// FilePrefix builds "<dir>/<NN>_<keyword>_<timestamp>".
func FilePrefix(dir string, number int, keyword string, at time.Time) string {
	name := fmt.Sprintf("%02d_%s_%s", number, util.SafeFilename(keyword), util.FileTimestamp(at))
	return filepath.Join(dir, name)
}

// WriteCSV writes creators to path with a header row.
func WriteCSV(path string, creators []*domain.Creator) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeCSV(f, creators); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeCSV(out io.Writer, creators []*domain.Creator) error {
	if _, err := io.WriteString(out, utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(out)
	header := make([]string, len(csvColumns))
	for i, col := range csvColumns {
		header[i] = col.name
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(csvColumns))
	for _, c := range creators {
		for i, col := range csvColumns {
			row[i] = col.value(c)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type TopCreator struct {
	Nickname      string `json:"nickname"`
	UniqueID      string `json:"unique_id"`
	FollowerCount int64  `json:"follower_count"`
}

// Report summarises one keyword's results.
type Report struct {
	Keyword        string       `json:"keyword"`
	CollectionTime string       `json:"collection_time"`
	Error          string       `json:"error,omitempty"`
	TotalCreators  int          `json:"total_creators"`
	TotalFollowers int64        `json:"total_followers"`
	AvgFollowers   float64      `json:"avg_followers"`
	TotalVideos    int64        `json:"total_videos"`
	TotalLikes     int64        `json:"total_likes"`
	AvgPlayCount   float64      `json:"avg_play_count"`
	EmailCount     int          `json:"email_count"`
	ActiveCreators int          `json:"active_creators"`
	TopCreators    []TopCreator `json:"top_creators"`
}

func BuildReport(keyword string, creators []*domain.Creator, at time.Time) Report {
	report := Report{
		Keyword:        keyword,
		CollectionTime: util.FormatISO(at),
		TopCreators:    []TopCreator{},
	}
	if len(creators) == 0 {
		report.Error = "无数据"
		return report
	}

	var plays int64
	for _, c := range creators {
		report.TotalFollowers += c.FollowerCount
		report.TotalVideos += c.TotalVideos
		report.TotalLikes += c.TotalLikes
		plays += c.AvgVideoPlayCount
		if c.Email != "" {
			report.EmailCount++
		}
		if c.DaysSinceLastVideo <= activeWithinDays {
			report.ActiveCreators++
		}
	}

	n := len(creators)
	report.TotalCreators = n
	report.AvgFollowers = float64(report.TotalFollowers) / float64(n)
	report.AvgPlayCount = float64(plays) / float64(n)

	ranked := make([]*domain.Creator, n)
	copy(ranked, creators)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FollowerCount > ranked[j].FollowerCount
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	for _, c := range ranked {
		report.TopCreators = append(report.TopCreators, TopCreator{
			Nickname:      c.Nickname,
			UniqueID:      c.UniqueID,
			FollowerCount: c.FollowerCount,
		})
	}
	return report
}

// WriteJSON writes v as indented JSON, replacing path atomically.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
