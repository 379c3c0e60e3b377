package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestNextFileNumber(t *testing.T) {
	dir := t.TempDir()

	n, err := NextFileNumber(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	for _, name := range []string{"03_beauty_20240101_000000.csv", "07_ai_20240101_000000_report.json", "12_notes.txt", "x_y.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	n, err = NextFileNumber(dir)
	require.NoError(t, err)
	require.Equal(t, 8, n)
}

func TestFilePrefix(t *testing.T) {
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	require.Equal(t, filepath.Join("out", "02_美妆_tips_20240203_040506"), FilePrefix("out", 2, "美妆 tips", at))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	creators := []*domain.Creator{
		{SearchKeyword: "beauty", Nickname: "Alice, \"the\" creator", UniqueID: "alice", FollowerCount: 50000, ExpectedPrice: 600},
	}

	require.NoError(t, WriteCSV(path, creators))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), utf8BOM))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "search_keyword", records[0][0])
	require.Equal(t, "Alice, \"the\" creator", records[1][1])
	require.Equal(t, "50000", records[1][3])
}

func TestWriteCSVMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	require.Error(t, WriteCSV(path, nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeCSVPropagatesWriteErrors(t *testing.T) {
	require.EqualError(t, encodeCSV(failingWriter{}, nil), "disk full")
}

func TestEncodeCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeCSV(&buf, nil))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0], len(csvColumns))
}

func TestBuildReport(t *testing.T) {
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	empty := BuildReport("none", nil, at)
	require.Equal(t, "无数据", empty.Error)
	require.Zero(t, empty.TotalCreators)

	creators := make([]*domain.Creator, 0, 12)
	for i := 0; i < 12; i++ {
		creators = append(creators, &domain.Creator{
			UniqueID:           string(rune('a' + i)),
			FollowerCount:      int64(i * 100),
			AvgVideoPlayCount:  10,
			DaysSinceLastVideo: int64(i * 5),
		})
	}
	creators[0].Email = "a@b.io"

	report := BuildReport("beauty", creators, at)
	require.Equal(t, "2024-02-03T04:05:06.000Z", report.CollectionTime)
	require.Equal(t, 12, report.TotalCreators)
	require.EqualValues(t, 6600, report.TotalFollowers)
	require.InDelta(t, 550.0, report.AvgFollowers, 0.001)
	require.InDelta(t, 10.0, report.AvgPlayCount, 0.001)
	require.Equal(t, 1, report.EmailCount)
	require.Equal(t, 7, report.ActiveCreators)
	require.Len(t, report.TopCreators, 10)
	require.Equal(t, "l", report.TopCreators[0].UniqueID)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.json")
	require.NoError(t, WriteJSON(path, map[string]int{"total": 3}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]int
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, 3, out["total"])
}
