package trends

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type perCountryFetcher struct {
	payloads map[string]string
	order    []string
}

func (f *perCountryFetcher) FetchTrending(_ context.Context, country string) ([]gjson.Result, error) {
	f.order = append(f.order, country)
	payload, ok := f.payloads[country]
	if !ok {
		return nil, stderrors.New("TikHub API错误: invalid country")
	}
	return gjson.Parse(payload).Array(), nil
}

func TestSweepIsSequentialAndKeepsFailures(t *testing.T) {
	fetcher := &perCountryFetcher{payloads: map[string]string{
		"Japan":         `[{"name": "#a"}]`,
		"UnitedKingdom": `[{"name": "#b"}, {"name": "#c"}]`,
	}}
	svc := NewService(fetcher, zap.NewNop())

	results := svc.Sweep(context.Background(), []string{"Japan", "Atlantis", "UnitedKingdom"}, 0)
	require.Equal(t, []string{"Japan", "Atlantis", "UnitedKingdom"}, fetcher.order)
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	require.Len(t, results[2].Trends, 2)
}

func TestSweepStopsWhenCancelled(t *testing.T) {
	fetcher := &perCountryFetcher{payloads: map[string]string{"Japan": `[]`, "China": `[]`}}
	svc := NewService(fetcher, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := svc.Sweep(ctx, []string{"Japan", "China"}, time.Second)
	require.Len(t, results, 1)
	require.Equal(t, []string{"Japan"}, fetcher.order)
}

func TestResolveFallbacks(t *testing.T) {
	fetcher := &perCountryFetcher{payloads: map[string]string{"Japan": `[{"name": "#a"}]`}}
	svc := NewService(fetcher, zap.NewNop())
	results := svc.Sweep(context.Background(), []string{"Japan", "Atlantis"}, 0)

	skipped := Resolve(results, FallbackSkip)
	require.Len(t, skipped, 1)
	require.Equal(t, "Japan", skipped[0].Country)

	empty := Resolve(results, FallbackEmpty)
	require.Len(t, empty, 2)
	require.Empty(t, empty[1].Trends)
	require.NotNil(t, empty[1].Trends)
	require.Contains(t, empty[1].Error, "invalid country")
	require.False(t, empty[1].Placeholder)

	placeholder := Resolve(results, FallbackPlaceholder)
	require.Len(t, placeholder, 2)
	require.True(t, placeholder[1].Placeholder)
	require.Len(t, placeholder[1].Trends, 3)
	require.Equal(t, "#Atlantis热门话题1", placeholder[1].Trends[0].Name)
	require.False(t, placeholder[0].Placeholder)
}

func TestParseFallback(t *testing.T) {
	f, err := ParseFallback("placeholder")
	require.NoError(t, err)
	require.Equal(t, FallbackPlaceholder, f)

	_, err = ParseFallback("mock")
	require.Error(t, err)
}
