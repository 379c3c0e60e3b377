package trends

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	payload string
	err     error
	country string
}

func (f *fakeFetcher) FetchTrending(_ context.Context, country string) ([]gjson.Result, error) {
	f.country = country
	if f.err != nil {
		return nil, f.err
	}
	return gjson.Parse(f.payload).Array(), nil
}

func TestFetchMapsEntriesInOrder(t *testing.T) {
	fetcher := &fakeFetcher{payload: `[
		{"name": "#WorldCup", "context": "Sports", "description": "Final tonight", "volume": 125000},
		{"name": "#WorldCup", "volume": null},
		{"context": "Music"}
	]`}
	svc := NewService(fetcher, zap.NewNop())

	trends, err := svc.Fetch(context.Background(), "UnitedKingdom")
	require.NoError(t, err)
	require.Equal(t, "UnitedKingdom", fetcher.country)
	require.Len(t, trends, 3)

	require.Equal(t, "#WorldCup", trends[0].Name)
	require.Equal(t, "Sports", trends[0].Context)
	require.Equal(t, "Final tonight", trends[0].Description)
	require.EqualValues(t, 125000, trends[0].Volume)

	// No dedup; absent fields default.
	require.Equal(t, "#WorldCup", trends[1].Name)
	require.Zero(t, trends[1].Volume)
	require.Empty(t, trends[2].Name)
	require.Equal(t, "Music", trends[2].Context)
}

func TestFetchDefaultsCountry(t *testing.T) {
	fetcher := &fakeFetcher{payload: `[]`}
	svc := NewService(fetcher, zap.NewNop())

	trends, err := svc.Fetch(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, trends)
	require.Equal(t, "UnitedStates", fetcher.country)
}

func TestFetchPropagatesError(t *testing.T) {
	cause := stderrors.New("timeout of 30000ms exceeded")
	svc := NewService(&fakeFetcher{err: cause}, zap.NewNop())

	trends, err := svc.Fetch(context.Background(), "Japan")
	require.Nil(t, trends)
	require.ErrorIs(t, err, cause)
}
