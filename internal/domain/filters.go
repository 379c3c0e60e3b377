package domain

import "math"

// SearchFilters carries the optional constraints a caller may send with a
// creator search. Only FollowerRange is enforced; the others are accepted and
// recorded with search history.
type SearchFilters struct {
	Country            string `json:"country"`
	FollowerRange      string `json:"followerRange"`
	Language           string `json:"language"`
	VideoCount         string `json:"videoCount"`
	DaysSinceLastVideo string `json:"daysSinceLastVideo"`
	AvgPlayCount       string `json:"avgPlayCount"`
}

// FollowerBucket is a half-open follower-count interval [Min, Max). A Max of
// math.MaxInt64 means the bucket is unbounded above.
type FollowerBucket struct {
	Min int64
	Max int64
}

func (b FollowerBucket) Contains(count int64) bool {
	if count < b.Min {
		return false
	}
	return b.Max == math.MaxInt64 || count < b.Max
}

// FollowerBuckets are the follower ranges a caller may filter by. The top
// bucket has no upper bound.
var FollowerBuckets = map[string]FollowerBucket{
	"0-10000":            {Min: math.MinInt64, Max: 10_000},
	"10000-100000":       {Min: 10_000, Max: 100_000},
	"100000-1000000":     {Min: 100_000, Max: 1_000_000},
	"1000000-10000000":   {Min: 1_000_000, Max: 10_000_000},
	"10000000-999999999": {Min: 10_000_000, Max: math.MaxInt64},
}
