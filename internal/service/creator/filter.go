package creator

import "github.com/glisdarx/beee-media/internal/domain"

// MatchesFilters reports whether a record passes the caller's filters. Only the
// follower range is enforced; an empty or unknown range accepts everything.
func MatchesFilters(c *domain.Creator, filters domain.SearchFilters) bool {
	if filters.FollowerRange == "" {
		return true
	}
	bucket, ok := domain.FollowerBuckets[filters.FollowerRange]
	if !ok {
		return true
	}
	return bucket.Contains(c.FollowerCount)
}
