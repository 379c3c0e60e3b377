package trends

import (
	"context"
	"fmt"
	"time"

	"github.com/glisdarx/beee-media/internal/domain"
	"go.uber.org/zap"
)

// Result is the outcome of fetching one country: either Trends or Err.
type Result struct {
	Country string
	Trends  []domain.Trend
	Err     error
}

// Fallback decides what replaces a failed country in a sweep.
type Fallback string

const (
	FallbackSkip        Fallback = "skip"
	FallbackEmpty       Fallback = "empty"
	FallbackPlaceholder Fallback = "placeholder"
)

func ParseFallback(s string) (Fallback, error) {
	switch f := Fallback(s); f {
	case FallbackSkip, FallbackEmpty, FallbackPlaceholder:
		return f, nil
	default:
		return "", fmt.Errorf("unknown fallback %q (want skip, empty or placeholder)", s)
	}
}

// CountryTrends is one country's entry in a sweep report. Placeholder marks
// synthetic data standing in for a failed fetch.
type CountryTrends struct {
	Country     string         `json:"country"`
	Trends      []domain.Trend `json:"trends"`
	Error       string         `json:"error,omitempty"`
	Placeholder bool           `json:"placeholder,omitempty"`
}

// Sweep fetches countries one at a time, waiting delay between requests.
// Failures are returned per country and do not stop the sweep. A cancelled
// ctx ends the sweep early.
func (s *Service) Sweep(ctx context.Context, countries []string, delay time.Duration) []Result {
	results := make([]Result, 0, len(countries))
	for i, country := range countries {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(delay):
			}
		}

		trends, err := s.Fetch(ctx, country)
		if err != nil {
			s.logger.Warn("Country trends fetch failed", zap.String("country", country), zap.Error(err))
		}
		results = append(results, Result{Country: country, Trends: trends, Err: err})
	}
	return results
}

// Resolve turns sweep results into report entries using the given fallback
// for failed countries.
func Resolve(results []Result, fallback Fallback) []CountryTrends {
	out := make([]CountryTrends, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, CountryTrends{Country: r.Country, Trends: r.Trends})
			continue
		}

		switch fallback {
		case FallbackEmpty:
			out = append(out, CountryTrends{Country: r.Country, Trends: []domain.Trend{}, Error: r.Err.Error()})
		case FallbackPlaceholder:
			out = append(out, CountryTrends{
				Country:     r.Country,
				Trends:      placeholderTrends(r.Country),
				Error:       r.Err.Error(),
				Placeholder: true,
			})
		}
	}
	return out
}

func placeholderTrends(country string) []domain.Trend {
	topics := []struct{ context, description string }{
		{"娱乐", "1.2M posts"},
		{"科技", "856K posts"},
		{"体育", "543K posts"},
	}
	trends := make([]domain.Trend, len(topics))
	for i, t := range topics {
		trends[i] = domain.Trend{
			Name:        fmt.Sprintf("#%s热门话题%d", country, i+1),
			Context:     t.context,
			Description: t.description,
		}
	}
	return trends
}
