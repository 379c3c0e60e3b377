package trends

import (
	"context"
	"fmt"

	"github.com/glisdarx/beee-media/internal/constants"
	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Fetcher is the upstream trending call.
type Fetcher interface {
	FetchTrending(ctx context.Context, country string) ([]gjson.Result, error)
}

type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
}

func NewService(fetcher Fetcher, logger *zap.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// Fetch returns the trending topics for country in upstream order. An empty
// country means the default. The country code is passed through unvalidated.
func (s *Service) Fetch(ctx context.Context, country string) ([]domain.Trend, error) {
	if country == "" {
		country = constants.TrendsConfig.DefaultCountry
	}

	items, err := s.fetcher.FetchTrending(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("fetch trends for %s: %w", country, err)
	}

	trends := make([]domain.Trend, 0, len(items))
	for _, item := range items {
		trends = append(trends, domain.Trend{
			Name:        item.Get("name").String(),
			Context:     item.Get("context").String(),
			Description: item.Get("description").String(),
			Volume:      item.Get("volume").Int(),
		})
	}

	s.logger.Debug("Trends fetched",
		zap.String("country", country),
		zap.Int("count", len(trends)),
	)
	return trends, nil
}
