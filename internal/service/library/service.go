package library

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/glisdarx/beee-media/internal/constants"
	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/glisdarx/beee-media/pkg/errors"
	"github.com/sourcegraph/conc"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type HistoryStore interface {
	Insert(ctx context.Context, entry *domain.SearchHistoryEntry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SearchHistoryEntry, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, fav *domain.FavoriteCreator) error
	ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteCreator, error)
	Remove(ctx context.Context, userID, uniqueID string) error
}

// Service owns per-user search history and favorite creators.
type Service struct {
	history   HistoryStore
	favorites FavoriteStore
	logger    *zap.Logger
	pending   conc.WaitGroup
}

func NewService(history HistoryStore, favorites FavoriteStore, logger *zap.Logger) *Service {
	return &Service{
		history:   history,
		favorites: favorites,
		logger:    logger,
	}
}

// RecordSearchAsync saves a history entry in the background. Failures are
// logged and never reach the caller.
func (s *Service) RecordSearchAsync(userID string, result *domain.CreatorSearchResult, filters domain.SearchFilters) {
	entry, err := newHistoryEntry(userID, result, filters)
	if err != nil {
		s.logger.Warn("Failed to build search history entry", zap.Error(err))
		return
	}

	s.pending.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.LibraryConfig.WriteTimeout)
		defer cancel()

		if err := s.history.Insert(ctx, entry); err != nil {
			s.logger.Warn("Failed to save search history",
				zap.String("user_id", userID),
				zap.String("query", entry.Query),
				zap.Error(err),
			)
			return
		}
		s.logger.Debug("Search history saved",
			zap.String("user_id", userID),
			zap.Int64("id", entry.ID),
		)
	})
}

// Wait blocks until background history writes finish.
func (s *Service) Wait() {
	s.pending.Wait()
}

func newHistoryEntry(userID string, result *domain.CreatorSearchResult, filters domain.SearchFilters) (*domain.SearchHistoryEntry, error) {
	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, err
	}

	snapshot := result.Creators
	if len(snapshot) > constants.LibraryConfig.SnapshotSize {
		snapshot = snapshot[:constants.LibraryConfig.SnapshotSize]
	}
	if snapshot == nil {
		snapshot = []*domain.Creator{}
	}
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	return &domain.SearchHistoryEntry{
		UserID:          userID,
		Query:           result.Keyword,
		SearchType:      domain.SearchTypeCreators,
		Filters:         filtersJSON,
		ResultsCount:    len(result.Creators),
		ResultsSnapshot: snapshotJSON,
	}, nil
}

// History returns the user's most recent searches. Limit is clamped to
// [1, MaxHistoryLimit]; non-positive means the default.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*domain.SearchHistoryEntry, error) {
	switch {
	case limit <= 0:
		limit = constants.LibraryConfig.DefaultHistoryLimit
	case limit > constants.LibraryConfig.MaxHistoryLimit:
		limit = constants.LibraryConfig.MaxHistoryLimit
	}

	entries, err := s.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.NewServiceError("failed to load search history", "library", "history", err)
	}
	return entries, nil
}

func (s *Service) Favorites(ctx context.Context, userID string) ([]*domain.FavoriteCreator, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewServiceError("failed to load favorites", "library", "favorites", err)
	}
	return favorites, nil
}

// AddFavorite stores a creator record for the user. The record must be a JSON
// object carrying a non-empty unique_id.
func (s *Service) AddFavorite(ctx context.Context, userID string, creator json.RawMessage) (*domain.FavoriteCreator, error) {
	parsed := gjson.ParseBytes(creator)
	uniqueID := parsed.Get("unique_id").String()
	if !parsed.IsObject() || uniqueID == "" {
		return nil, errors.NewValidationError(constants.Messages.InvalidCreator, "creator", string(creator))
	}

	fav := &domain.FavoriteCreator{
		UserID:          userID,
		CreatorUniqueID: uniqueID,
		CreatorData:     creator,
	}

	if err := s.favorites.Add(ctx, fav); err != nil {
		if stderrors.Is(err, ErrAlreadyFavorited) {
			return nil, errors.NewValidationError(constants.Messages.AlreadyFavorited, "unique_id", uniqueID)
		}
		return nil, errors.NewServiceError("failed to add favorite", "library", "add_favorite", err)
	}

	s.logger.Info("Favorite added",
		zap.String("user_id", userID),
		zap.String("unique_id", uniqueID),
	)
	return fav, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, uniqueID string) error {
	if err := s.favorites.Remove(ctx, userID, uniqueID); err != nil {
		if stderrors.Is(err, ErrFavoriteNotFound) {
			return errors.NewServiceError(constants.Messages.FavoriteNotFound, "library", "remove_favorite", err).
				WithStatus(http.StatusNotFound)
		}
		return errors.NewServiceError("failed to remove favorite", "library", "remove_favorite", err)
	}

	s.logger.Info("Favorite removed",
		zap.String("user_id", userID),
		zap.String("unique_id", uniqueID),
	)
	return nil
}
