package library

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/glisdarx/beee-media/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrAlreadyFavorited = stderrors.New("creator already favorited")
	ErrFavoriteNotFound = stderrors.New("favorite not found")
)

type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewHistoryRepository(db *sql.DB, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{db: db, logger: logger}
}

// Insert stores entry and fills in its ID and CreatedAt.
func (r *HistoryRepository) Insert(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	query := `
		INSERT INTO search_history (user_id, query, search_type, filters, results_count, results_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Query, entry.SearchType,
		[]byte(entry.Filters), entry.ResultsCount, []byte(entry.ResultsSnapshot),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert search history: %w", err)
	}
	return nil
}

// ListByUser returns the newest entries first.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SearchHistoryEntry, error) {
	query := `
		SELECT id, user_id, query, search_type, filters, results_count, results_snapshot, created_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.SearchHistoryEntry, 0)
	for rows.Next() {
		var (
			entry    domain.SearchHistoryEntry
			filters  []byte
			snapshot []byte
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Query, &entry.SearchType,
			&filters, &entry.ResultsCount, &snapshot, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search history: %w", err)
		}
		entry.Filters = filters
		entry.ResultsSnapshot = snapshot
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search history: %w", err)
	}

	return entries, nil
}

type FavoriteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewFavoriteRepository(db *sql.DB, logger *zap.Logger) *FavoriteRepository {
	return &FavoriteRepository{db: db, logger: logger}
}

// Add stores a favorite. Returns ErrAlreadyFavorited if the user already has
// this creator.
func (r *FavoriteRepository) Add(ctx context.Context, fav *domain.FavoriteCreator) error {
	query := `
		INSERT INTO favorite_creators (user_id, creator_unique_id, creator_data)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, creator_unique_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, fav.UserID, fav.CreatorUniqueID, []byte(fav.CreatorData)).
		Scan(&fav.ID, &fav.CreatedAt)
	if err == sql.ErrNoRows {
		return ErrAlreadyFavorited
	}
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteCreator, error) {
	query := `
		SELECT id, user_id, creator_unique_id, creator_data, created_at
		FROM favorite_creators
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*domain.FavoriteCreator, 0)
	for rows.Next() {
		var (
			fav  domain.FavoriteCreator
			data []byte
		)
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.CreatorUniqueID, &data, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		fav.CreatorData = data
		favorites = append(favorites, &fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return favorites, nil
}

// Remove deletes a favorite. Returns ErrFavoriteNotFound if nothing matched.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, uniqueID string) error {
	query := `
		DELETE FROM favorite_creators
		WHERE user_id = $1 AND creator_unique_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, uniqueID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
