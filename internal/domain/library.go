package domain

import (
	"encoding/json"
	"time"
)

const SearchTypeCreators = "creators"

type SearchHistoryEntry struct {
	ID              int64           `json:"id"`
	UserID          string          `json:"user_id"`
	Query           string          `json:"query"`
	SearchType      string          `json:"search_type"`
	Filters         json.RawMessage `json:"filters"`
	ResultsCount    int             `json:"results_count"`
	ResultsSnapshot json.RawMessage `json:"results_snapshot"`
	CreatedAt       time.Time       `json:"created_at"`
}

type FavoriteCreator struct {
	ID              int64           `json:"id"`
	UserID          string          `json:"user_id"`
	CreatorUniqueID string          `json:"creator_unique_id"`
	CreatorData     json.RawMessage `json:"creator_data"`
	CreatedAt       time.Time       `json:"created_at"`
}
