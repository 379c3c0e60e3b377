package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glisdarx/beee-media/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestHistoryInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHistoryRepository(db, zap.NewNop())
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO search_history").
		WithArgs("u1", "beauty", "creators", []byte(`{"followerRange":""}`), 2, []byte(`[]`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))

	entry := &domain.SearchHistoryEntry{
		UserID:          "u1",
		Query:           "beauty",
		SearchType:      domain.SearchTypeCreators,
		Filters:         json.RawMessage(`{"followerRange":""}`),
		ResultsCount:    2,
		ResultsSnapshot: json.RawMessage(`[]`),
	}
	require.NoError(t, repo.Insert(context.Background(), entry))
	require.EqualValues(t, 42, entry.ID)
	require.Equal(t, created, entry.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHistoryRepository(db, zap.NewNop())
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "query", "search_type", "filters", "results_count", "results_snapshot", "created_at"}).
		AddRow(int64(2), "u1", "makeup", "creators", []byte(`{}`), 5, []byte(`[{"unique_id":"a"}]`), now).
		AddRow(int64(1), "u1", "beauty", "creators", []byte(`{}`), 0, []byte(`[]`), now.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM search_history").WithArgs("u1", 10).WillReturnRows(rows)

	entries, err := repo.ListByUser(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "makeup", entries[0].Query)
	require.JSONEq(t, `[{"unique_id":"a"}]`, string(entries[0].ResultsSnapshot))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAddDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db, zap.NewNop())

	mock.ExpectQuery("INSERT INTO favorite_creators").
		WithArgs("u1", "alice", []byte(`{"unique_id":"alice"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	err := repo.Add(context.Background(), &domain.FavoriteCreator{
		UserID:          "u1",
		CreatorUniqueID: "alice",
		CreatorData:     json.RawMessage(`{"unique_id":"alice"}`),
	})
	require.ErrorIs(t, err, ErrAlreadyFavorited)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAdd(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db, zap.NewNop())
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO favorite_creators").
		WithArgs("u1", "alice", []byte(`{"unique_id":"alice"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	fav := &domain.FavoriteCreator{
		UserID:          "u1",
		CreatorUniqueID: "alice",
		CreatorData:     json.RawMessage(`{"unique_id":"alice"}`),
	}
	require.NoError(t, repo.Add(context.Background(), fav))
	require.EqualValues(t, 7, fav.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db, zap.NewNop())
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "user_id", "creator_unique_id", "creator_data", "created_at"}).
		AddRow(int64(3), "u1", "alice", []byte(`{"unique_id":"alice"}`), now)
	mock.ExpectQuery("SELECT (.+) FROM favorite_creators").WithArgs("u1").WillReturnRows(rows)

	favorites, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.Equal(t, "alice", favorites[0].CreatorUniqueID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRemove(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db, zap.NewNop())

	mock.ExpectExec("DELETE FROM favorite_creators").WithArgs("u1", "alice").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM favorite_creators").WithArgs("u1", "ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Remove(context.Background(), "u1", "alice"))
	require.ErrorIs(t, repo.Remove(context.Background(), "u1", "ghost"), ErrFavoriteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
