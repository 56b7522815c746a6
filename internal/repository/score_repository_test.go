package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"gamelearn/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setupScoreTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "postgres")
	return sqlxDB, mock
}

func leaderboardColumns() []string {
	return []string{"id", "user_id", "display_name", "score", "max_streak", "completion_rate", "created_at", "updated_at"}
}

func TestSQLXScoreRepository_AddScore_Success(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(leaderboardColumns()).
		AddRow("lb1", "user1", "Alice", 150, 5, 0, now, now)

	// The upsert returns the merged row
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO leaderboard`)).
		WillReturnRows(rows)

	record, err := repo.AddScore(context.Background(), "user1", "Alice", 50, 5)

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, "user1", record.UserID)
	assert.Equal(t, "Alice", record.DisplayName)
	assert.Equal(t, 150, record.Score)
	assert.Equal(t, 5, record.MaxStreak)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_GetScore_NotFound(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM leaderboard WHERE user_id = $1`)).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	record, err := repo.GetScore(context.Background(), "nobody")

	assert.NoError(t, err, "Expected no error when record not found")
	assert.Nil(t, record, "Expected nil record for not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_ListScores_Success(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(leaderboardColumns()).
		AddRow("lb1", "user1", "Alice", 300, 7, 60, now, now).
		AddRow("lb2", "user2", "Bob", 100, 2, 20, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM leaderboard ORDER BY score DESC, updated_at ASC`)).
		WillReturnRows(rows)

	records, err := repo.ListScores(context.Background())

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "user1", records[0].UserID)
	assert.Equal(t, 300, records[0].Score)
	assert.Equal(t, "user2", records[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_ListForLeaderboard_SortsByStreak(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(leaderboardColumns()).
		AddRow("lb1", "user1", "Alice", 100, 9, 60, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM leaderboard ORDER BY max_streak DESC, updated_at ASC LIMIT $1`)).
		WithArgs(10).
		WillReturnRows(rows)

	records, err := repo.ListForLeaderboard(context.Background(), nil, domain.SortByStreak, 10)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 9, records[0].MaxStreak)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_ListForLeaderboard_WindowFilter(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	since := time.Now().Add(-7 * 24 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM leaderboard WHERE updated_at >= $1 ORDER BY score DESC, updated_at ASC LIMIT $2`)).
		WithArgs(since, 10).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns()))

	records, err := repo.ListForLeaderboard(context.Background(), &since, domain.SortByScore, 10)

	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_ListScoresByUserIDs(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(leaderboardColumns()).
		AddRow("lb1", "user1", "Alice", 300, 7, 60, now, now).
		AddRow("lb2", "user2", "Bob", 100, 2, 20, now, now)

	// sqlx.In expands the slice and Rebind swaps ? for $n placeholders
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM leaderboard WHERE user_id IN ($1, $2) ORDER BY score DESC, updated_at ASC`)).
		WithArgs("user1", "user2").
		WillReturnRows(rows)

	records, err := repo.ListScoresByUserIDs(context.Background(), []string{"user1", "user2"})

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_ListScoresByUserIDs_Empty(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	records, err := repo.ListScoresByUserIDs(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_UpdateCompletionRate_Success(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE leaderboard SET completion_rate = $1, updated_at = $2 WHERE user_id = $3`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCompletionRate(context.Background(), "user1", 40)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_GetHistorySince_Success(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	since := time.Now().Add(-7 * 24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "score", "created_at"}).
		AddRow("sh1", "user1", 100, since.Add(time.Hour)).
		AddRow("sh2", "user1", 250, since.Add(2*time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM score_history WHERE created_at >= $1 ORDER BY created_at ASC`)).
		WithArgs(since).
		WillReturnRows(rows)

	entries, err := repo.GetHistorySince(context.Background(), since)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 100, entries[0].Score)
	assert.Equal(t, 250, entries[1].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXScoreRepository_DeleteModuleScores_Success(t *testing.T) {
	db, mock := setupScoreTestDB(t)
	repo := NewSQLXScoreRepository(db)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM module_scores WHERE user_id = $1 AND course_id = $2 AND module_id = $3`)).
		WithArgs("user1", "python", "variables").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.DeleteModuleScores(context.Background(), "user1", "python", "variables")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
