package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/repository/models"
	"gamelearn/internal/util"

	"github.com/jmoiron/sqlx"
)

// ScoreRepository defines the interface for score and score-history
// operations against the leaderboard and score_history tables.
type ScoreRepository interface {
	// AddScore applies the delta and streak in a single atomic upsert and
	// returns the resulting record. No read-modify-write cycle exists, so
	// concurrent calls cannot lose updates.
	AddScore(ctx context.Context, userID, displayName string, delta, currentStreak int) (*domain.ScoreRecord, error)
	GetScore(ctx context.Context, userID string) (*domain.ScoreRecord, error)
	ListScores(ctx context.Context) ([]domain.ScoreRecord, error)
	ListForLeaderboard(ctx context.Context, since *time.Time, sortBy domain.SortBy, limit int) ([]domain.ScoreRecord, error)
	ListScoresByUserIDs(ctx context.Context, userIDs []string) ([]domain.ScoreRecord, error)
	UpdateCompletionRate(ctx context.Context, userID string, rate int) error
	AppendHistory(ctx context.Context, userID string, score int) error
	GetHistorySince(ctx context.Context, since time.Time) ([]domain.ScoreHistoryEntry, error)
	RecordModuleScore(ctx context.Context, userID, courseID, moduleID string, points int) error
	DeleteModuleScores(ctx context.Context, userID, courseID, moduleID string) error
}

type sqlxScoreRepository struct {
	db *sqlx.DB
}

// NewSQLXScoreRepository creates a new instance of sqlxScoreRepository.
func NewSQLXScoreRepository(db *sqlx.DB) ScoreRepository {
	return &sqlxScoreRepository{db: db}
}

func (r *sqlxScoreRepository) AddScore(ctx context.Context, userID, displayName string, delta, currentStreak int) (*domain.ScoreRecord, error) {
	now := time.Now()
	query := `INSERT INTO leaderboard (id, user_id, display_name, score, max_streak, completion_rate, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, 0, $6, $6)
	          ON CONFLICT (user_id) DO UPDATE SET
	            score = leaderboard.score + EXCLUDED.score,
	            max_streak = GREATEST(leaderboard.max_streak, EXCLUDED.max_streak),
	            display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), leaderboard.display_name),
	            updated_at = EXCLUDED.updated_at
	          RETURNING id, user_id, display_name, score, max_streak, completion_rate, created_at, updated_at`

	var row models.LeaderboardEntry
	err := r.db.GetContext(ctx, &row, query,
		util.NewULID(), userID, util.StringToNullString(displayName), delta, currentStreak, now)
	if err != nil {
		return nil, fmt.Errorf("failed to add score: %w", err)
	}
	return toDomainScore(&row), nil
}

// GetScore returns nil, nil when the user has no score record.
func (r *sqlxScoreRepository) GetScore(ctx context.Context, userID string) (*domain.ScoreRecord, error) {
	var row models.LeaderboardEntry
	query := `SELECT * FROM leaderboard WHERE user_id = $1`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	return toDomainScore(&row), nil
}

// ListScores returns every score record ordered by score descending, the
// order used for rank computation.
func (r *sqlxScoreRepository) ListScores(ctx context.Context) ([]domain.ScoreRecord, error) {
	var rows []models.LeaderboardEntry
	query := `SELECT * FROM leaderboard ORDER BY score DESC, updated_at ASC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return toDomainScoreList(rows), nil
}

func (r *sqlxScoreRepository) ListForLeaderboard(ctx context.Context, since *time.Time, sortBy domain.SortBy, limit int) ([]domain.ScoreRecord, error) {
	sortField := "score"
	switch sortBy {
	case domain.SortByStreak:
		sortField = "max_streak"
	case domain.SortByCompletion:
		sortField = "completion_rate"
	}

	var rows []models.LeaderboardEntry
	var err error
	if since != nil {
		query := fmt.Sprintf(`SELECT * FROM leaderboard WHERE updated_at >= $1 ORDER BY %s DESC, updated_at ASC LIMIT $2`, sortField)
		err = r.db.SelectContext(ctx, &rows, query, *since, limit)
	} else {
		query := fmt.Sprintf(`SELECT * FROM leaderboard ORDER BY %s DESC, updated_at ASC LIMIT $1`, sortField)
		err = r.db.SelectContext(ctx, &rows, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard scores: %w", err)
	}
	return toDomainScoreList(rows), nil
}

func (r *sqlxScoreRepository) ListScoresByUserIDs(ctx context.Context, userIDs []string) ([]domain.ScoreRecord, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM leaderboard WHERE user_id IN (?) ORDER BY score DESC, updated_at ASC`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build scores query: %w", err)
	}

	var rows []models.LeaderboardEntry
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list scores by user ids: %w", err)
	}
	return toDomainScoreList(rows), nil
}

func (r *sqlxScoreRepository) UpdateCompletionRate(ctx context.Context, userID string, rate int) error {
	query := `UPDATE leaderboard SET completion_rate = $1, updated_at = $2 WHERE user_id = $3`

	if _, err := r.db.ExecContext(ctx, query, rate, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to update completion rate: %w", err)
	}
	return nil
}

func (r *sqlxScoreRepository) AppendHistory(ctx context.Context, userID string, score int) error {
	query := `INSERT INTO score_history (id, user_id, score, created_at) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, util.NewULID(), userID, score, time.Now()); err != nil {
		return fmt.Errorf("failed to append score history: %w", err)
	}
	return nil
}

// GetHistorySince returns history rows inside the window in ascending
// creation order, the order ComputeImprovements expects.
func (r *sqlxScoreRepository) GetHistorySince(ctx context.Context, since time.Time) ([]domain.ScoreHistoryEntry, error) {
	var rows []models.ScoreHistory
	query := `SELECT * FROM score_history WHERE created_at >= $1 ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, fmt.Errorf("failed to get score history: %w", err)
	}

	entries := make([]domain.ScoreHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.ScoreHistoryEntry{
			ID:        row.ID,
			UserID:    row.UserID,
			Score:     row.Score,
			CreatedAt: row.CreatedAt,
		})
	}
	return entries, nil
}

func (r *sqlxScoreRepository) RecordModuleScore(ctx context.Context, userID, courseID, moduleID string, points int) error {
	query := `INSERT INTO module_scores (id, user_id, course_id, module_id, points, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query, util.NewULID(), userID, courseID, moduleID, points, time.Now()); err != nil {
		return fmt.Errorf("failed to record module score: %w", err)
	}
	return nil
}

func (r *sqlxScoreRepository) DeleteModuleScores(ctx context.Context, userID, courseID, moduleID string) error {
	query := `DELETE FROM module_scores WHERE user_id = $1 AND course_id = $2 AND module_id = $3`

	if _, err := r.db.ExecContext(ctx, query, userID, courseID, moduleID); err != nil {
		return fmt.Errorf("failed to delete module scores: %w", err)
	}
	return nil
}

func toDomainScore(row *models.LeaderboardEntry) *domain.ScoreRecord {
	if row == nil {
		return nil
	}
	return &domain.ScoreRecord{
		ID:             row.ID,
		UserID:         row.UserID,
		DisplayName:    row.DisplayName.String,
		Score:          row.Score,
		MaxStreak:      row.MaxStreak,
		CompletionRate: row.CompletionRate,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func toDomainScoreList(rows []models.LeaderboardEntry) []domain.ScoreRecord {
	records := make([]domain.ScoreRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *toDomainScore(&rows[i]))
	}
	return records
}
