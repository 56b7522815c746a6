package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamelearn/internal/domain"
	"gamelearn/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// StatisticsRepository reads the user_statistics projection the achievement
// engine evaluates against.
type StatisticsRepository interface {
	GetUserStatistics(ctx context.Context, userID string) (*domain.UserStatistics, error)
}

type sqlxStatisticsRepository struct {
	db *sqlx.DB
}

// NewSQLXStatisticsRepository creates a new instance of sqlxStatisticsRepository.
func NewSQLXStatisticsRepository(db *sqlx.DB) StatisticsRepository {
	return &sqlxStatisticsRepository{db: db}
}

// GetUserStatistics returns nil, nil when no statistics row exists yet.
func (r *sqlxStatisticsRepository) GetUserStatistics(ctx context.Context, userID string) (*domain.UserStatistics, error) {
	var row models.UserStatistics
	query := `SELECT * FROM user_statistics WHERE user_id = $1`

	err := r.db.GetContext(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user statistics: %w", err)
	}

	return &domain.UserStatistics{
		UserID:           row.UserID,
		Score:            row.Score,
		CurrentStreak:    row.CurrentStreak,
		LessonsCompleted: row.LessonsCompleted,
		HighestQuizScore: row.HighestQuizScore,
	}, nil
}
