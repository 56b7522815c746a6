package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gamelearn/internal/domain"
	"gamelearn/internal/repository/models"
	"gamelearn/internal/util"

	"github.com/jmoiron/sqlx"
)

// AchievementRepository defines the interface for the achievement catalog
// and per-user awards.
type AchievementRepository interface {
	ListCatalog(ctx context.Context) ([]domain.Achievement, error)
	GetAchievement(ctx context.Context, achievementID string) (*domain.Achievement, error)
	ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error)
	// InsertUserAchievement inserts the award if it does not exist yet.
	// It reports whether a row was actually inserted, so the caller can
	// apply bonus points exactly once.
	InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, error)
}

type sqlxAchievementRepository struct {
	db *sqlx.DB
}

// NewSQLXAchievementRepository creates a new instance of sqlxAchievementRepository.
func NewSQLXAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &sqlxAchievementRepository{db: db}
}

func (r *sqlxAchievementRepository) ListCatalog(ctx context.Context) ([]domain.Achievement, error) {
	var rows []models.Achievement
	query := `SELECT * FROM achievements ORDER BY display_order ASC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list achievement catalog: %w", err)
	}

	catalog := make([]domain.Achievement, 0, len(rows))
	for i := range rows {
		catalog = append(catalog, *toDomainAchievement(&rows[i]))
	}
	return catalog, nil
}

// GetAchievement returns nil, nil when the catalog has no such entry.
func (r *sqlxAchievementRepository) GetAchievement(ctx context.Context, achievementID string) (*domain.Achievement, error) {
	var row models.Achievement
	query := `SELECT * FROM achievements WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, achievementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}
	return toDomainAchievement(&row), nil
}

func (r *sqlxAchievementRepository) ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	var rows []models.UserAchievement
	query := `SELECT * FROM user_achievements WHERE user_id = $1 ORDER BY earned_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}

	awards := make([]domain.UserAchievement, 0, len(rows))
	for _, row := range rows {
		awards = append(awards, domain.UserAchievement{
			ID:            row.ID,
			UserID:        row.UserID,
			AchievementID: row.AchievementID,
			Name:          row.Name,
			Description:   row.Description.String,
			Icon:          row.Icon.String,
			Points:        row.Points,
			EarnedAt:      row.EarnedAt,
		})
	}
	return awards, nil
}

// InsertUserAchievement relies on the unique (user_id, achievement_id)
// constraint: a concurrent duplicate insert is a no-op, never a second row.
func (r *sqlxAchievementRepository) InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, error) {
	query := `INSERT INTO user_achievements (id, user_id, achievement_id, name, description, icon, points, earned_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id, achievement_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query,
		util.NewULID(),
		award.UserID,
		award.AchievementID,
		award.Name,
		util.StringToNullString(award.Description),
		util.StringToNullString(award.Icon),
		award.Points,
		award.EarnedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert user achievement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func toDomainAchievement(row *models.Achievement) *domain.Achievement {
	if row == nil {
		return nil
	}
	return &domain.Achievement{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		Icon:        row.Icon.String,
		Category:    row.Category.String,
		Points:      row.Points,
		Requirements: domain.Requirements{
			MinScore:         row.MinScore,
			StreakDays:       row.StreakDays,
			LessonsCompleted: row.LessonsCompleted,
			QuizScore:        row.QuizScore,
			FriendsCount:     row.FriendsCount,
		},
		DisplayOrder: row.DisplayOrder,
	}
}
