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

// ProgressRepository defines the interface for course progress operations.
type ProgressRepository interface {
	UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error
	GetProgress(ctx context.Context, userID, courseID, moduleID string) (*domain.ProgressRecord, error)
	GetCourseProgress(ctx context.Context, userID, courseID string) ([]domain.ProgressRecord, error)
	GetAllProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
	DeleteProgress(ctx context.Context, userID, courseID, moduleID string) error
}

type sqlxProgressRepository struct {
	db *sqlx.DB
}

// NewSQLXProgressRepository creates a new instance of sqlxProgressRepository.
func NewSQLXProgressRepository(db *sqlx.DB) ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

// UpsertProgress creates the record on first start and mutates it in place
// afterwards. Completion never reverts: once completed stays completed even
// if a later upsert carries completed=false.
func (r *sqlxProgressRepository) UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error {
	now := time.Now()
	query := `INSERT INTO course_progress (id, user_id, course_id, module_id, started, completed, last_accessed, completed_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (user_id, course_id, module_id) DO UPDATE SET
	            started = course_progress.started OR EXCLUDED.started,
	            completed = course_progress.completed OR EXCLUDED.completed,
	            last_accessed = EXCLUDED.last_accessed,
	            completed_at = COALESCE(course_progress.completed_at, EXCLUDED.completed_at),
	            updated_at = EXCLUDED.updated_at`

	var completedAt sql.NullTime
	if record.Progress.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *record.Progress.CompletedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		util.NewULID(),
		record.UserID,
		record.CourseID,
		record.ModuleID,
		record.Progress.Started,
		record.Progress.Completed,
		record.Progress.LastAccessed,
		completedAt,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// GetProgress retrieves a single progress record, or nil when absent.
func (r *sqlxProgressRepository) GetProgress(ctx context.Context, userID, courseID, moduleID string) (*domain.ProgressRecord, error) {
	var row models.CourseProgress
	query := `SELECT * FROM course_progress WHERE user_id = $1 AND course_id = $2 AND module_id = $3`

	err := r.db.GetContext(ctx, &row, query, userID, courseID, moduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return toDomainProgress(&row), nil
}

// GetCourseProgress retrieves all progress records for a user in a course.
func (r *sqlxProgressRepository) GetCourseProgress(ctx context.Context, userID, courseID string) ([]domain.ProgressRecord, error) {
	var rows []models.CourseProgress
	query := `SELECT * FROM course_progress WHERE user_id = $1 AND course_id = $2 ORDER BY last_accessed`

	if err := r.db.SelectContext(ctx, &rows, query, userID, courseID); err != nil {
		return nil, fmt.Errorf("failed to get course progress: %w", err)
	}
	return toDomainProgressList(rows), nil
}

// GetAllProgress retrieves every progress record for a user across courses.
func (r *sqlxProgressRepository) GetAllProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	var rows []models.CourseProgress
	query := `SELECT * FROM course_progress WHERE user_id = $1 ORDER BY last_accessed`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get all progress: %w", err)
	}
	return toDomainProgressList(rows), nil
}

// CountCompleted counts completed modules across all courses for a user.
func (r *sqlxProgressRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM course_progress WHERE user_id = $1 AND completed = TRUE`

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count completed modules: %w", err)
	}
	return count, nil
}

// DeleteProgress removes the record for (user, course, module). Deleting an
// absent record is not an error.
func (r *sqlxProgressRepository) DeleteProgress(ctx context.Context, userID, courseID, moduleID string) error {
	query := `DELETE FROM course_progress WHERE user_id = $1 AND course_id = $2 AND module_id = $3`

	if _, err := r.db.ExecContext(ctx, query, userID, courseID, moduleID); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

func toDomainProgress(row *models.CourseProgress) *domain.ProgressRecord {
	if row == nil {
		return nil
	}
	return &domain.ProgressRecord{
		ID:       row.ID,
		UserID:   row.UserID,
		CourseID: row.CourseID,
		ModuleID: row.ModuleID,
		Progress: domain.ProgressPayload{
			Started:      row.Started,
			Completed:    row.Completed,
			LastAccessed: row.LastAccessed,
			CompletedAt:  util.NullTimeToPtr(row.CompletedAt),
		},
		UpdatedAt: row.UpdatedAt,
	}
}

func toDomainProgressList(rows []models.CourseProgress) []domain.ProgressRecord {
	records := make([]domain.ProgressRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *toDomainProgress(&rows[i]))
	}
	return records
}
