package models

import (
	"database/sql"
	"time"
)

// User represents a row in the users table.
type User struct {
	ID                string         `db:"id"` // ULID
	GoogleID          string         `db:"google_id"`
	Email             string         `db:"email"`
	Name              sql.NullString `db:"name"`
	ProfilePictureURL sql.NullString `db:"profile_picture_url"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
	DeletedAt         sql.NullTime   `db:"deleted_at"`
}

// CourseProgress represents a row in the course_progress table. Unique per
// (user_id, course_id, module_id).
type CourseProgress struct {
	ID           string       `db:"id"` // ULID
	UserID       string       `db:"user_id"`
	CourseID     string       `db:"course_id"`
	ModuleID     string       `db:"module_id"`
	Started      bool         `db:"started"`
	Completed    bool         `db:"completed"`
	LastAccessed time.Time    `db:"last_accessed"`
	CompletedAt  sql.NullTime `db:"completed_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// LeaderboardEntry represents a row in the leaderboard table: the single
// cumulative score record per user.
type LeaderboardEntry struct {
	ID             string         `db:"id"` // ULID
	UserID         string         `db:"user_id"`
	DisplayName    sql.NullString `db:"display_name"`
	Score          int            `db:"score"`
	MaxStreak      int            `db:"max_streak"`
	CompletionRate int            `db:"completion_rate"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// ScoreHistory represents a row in the append-only score_history table.
type ScoreHistory struct {
	ID        string    `db:"id"` // ULID
	UserID    string    `db:"user_id"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

// ModuleScore links points earned to the module they came from, so a module
// reset can remove them.
type ModuleScore struct {
	ID        string    `db:"id"` // ULID
	UserID    string    `db:"user_id"`
	CourseID  string    `db:"course_id"`
	ModuleID  string    `db:"module_id"`
	Points    int       `db:"points"`
	CreatedAt time.Time `db:"created_at"`
}

// Achievement represents a row in the achievements catalog table.
type Achievement struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Description      sql.NullString `db:"description"`
	Icon             sql.NullString `db:"icon"`
	Category         sql.NullString `db:"category"`
	Points           int            `db:"points"`
	MinScore         int            `db:"min_score"`
	StreakDays       int            `db:"streak_days"`
	LessonsCompleted int            `db:"lessons_completed"`
	QuizScore        int            `db:"quiz_score"`
	FriendsCount     int            `db:"friends_count"`
	DisplayOrder     int            `db:"display_order"`
}

// UserAchievement represents a row in the user_achievements table. Unique
// per (user_id, achievement_id); name/description/icon/points are
// denormalized copies taken at award time.
type UserAchievement struct {
	ID            string         `db:"id"` // ULID
	UserID        string         `db:"user_id"`
	AchievementID string         `db:"achievement_id"`
	Name          string         `db:"name"`
	Description   sql.NullString `db:"description"`
	Icon          sql.NullString `db:"icon"`
	Points        int            `db:"points"`
	EarnedAt      time.Time      `db:"earned_at"`
}

// UserFriend represents a row in the user_friends table.
type UserFriend struct {
	ID       string    `db:"id"` // ULID
	UserID   string    `db:"user_id"`
	FriendID string    `db:"friend_id"`
	Status   string    `db:"status"`
	AddedAt  time.Time `db:"added_at"`
}

// UserStatistics represents a row in the user_statistics table.
type UserStatistics struct {
	UserID           string    `db:"user_id"`
	Score            int       `db:"score"`
	CurrentStreak    int       `db:"current_streak"`
	LessonsCompleted int       `db:"lessons_completed"`
	HighestQuizScore int       `db:"highest_quiz_score"`
	UpdatedAt        time.Time `db:"updated_at"`
}
