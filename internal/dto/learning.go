package dto

import (
	"time"

	"gamelearn/internal/domain"
)

// StartModuleRequest marks a module as started for the authenticated user.
type StartModuleRequest struct {
	CourseID string `json:"course_id"`
	ModuleID string `json:"module_id"`
}

// CompleteModuleRequest marks a module as completed and reports the points
// earned while working through it.
type CompleteModuleRequest struct {
	CourseID      string `json:"course_id"`
	ModuleID      string `json:"module_id"`
	Points        int    `json:"points"`
	CurrentStreak int    `json:"current_streak"`
	DisplayName   string `json:"display_name"`
}

// ModuleProgressResponse is a single module's progress state.
type ModuleProgressResponse struct {
	ModuleID     string     `json:"module_id"`
	Started      bool       `json:"started"`
	Completed    bool       `json:"completed"`
	LastAccessed time.Time  `json:"last_accessed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// CourseProgressResponse is the per-course progress summary.
type CourseProgressResponse struct {
	CourseID             string                    `json:"course_id"`
	Source               domain.Source             `json:"source"`
	CompletionPercentage int                       `json:"completion_percentage"`
	Modules              []ModuleProgressResponse  `json:"modules"`
	NextRecommended      *domain.RecommendedModule `json:"next_recommended,omitempty"`
}

// AddScoreRequest applies a score delta for the authenticated user.
type AddScoreRequest struct {
	Points        int    `json:"points"`
	CurrentStreak int    `json:"current_streak"`
	DisplayName   string `json:"display_name"`
}

// ScoreResponse is the user's score record after an update or read.
type ScoreResponse struct {
	UserID         string        `json:"user_id"`
	DisplayName    string        `json:"display_name"`
	Score          int           `json:"score"`
	MaxStreak      int           `json:"max_streak"`
	CompletionRate int           `json:"completion_rate"`
	Source         domain.Source `json:"source"`
}

// RankResponse renders a user's standing. Rank is "-" when the user has no
// score record yet.
type RankResponse struct {
	Rank           string        `json:"rank"`
	TotalPlayers   int           `json:"total_players"`
	Score          int           `json:"score"`
	MaxStreak      int           `json:"max_streak"`
	CompletionRate int           `json:"completion_rate"`
	Source         domain.Source `json:"source"`
}

// AwardAchievementRequest awards a catalog achievement to the
// authenticated user.
type AwardAchievementRequest struct {
	AchievementID string `json:"achievement_id"`
}

// AwardAchievementResponse reports whether the award was newly granted.
type AwardAchievementResponse struct {
	Awarded     bool                    `json:"awarded"`
	Achievement *domain.UserAchievement `json:"achievement,omitempty"`
	BonusPoints int                     `json:"bonus_points"`
}

// AchievementProgressResponse pairs a catalog entry with the user's state.
type AchievementProgressResponse struct {
	Achievement domain.Achievement `json:"achievement"`
	Earned      bool               `json:"earned"`
	EarnedAt    *time.Time         `json:"earned_at,omitempty"`
	Progress    int                `json:"progress"`
}

// CourseSummaryResponse is a catalog listing entry.
type CourseSummaryResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Icon           string   `json:"icon"`
	Difficulty     string   `json:"difficulty"`
	EstimatedHours int      `json:"estimated_hours"`
	Tags           []string `json:"tags,omitempty"`
	TotalModules   int      `json:"total_modules"`
}
