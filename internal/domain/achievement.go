package domain

import "time"

// Requirements holds the named numeric thresholds an achievement checks.
// A zero value means the field is not populated for the definition. All
// populated fields must hold (AND) for a user to qualify.
type Requirements struct {
	MinScore         int `json:"min_score,omitempty"`
	StreakDays       int `json:"streak_days,omitempty"`
	LessonsCompleted int `json:"lessons_completed,omitempty"`
	QuizScore        int `json:"quiz_score,omitempty"`
	FriendsCount     int `json:"friends_count,omitempty"`
}

// NeedsFriendCount reports whether evaluating the definition requires the
// user's friend count. It is fetched lazily only in that case.
func (r Requirements) NeedsFriendCount() bool {
	return r.FriendsCount > 0
}

// Achievement is a catalog entry.
type Achievement struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Icon         string       `json:"icon"`
	Category     string       `json:"category"`
	Points       int          `json:"points"`
	Requirements Requirements `json:"requirements"`
	DisplayOrder int          `json:"display_order"`
}

// UserAchievement records an award. At most one exists per
// (user, achievement); awarding is idempotent.
type UserAchievement struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	Points        int       `json:"points"`
	EarnedAt      time.Time `json:"earned_at"`
}

// UserStatistics is the snapshot the achievement engine evaluates against.
// FriendCount is filled lazily; FriendCountKnown distinguishes "zero
// friends" from "not fetched".
type UserStatistics struct {
	UserID           string `json:"user_id"`
	Score            int    `json:"score"`
	CurrentStreak    int    `json:"current_streak"`
	LessonsCompleted int    `json:"lessons_completed"`
	HighestQuizScore int    `json:"highest_quiz_score"`
	FriendCount      int    `json:"friend_count"`
	FriendCountKnown bool   `json:"-"`
}

// Qualifies evaluates every populated requirement field against the
// statistics with a >= comparison.
func (a *Achievement) Qualifies(stats UserStatistics) bool {
	req := a.Requirements
	if req.MinScore > 0 && stats.Score < req.MinScore {
		return false
	}
	if req.StreakDays > 0 && stats.CurrentStreak < req.StreakDays {
		return false
	}
	if req.LessonsCompleted > 0 && stats.LessonsCompleted < req.LessonsCompleted {
		return false
	}
	if req.QuizScore > 0 && stats.HighestQuizScore < req.QuizScore {
		return false
	}
	if req.FriendsCount > 0 && stats.FriendCount < req.FriendsCount {
		return false
	}
	return true
}

// ProgressToward returns a 0-100 display percentage for the achievement's
// primary requirement: the first populated field in priority order
// min_score, streak_days, lessons_completed, quiz_score, friends_count.
func (a *Achievement) ProgressToward(stats UserStatistics) int {
	req := a.Requirements
	switch {
	case req.MinScore > 0:
		return progressPercent(stats.Score, req.MinScore)
	case req.StreakDays > 0:
		return progressPercent(stats.CurrentStreak, req.StreakDays)
	case req.LessonsCompleted > 0:
		return progressPercent(stats.LessonsCompleted, req.LessonsCompleted)
	case req.QuizScore > 0:
		return progressPercent(stats.HighestQuizScore, req.QuizScore)
	case req.FriendsCount > 0:
		return progressPercent(stats.FriendCount, req.FriendsCount)
	}
	return 0
}

func progressPercent(value, required int) int {
	if required <= 0 {
		return 0
	}
	pct := value * 100 / required
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// DefaultAchievementCatalog is the fixed catalog used when the remote
// catalog cannot be read. Results built from it must be tagged as fallback.
func DefaultAchievementCatalog() []Achievement {
	return []Achievement{
		{
			ID:           "first_lesson",
			Name:         "First Steps",
			Description:  "Complete your first lesson",
			Icon:         "footprints",
			Category:     "progress",
			Points:       10,
			Requirements: Requirements{LessonsCompleted: 1},
			DisplayOrder: 1,
		},
		{
			ID:           "streak_7",
			Name:         "Weekly Warrior",
			Description:  "Maintain a 7-day streak",
			Icon:         "fire",
			Category:     "streaks",
			Points:       50,
			Requirements: Requirements{StreakDays: 7},
			DisplayOrder: 2,
		},
		{
			ID:           "score_1000",
			Name:         "Point Collector",
			Description:  "Earn 1,000 points",
			Icon:         "trophy",
			Category:     "score",
			Points:       25,
			Requirements: Requirements{MinScore: 1000},
			DisplayOrder: 3,
		},
		{
			ID:           "perfect_quiz",
			Name:         "Perfect Score",
			Description:  "Get 100% on any quiz",
			Icon:         "star",
			Category:     "quizzes",
			Points:       30,
			Requirements: Requirements{QuizScore: 100},
			DisplayOrder: 4,
		},
		{
			ID:           "social_butterfly",
			Name:         "Social Butterfly",
			Description:  "Add 5 friends",
			Icon:         "users",
			Category:     "social",
			Points:       40,
			Requirements: Requirements{FriendsCount: 5},
			DisplayOrder: 5,
		},
	}
}
