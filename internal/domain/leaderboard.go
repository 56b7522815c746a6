package domain

// TimeFilter restricts leaderboard reads to records updated within a
// trailing window.
type TimeFilter string

const (
	FilterAll   TimeFilter = "all"
	FilterWeek  TimeFilter = "week"
	FilterMonth TimeFilter = "month"
)

func (f TimeFilter) Valid() bool {
	switch f {
	case FilterAll, FilterWeek, FilterMonth:
		return true
	}
	return false
}

// SortBy selects the field a leaderboard is ordered by, descending.
type SortBy string

const (
	SortByScore      SortBy = "score"
	SortByStreak     SortBy = "streak"
	SortByCompletion SortBy = "completion"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortByScore, SortByStreak, SortByCompletion:
		return true
	}
	return false
}

// LeaderboardEntry is a ranked projection of a score record with badge
// names and an output-order rank.
type LeaderboardEntry struct {
	UserID         string   `json:"user_id"`
	DisplayName    string   `json:"display_name"`
	Score          int      `json:"score"`
	MaxStreak      int      `json:"max_streak"`
	CompletionRate int      `json:"completion_rate"`
	Badges         []string `json:"badges"`
	Rank           int      `json:"rank"`
}

// Leaderboard is the tagged result of a leaderboard build.
type Leaderboard struct {
	Source  Source             `json:"source"`
	Entries []LeaderboardEntry `json:"entries"`
}

// FallbackLeaderboard is the fixed illustrative list returned when the
// store cannot be read. Callers see Source == SourceFallback.
func FallbackLeaderboard() Leaderboard {
	return Leaderboard{
		Source: SourceFallback,
		Entries: []LeaderboardEntry{
			{UserID: "fallback-1", DisplayName: "Sarah Johnson", Score: 15000, MaxStreak: 30, CompletionRate: 85, Badges: []string{"Math Master", "Science Whiz", "Language Expert"}, Rank: 1},
			{UserID: "fallback-2", DisplayName: "Michael Chen", Score: 14500, MaxStreak: 25, CompletionRate: 80, Badges: []string{"History Buff", "Literature Pro"}, Rank: 2},
			{UserID: "fallback-3", DisplayName: "Emily Rodriguez", Score: 14000, MaxStreak: 20, CompletionRate: 75, Badges: []string{"Quiz Champion", "Perfect Attendance"}, Rank: 3},
			{UserID: "fallback-4", DisplayName: "James Wilson", Score: 13500, MaxStreak: 15, CompletionRate: 70, Badges: []string{"Rising Star"}, Rank: 4},
			{UserID: "fallback-5", DisplayName: "Lisa Thompson", Score: 13000, MaxStreak: 10, CompletionRate: 65, Badges: []string{"Quick Learner"}, Rank: 5},
		},
	}
}

// FallbackImprovedPlayers is the fixed illustrative most-improved list.
func FallbackImprovedPlayers(limit int) MostImprovedResult {
	players := []ImprovedPlayer{
		{UserID: "improved-1", DisplayName: "Alex Martinez", Score: 8500, Improvement: 2000, ImprovementPercent: 30.8, Rank: 1},
		{UserID: "improved-2", DisplayName: "Taylor Wong", Score: 7200, Improvement: 1500, ImprovementPercent: 26.3, Rank: 2},
		{UserID: "improved-3", DisplayName: "Jordan Smith", Score: 6700, Improvement: 1200, ImprovementPercent: 21.8, Rank: 3},
		{UserID: "improved-4", DisplayName: "Casey Lin", Score: 5900, Improvement: 900, ImprovementPercent: 18.0, Rank: 4},
		{UserID: "improved-5", DisplayName: "Riley Johnson", Score: 5300, Improvement: 700, ImprovementPercent: 15.2, Rank: 5},
	}
	if limit > 0 && limit < len(players) {
		players = players[:limit]
	}
	return MostImprovedResult{Source: SourceFallback, Players: players}
}
