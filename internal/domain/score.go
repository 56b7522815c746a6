package domain

import "time"

// ScoreRecord is the single per-user leaderboard row. Score only grows
// (administrative reset aside) and MaxStreak is the running maximum of all
// streak values ever reported for the user.
type ScoreRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Score          int       `json:"score"`
	MaxStreak      int       `json:"max_streak"`
	CompletionRate int       `json:"completion_rate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ScoreHistoryEntry is an append-only log row recording the cumulative
// score right after an update. MostImproved windows are computed over it.
type ScoreHistoryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// RankInfo describes a user's standing among all players. Rank is 1-based;
// a user without a score record has Rank == 0, rendered as "-" upstream.
type RankInfo struct {
	UserID         string `json:"user_id"`
	Rank           int    `json:"rank"`
	TotalPlayers   int    `json:"total_players"`
	Score          int    `json:"score"`
	MaxStreak      int    `json:"max_streak"`
	CompletionRate int    `json:"completion_rate"`
	Source         Source `json:"source"`
}

// ImprovedPlayer is a most-improved ranking entry over a time window.
type ImprovedPlayer struct {
	UserID             string  `json:"user_id"`
	DisplayName        string  `json:"display_name"`
	Score              int     `json:"score"`
	Improvement        int     `json:"improvement"`
	ImprovementPercent float64 `json:"improvement_percent"`
	Rank               int     `json:"rank"`
}

// MostImprovedResult is the tagged output of a most-improved query.
type MostImprovedResult struct {
	Source  Source           `json:"source"`
	Players []ImprovedPlayer `json:"players"`
}

// ComputeImprovements folds a time-ordered score history into per-user
// improvement entries. The first and last score seen inside the window
// bound the delta; percent is zero when the first score is zero. Ordering
// of users with equal improvement follows first appearance in the history
// (stable sort).
func ComputeImprovements(history []ScoreHistoryEntry) []ImprovedPlayer {
	type window struct {
		first int
		last  int
	}

	order := make([]string, 0)
	windows := make(map[string]*window)
	for _, entry := range history {
		w, ok := windows[entry.UserID]
		if !ok {
			windows[entry.UserID] = &window{first: entry.Score, last: entry.Score}
			order = append(order, entry.UserID)
			continue
		}
		w.last = entry.Score
	}

	players := make([]ImprovedPlayer, 0, len(order))
	for _, userID := range order {
		w := windows[userID]
		improvement := w.last - w.first
		percent := 0.0
		if w.first > 0 {
			percent = float64(improvement) / float64(w.first) * 100
		}
		players = append(players, ImprovedPlayer{
			UserID:             userID,
			Improvement:        improvement,
			ImprovementPercent: percent,
		})
	}

	// Stable: ties keep input order
	stableSortByImprovement(players)
	for i := range players {
		players[i].Rank = i + 1
	}
	return players
}

func stableSortByImprovement(players []ImprovedPlayer) {
	// Insertion sort keeps equal elements in input order; the candidate
	// sets here are small (bounded by active users in the window).
	for i := 1; i < len(players); i++ {
		for j := i; j > 0 && players[j].Improvement > players[j-1].Improvement; j-- {
			players[j], players[j-1] = players[j-1], players[j]
		}
	}
}
