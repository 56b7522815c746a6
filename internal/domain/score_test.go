package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func historyEntry(userID string, score int, offset time.Duration) ScoreHistoryEntry {
	return ScoreHistoryEntry{
		UserID:    userID,
		Score:     score,
		CreatedAt: time.Now().Add(offset),
	}
}

func TestComputeImprovements(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		assert.Empty(t, ComputeImprovements(nil))
	})

	t.Run("delta between first and last in window", func(t *testing.T) {
		history := []ScoreHistoryEntry{
			historyEntry("u1", 100, 0),
			historyEntry("u1", 250, time.Hour),
			historyEntry("u1", 400, 2*time.Hour),
		}
		players := ComputeImprovements(history)
		assert.Len(t, players, 1)
		assert.Equal(t, 300, players[0].Improvement)
		assert.InDelta(t, 300.0, players[0].ImprovementPercent, 0.01)
		assert.Equal(t, 1, players[0].Rank)
	})

	t.Run("sorted by improvement descending", func(t *testing.T) {
		history := []ScoreHistoryEntry{
			historyEntry("slow", 100, 0),
			historyEntry("fast", 100, time.Minute),
			historyEntry("slow", 150, time.Hour),
			historyEntry("fast", 600, time.Hour),
		}
		players := ComputeImprovements(history)
		assert.Len(t, players, 2)
		assert.Equal(t, "fast", players[0].UserID)
		assert.Equal(t, 500, players[0].Improvement)
		assert.Equal(t, "slow", players[1].UserID)
		assert.Equal(t, 2, players[1].Rank)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		history := []ScoreHistoryEntry{
			historyEntry("a", 100, 0),
			historyEntry("b", 200, time.Minute),
			historyEntry("a", 150, time.Hour),
			historyEntry("b", 250, time.Hour),
		}
		players := ComputeImprovements(history)
		assert.Equal(t, "a", players[0].UserID)
		assert.Equal(t, "b", players[1].UserID)
	})

	t.Run("zero first score yields zero percent", func(t *testing.T) {
		history := []ScoreHistoryEntry{
			historyEntry("u1", 0, 0),
			historyEntry("u1", 500, time.Hour),
		}
		players := ComputeImprovements(history)
		assert.Equal(t, 500, players[0].Improvement)
		assert.Equal(t, 0.0, players[0].ImprovementPercent)
	})

	t.Run("single entry means no improvement", func(t *testing.T) {
		history := []ScoreHistoryEntry{historyEntry("u1", 300, 0)}
		players := ComputeImprovements(history)
		assert.Len(t, players, 1)
		assert.Equal(t, 0, players[0].Improvement)
	})
}

func TestFallbackData(t *testing.T) {
	lb := FallbackLeaderboard()
	assert.Equal(t, SourceFallback, lb.Source)
	assert.Len(t, lb.Entries, 5)
	for i, entry := range lb.Entries {
		assert.Equal(t, i+1, entry.Rank)
	}

	improved := FallbackImprovedPlayers(3)
	assert.Equal(t, SourceFallback, improved.Source)
	assert.Len(t, improved.Players, 3)

	all := FallbackImprovedPlayers(0)
	assert.Len(t, all.Players, 5)
}
