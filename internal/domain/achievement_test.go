package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAchievementQualifies(t *testing.T) {
	t.Run("single requirement met", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{MinScore: 1000}}
		assert.True(t, a.Qualifies(UserStatistics{Score: 1200}))
	})

	t.Run("single requirement exactly met", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{MinScore: 1000}}
		assert.True(t, a.Qualifies(UserStatistics{Score: 1000}))
	})

	t.Run("single requirement not met", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{MinScore: 1000}}
		assert.False(t, a.Qualifies(UserStatistics{Score: 999}))
	})

	t.Run("multiple requirements are ANDed", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{MinScore: 500, StreakDays: 7}}
		assert.False(t, a.Qualifies(UserStatistics{Score: 600, CurrentStreak: 3}))
		assert.False(t, a.Qualifies(UserStatistics{Score: 400, CurrentStreak: 10}))
		assert.True(t, a.Qualifies(UserStatistics{Score: 600, CurrentStreak: 10}))
	})

	t.Run("friend requirement", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{FriendsCount: 5}}
		assert.True(t, a.Requirements.NeedsFriendCount())
		assert.False(t, a.Qualifies(UserStatistics{FriendCount: 4}))
		assert.True(t, a.Qualifies(UserStatistics{FriendCount: 5}))
	})

	t.Run("no requirements always qualifies", func(t *testing.T) {
		a := &Achievement{}
		assert.True(t, a.Qualifies(UserStatistics{}))
	})
}

func TestProgressToward(t *testing.T) {
	t.Run("partial progress floors", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{MinScore: 1000}}
		assert.Equal(t, 45, a.ProgressToward(UserStatistics{Score: 450}))
		assert.Equal(t, 0, a.ProgressToward(UserStatistics{Score: 9}))
	})

	t.Run("caps at 100", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{MinScore: 1000}}
		assert.Equal(t, 100, a.ProgressToward(UserStatistics{Score: 2500}))
	})

	t.Run("primary field wins over later ones", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{MinScore: 1000, StreakDays: 7}}
		// min_score is the primary field; streak is ignored for display
		assert.Equal(t, 50, a.ProgressToward(UserStatistics{Score: 500, CurrentStreak: 7}))
	})

	t.Run("streak primary", func(t *testing.T) {
		a := &Achievement{Requirements: Requirements{StreakDays: 7}}
		assert.Equal(t, 42, a.ProgressToward(UserStatistics{CurrentStreak: 3}))
	})

	t.Run("no requirements", func(t *testing.T) {
		a := &Achievement{}
		assert.Equal(t, 0, a.ProgressToward(UserStatistics{Score: 100}))
	})
}

func TestDefaultAchievementCatalog(t *testing.T) {
	catalog := DefaultAchievementCatalog()
	assert.Len(t, catalog, 5)

	ids := make(map[string]bool)
	for _, a := range catalog {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Name)
		assert.GreaterOrEqual(t, a.Points, 0)
		assert.False(t, ids[a.ID], "duplicate achievement id %s", a.ID)
		ids[a.ID] = true
	}

	assert.True(t, ids["first_lesson"])
	assert.True(t, ids["social_butterfly"])
}
