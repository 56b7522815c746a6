package service

import (
	"context"
	"testing"

	"gamelearn/internal/domain"
	"gamelearn/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type achievementFixture struct {
	achievements *mockAchievementStore
	scores       *mockScoreStore
	progress     *mockProgressStore
	statsRepo    *mockStatisticsRepository
	friendRepo   *mockFriendRepository
	scoreSvc     *mockScoreService
	bus          *mockEventBus
	svc          AchievementService
}

func newAchievementFixture() *achievementFixture {
	f := &achievementFixture{
		achievements: new(mockAchievementStore),
		scores:       new(mockScoreStore),
		progress:     new(mockProgressStore),
		statsRepo:    new(mockStatisticsRepository),
		friendRepo:   new(mockFriendRepository),
		scoreSvc:     new(mockScoreService),
		bus:          new(mockEventBus),
	}
	f.svc = NewAchievementService(f.achievements, f.scores, f.progress, f.statsRepo, f.friendRepo, f.scoreSvc, f.bus)
	return f
}

func (f *achievementFixture) stubStatistics(stats *domain.UserStatistics) {
	f.statsRepo.On("GetUserStatistics", mock.Anything, stats.UserID).Return(stats, nil)
	f.scores.On("GetScore", mock.Anything, stats.UserID).Return(nil, domain.SourceLive, nil)
	f.progress.On("CountCompleted", mock.Anything, stats.UserID).Return(0, nil)
}

func TestAchievementService_ListEligible_ExcludesEarned(t *testing.T) {
	f := newAchievementFixture()
	catalog := []domain.Achievement{
		{ID: "first_lesson", Points: 10, Requirements: domain.Requirements{LessonsCompleted: 1}},
		{ID: "score_1000", Points: 25, Requirements: domain.Requirements{MinScore: 1000}},
	}
	f.achievements.On("ListCatalog", mock.Anything).Return(catalog, domain.SourceLive, nil)
	f.achievements.On("ListUserAchievements", mock.Anything, "user-1").
		Return([]domain.UserAchievement{{AchievementID: "first_lesson"}}, domain.SourceLive, nil)
	f.stubStatistics(&domain.UserStatistics{UserID: "user-1", Score: 1500, LessonsCompleted: 4})

	eligible, err := f.svc.ListEligible(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "score_1000", eligible[0].ID, "already earned achievements never re-qualify")
}

func TestAchievementService_ListEligible_LazyFriendCount(t *testing.T) {
	f := newAchievementFixture()
	catalog := []domain.Achievement{
		{ID: "score_1000", Requirements: domain.Requirements{MinScore: 1000}},
	}
	f.achievements.On("ListCatalog", mock.Anything).Return(catalog, domain.SourceLive, nil)
	f.achievements.On("ListUserAchievements", mock.Anything, "user-1").Return(nil, domain.SourceLive, nil)
	f.stubStatistics(&domain.UserStatistics{UserID: "user-1", Score: 1500})

	_, err := f.svc.ListEligible(context.Background(), "user-1")

	require.NoError(t, err)
	f.friendRepo.AssertNotCalled(t, "CountFriends", mock.Anything, mock.Anything)
}

func TestAchievementService_ListEligible_FetchesFriendCountWhenNeeded(t *testing.T) {
	f := newAchievementFixture()
	catalog := []domain.Achievement{
		{ID: "social_butterfly", Requirements: domain.Requirements{FriendsCount: 5}},
	}
	f.achievements.On("ListCatalog", mock.Anything).Return(catalog, domain.SourceLive, nil)
	f.achievements.On("ListUserAchievements", mock.Anything, "user-1").Return(nil, domain.SourceLive, nil)
	f.stubStatistics(&domain.UserStatistics{UserID: "user-1"})
	f.friendRepo.On("CountFriends", mock.Anything, "user-1").Return(6, nil)

	eligible, err := f.svc.ListEligible(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "social_butterfly", eligible[0].ID)
}

func TestAchievementService_Award_CreditsBonusOnce(t *testing.T) {
	f := newAchievementFixture()
	achievement := &domain.Achievement{ID: "score_1000", Name: "Point Collector", Points: 25, Requirements: domain.Requirements{MinScore: 1000}}
	f.achievements.On("GetAchievement", mock.Anything, "score_1000").Return(achievement, nil)
	f.stubStatistics(&domain.UserStatistics{UserID: "user-1", Score: 1200})
	f.achievements.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(true, domain.SourceLive, nil).Once()
	f.scoreSvc.On("AddScore", mock.Anything, "user-1", &dto.AddScoreRequest{Points: 25}).
		Return(&dto.ScoreResponse{Score: 1225}, nil).Once()
	f.bus.On("Publish", mock.Anything, domain.EventAchievementUnlocked, mock.Anything).Return(nil).Once()

	resp, err := f.svc.Award(context.Background(), "user-1", "score_1000")

	require.NoError(t, err)
	assert.True(t, resp.Awarded)
	assert.Equal(t, 25, resp.BonusPoints)
	require.NotNil(t, resp.Achievement)
	assert.Equal(t, "Point Collector", resp.Achievement.Name)

	// Second award is a no-op: no bonus, no event.
	f.achievements.On("InsertUserAchievement", mock.Anything, mock.Anything).Return(false, domain.SourceLive, nil).Once()
	resp, err = f.svc.Award(context.Background(), "user-1", "score_1000")
	require.NoError(t, err)
	assert.False(t, resp.Awarded)
	f.scoreSvc.AssertNumberOfCalls(t, "AddScore", 1)
	f.bus.AssertNumberOfCalls(t, "Publish", 1)
}

func TestAchievementService_Award_NotQualified(t *testing.T) {
	f := newAchievementFixture()
	achievement := &domain.Achievement{ID: "score_1000", Points: 25, Requirements: domain.Requirements{MinScore: 1000}}
	f.achievements.On("GetAchievement", mock.Anything, "score_1000").Return(achievement, nil)
	f.stubStatistics(&domain.UserStatistics{UserID: "user-1", Score: 900})

	resp, err := f.svc.Award(context.Background(), "user-1", "score_1000")

	require.NoError(t, err)
	assert.False(t, resp.Awarded)
	f.achievements.AssertNotCalled(t, "InsertUserAchievement", mock.Anything, mock.Anything)
}

func TestAchievementService_Award_UnknownAchievement(t *testing.T) {
	f := newAchievementFixture()
	f.achievements.On("GetAchievement", mock.Anything, "nope").Return(nil, nil)

	_, err := f.svc.Award(context.Background(), "user-1", "nope")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAchievementNotFound, domainErr.Code)
}

func TestAchievementService_ProgressSummary(t *testing.T) {
	f := newAchievementFixture()
	catalog := []domain.Achievement{
		{ID: "first_lesson", Requirements: domain.Requirements{LessonsCompleted: 1}},
		{ID: "score_1000", Requirements: domain.Requirements{MinScore: 1000}},
	}
	f.achievements.On("ListCatalog", mock.Anything).Return(catalog, domain.SourceLive, nil)
	f.achievements.On("ListUserAchievements", mock.Anything, "user-1").
		Return([]domain.UserAchievement{{AchievementID: "first_lesson"}}, domain.SourceLive, nil)
	f.stubStatistics(&domain.UserStatistics{UserID: "user-1", Score: 500})

	summary, err := f.svc.ProgressSummary(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.True(t, summary[0].Earned)
	assert.Equal(t, 100, summary[0].Progress)
	assert.False(t, summary[1].Earned)
	assert.Equal(t, 50, summary[1].Progress)
}

func TestAchievementService_GetUserStatistics_DegradesPerLeg(t *testing.T) {
	f := newAchievementFixture()
	f.statsRepo.On("GetUserStatistics", mock.Anything, "user-1").Return(nil, errStoreDown)
	f.scores.On("GetScore", mock.Anything, "user-1").
		Return(&domain.ScoreRecord{UserID: "user-1", Score: 700, MaxStreak: 4}, domain.SourceLive, nil)
	f.progress.On("CountCompleted", mock.Anything, "user-1").Return(3, nil)

	stats, err := f.svc.GetUserStatistics(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 700, stats.Score)
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LessonsCompleted)
}
