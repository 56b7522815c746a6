package service

import (
	"context"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/dto"

	"github.com/stretchr/testify/mock"
)

type mockProgressStore struct {
	mock.Mock
}

func (m *mockProgressStore) UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockProgressStore) GetProgress(ctx context.Context, userID, courseID, moduleID string) (*domain.ProgressRecord, error) {
	args := m.Called(ctx, userID, courseID, moduleID)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.ProgressRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressStore) GetCourseProgress(ctx context.Context, userID, courseID string) ([]domain.ProgressRecord, domain.Source, error) {
	args := m.Called(ctx, userID, courseID)
	var recs []domain.ProgressRecord
	if got := args.Get(0); got != nil {
		recs = got.([]domain.ProgressRecord)
	}
	return recs, args.Get(1).(domain.Source), args.Error(2)
}

func (m *mockProgressStore) GetAllProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, domain.Source, error) {
	args := m.Called(ctx, userID)
	var recs []domain.ProgressRecord
	if got := args.Get(0); got != nil {
		recs = got.([]domain.ProgressRecord)
	}
	return recs, args.Get(1).(domain.Source), args.Error(2)
}

func (m *mockProgressStore) CountCompleted(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockProgressStore) DeleteProgress(ctx context.Context, userID, courseID, moduleID string) error {
	args := m.Called(ctx, userID, courseID, moduleID)
	return args.Error(0)
}

type mockScoreStore struct {
	mock.Mock
}

func (m *mockScoreStore) AddScore(ctx context.Context, userID, displayName string, delta, currentStreak int) (*domain.ScoreRecord, domain.Source, error) {
	args := m.Called(ctx, userID, displayName, delta, currentStreak)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.ScoreRecord), args.Get(1).(domain.Source), args.Error(2)
	}
	return nil, args.Get(1).(domain.Source), args.Error(2)
}

func (m *mockScoreStore) GetScore(ctx context.Context, userID string) (*domain.ScoreRecord, domain.Source, error) {
	args := m.Called(ctx, userID)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.ScoreRecord), args.Get(1).(domain.Source), args.Error(2)
	}
	return nil, args.Get(1).(domain.Source), args.Error(2)
}

func (m *mockScoreStore) ListScores(ctx context.Context) ([]domain.ScoreRecord, error) {
	args := m.Called(ctx)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreStore) ListForLeaderboard(ctx context.Context, since *time.Time, sortBy domain.SortBy, limit int) ([]domain.ScoreRecord, error) {
	args := m.Called(ctx, since, sortBy, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreStore) ListScoresByUserIDs(ctx context.Context, userIDs []string) ([]domain.ScoreRecord, error) {
	args := m.Called(ctx, userIDs)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreStore) UpdateCompletionRate(ctx context.Context, userID string, rate int) error {
	args := m.Called(ctx, userID, rate)
	return args.Error(0)
}

func (m *mockScoreStore) AppendHistory(ctx context.Context, userID string, score int) error {
	args := m.Called(ctx, userID, score)
	return args.Error(0)
}

func (m *mockScoreStore) GetHistorySince(ctx context.Context, since time.Time) ([]domain.ScoreHistoryEntry, error) {
	args := m.Called(ctx, since)
	if entries := args.Get(0); entries != nil {
		return entries.([]domain.ScoreHistoryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreStore) RecordModuleScore(ctx context.Context, userID, courseID, moduleID string, points int) error {
	args := m.Called(ctx, userID, courseID, moduleID, points)
	return args.Error(0)
}

func (m *mockScoreStore) DeleteModuleScores(ctx context.Context, userID, courseID, moduleID string) error {
	args := m.Called(ctx, userID, courseID, moduleID)
	return args.Error(0)
}

type mockAchievementStore struct {
	mock.Mock
}

func (m *mockAchievementStore) ListCatalog(ctx context.Context) ([]domain.Achievement, domain.Source, error) {
	args := m.Called(ctx)
	var catalog []domain.Achievement
	if got := args.Get(0); got != nil {
		catalog = got.([]domain.Achievement)
	}
	return catalog, args.Get(1).(domain.Source), args.Error(2)
}

func (m *mockAchievementStore) GetAchievement(ctx context.Context, achievementID string) (*domain.Achievement, error) {
	args := m.Called(ctx, achievementID)
	if entry := args.Get(0); entry != nil {
		return entry.(*domain.Achievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAchievementStore) ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, domain.Source, error) {
	args := m.Called(ctx, userID)
	var awards []domain.UserAchievement
	if got := args.Get(0); got != nil {
		awards = got.([]domain.UserAchievement)
	}
	return awards, args.Get(1).(domain.Source), args.Error(2)
}

func (m *mockAchievementStore) InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, domain.Source, error) {
	args := m.Called(ctx, award)
	return args.Bool(0), args.Get(1).(domain.Source), args.Error(2)
}

type mockStatisticsRepository struct {
	mock.Mock
}

func (m *mockStatisticsRepository) GetUserStatistics(ctx context.Context, userID string) (*domain.UserStatistics, error) {
	args := m.Called(ctx, userID)
	if stats := args.Get(0); stats != nil {
		return stats.(*domain.UserStatistics), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFriendRepository struct {
	mock.Mock
}

func (m *mockFriendRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFriendRepository) CountFriends(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockScoreService struct {
	mock.Mock
}

func (m *mockScoreService) AddScore(ctx context.Context, userID string, req *dto.AddScoreRequest) (*dto.ScoreResponse, error) {
	args := m.Called(ctx, userID, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.ScoreResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreService) GetScore(ctx context.Context, userID string) (*dto.ScoreResponse, error) {
	args := m.Called(ctx, userID)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.ScoreResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreService) GetRank(ctx context.Context, userID string) (*dto.RankResponse, error) {
	args := m.Called(ctx, userID)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.RankResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreService) MostImproved(ctx context.Context, window time.Duration, limit int) (*domain.MostImprovedResult, error) {
	args := m.Called(ctx, window, limit)
	if result := args.Get(0); result != nil {
		return result.(*domain.MostImprovedResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) Publish(ctx context.Context, event string, payload interface{}) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}

func (m *mockEventBus) Subscribe(event string, handler domain.EventHandler) (func(), error) {
	args := m.Called(event, handler)
	if fn := args.Get(0); fn != nil {
		return fn.(func()), args.Error(1)
	}
	return func() {}, args.Error(1)
}
