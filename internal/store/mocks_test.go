package store

import (
	"context"
	"time"

	"gamelearn/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockProgressRepository struct {
	mock.Mock
}

func (m *mockProgressRepository) UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockProgressRepository) GetProgress(ctx context.Context, userID, courseID, moduleID string) (*domain.ProgressRecord, error) {
	args := m.Called(ctx, userID, courseID, moduleID)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.ProgressRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressRepository) GetCourseProgress(ctx context.Context, userID, courseID string) ([]domain.ProgressRecord, error) {
	args := m.Called(ctx, userID, courseID)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ProgressRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressRepository) GetAllProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	args := m.Called(ctx, userID)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ProgressRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockProgressRepository) DeleteProgress(ctx context.Context, userID, courseID, moduleID string) error {
	args := m.Called(ctx, userID, courseID, moduleID)
	return args.Error(0)
}

type mockScoreRepository struct {
	mock.Mock
}

func (m *mockScoreRepository) AddScore(ctx context.Context, userID, displayName string, delta, currentStreak int) (*domain.ScoreRecord, error) {
	args := m.Called(ctx, userID, displayName, delta, currentStreak)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepository) GetScore(ctx context.Context, userID string) (*domain.ScoreRecord, error) {
	args := m.Called(ctx, userID)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepository) ListScores(ctx context.Context) ([]domain.ScoreRecord, error) {
	args := m.Called(ctx)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepository) ListForLeaderboard(ctx context.Context, since *time.Time, sortBy domain.SortBy, limit int) ([]domain.ScoreRecord, error) {
	args := m.Called(ctx, since, sortBy, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepository) ListScoresByUserIDs(ctx context.Context, userIDs []string) ([]domain.ScoreRecord, error) {
	args := m.Called(ctx, userIDs)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.ScoreRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepository) UpdateCompletionRate(ctx context.Context, userID string, rate int) error {
	args := m.Called(ctx, userID, rate)
	return args.Error(0)
}

func (m *mockScoreRepository) AppendHistory(ctx context.Context, userID string, score int) error {
	args := m.Called(ctx, userID, score)
	return args.Error(0)
}

func (m *mockScoreRepository) GetHistorySince(ctx context.Context, since time.Time) ([]domain.ScoreHistoryEntry, error) {
	args := m.Called(ctx, since)
	if entries := args.Get(0); entries != nil {
		return entries.([]domain.ScoreHistoryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScoreRepository) RecordModuleScore(ctx context.Context, userID, courseID, moduleID string, points int) error {
	args := m.Called(ctx, userID, courseID, moduleID, points)
	return args.Error(0)
}

func (m *mockScoreRepository) DeleteModuleScores(ctx context.Context, userID, courseID, moduleID string) error {
	args := m.Called(ctx, userID, courseID, moduleID)
	return args.Error(0)
}

type mockAchievementRepository struct {
	mock.Mock
}

func (m *mockAchievementRepository) ListCatalog(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	if catalog := args.Get(0); catalog != nil {
		return catalog.([]domain.Achievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAchievementRepository) GetAchievement(ctx context.Context, achievementID string) (*domain.Achievement, error) {
	args := m.Called(ctx, achievementID)
	if entry := args.Get(0); entry != nil {
		return entry.(*domain.Achievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAchievementRepository) ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	args := m.Called(ctx, userID)
	if awards := args.Get(0); awards != nil {
		return awards.([]domain.UserAchievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAchievementRepository) InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, error) {
	args := m.Called(ctx, award)
	return args.Bool(0), args.Error(1)
}
