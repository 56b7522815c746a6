package store

import (
	"context"
	"encoding/json"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/logger"
	"gamelearn/internal/repository"

	"go.uber.org/zap"
)

// AchievementStore is the failover-aware port for the achievement catalog
// and per-user awards. The catalog degrades to the built-in default set;
// awards degrade to the per-user fallback list.
type AchievementStore interface {
	ListCatalog(ctx context.Context) ([]domain.Achievement, domain.Source, error)
	GetAchievement(ctx context.Context, achievementID string) (*domain.Achievement, error)
	ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, domain.Source, error)
	// InsertUserAchievement reports whether the award was newly recorded.
	// Idempotence holds on both paths: a duplicate award is a no-op.
	InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, domain.Source, error)
}

type failoverAchievementStore struct {
	remote   repository.AchievementRepository
	fallback Fallback
	timeout  time.Duration
}

// NewAchievementStore wraps the remote repository with the local fallback.
func NewAchievementStore(remote repository.AchievementRepository, fallback Fallback, timeout time.Duration) AchievementStore {
	return &failoverAchievementStore{remote: remote, fallback: fallback, timeout: timeout}
}

func (s *failoverAchievementStore) userKey(userID string) string {
	return FallbackKey(CollectionAchievements, userID)
}

func (s *failoverAchievementStore) ListCatalog(ctx context.Context) ([]domain.Achievement, domain.Source, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	catalog, err := s.remote.ListCatalog(rctx)
	if err == nil && len(catalog) > 0 {
		return catalog, domain.SourceLive, nil
	}
	if err != nil {
		logger.Get().Warn("Remote achievement catalog read failed, using default catalog", zap.Error(err))
	}
	return domain.DefaultAchievementCatalog(), domain.SourceFallback, nil
}

func (s *failoverAchievementStore) GetAchievement(ctx context.Context, achievementID string) (*domain.Achievement, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	achievement, err := s.remote.GetAchievement(rctx, achievementID)
	if err == nil {
		return achievement, nil
	}

	logger.Get().Warn("Remote achievement read failed, using default catalog",
		zap.Error(err), zap.String("achievementID", achievementID))
	for _, entry := range domain.DefaultAchievementCatalog() {
		if entry.ID == achievementID {
			return &entry, nil
		}
	}
	return nil, nil
}

func (s *failoverAchievementStore) ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, domain.Source, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	awards, err := s.remote.ListUserAchievements(rctx, userID)
	if err == nil {
		return awards, domain.SourceLive, nil
	}

	logger.Get().Warn("Remote user-achievements read failed, using fallback store",
		zap.Error(err), zap.String("userID", userID))
	return s.readFallbackAwards(userID), domain.SourceFallback, nil
}

func (s *failoverAchievementStore) readFallbackAwards(userID string) []domain.UserAchievement {
	raw, ok := s.fallback.Get(s.userKey(userID))
	if !ok {
		return nil
	}
	var awards []domain.UserAchievement
	if err := json.Unmarshal([]byte(raw), &awards); err != nil {
		logger.Get().Warn("Failed to decode fallback achievements", zap.Error(err), zap.String("userID", userID))
		return nil
	}
	return awards
}

func (s *failoverAchievementStore) InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, domain.Source, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	inserted, err := s.remote.InsertUserAchievement(rctx, award)
	if err == nil {
		return inserted, domain.SourceLive, nil
	}

	logger.Get().Warn("Remote achievement award failed, recording in fallback store",
		zap.Error(err),
		zap.String("userID", award.UserID),
		zap.String("achievementID", award.AchievementID))

	awards := s.readFallbackAwards(award.UserID)
	for _, existing := range awards {
		if existing.AchievementID == award.AchievementID {
			return false, domain.SourceFallback, nil
		}
	}
	awards = append(awards, *award)
	data, merr := json.Marshal(awards)
	if merr != nil {
		logger.Get().Warn("Failed to encode fallback achievements", zap.Error(merr))
		return false, domain.SourceFallback, nil
	}
	s.fallback.Set(s.userKey(award.UserID), string(data))
	return true, domain.SourceFallback, nil
}
