package store

import (
	"context"
	"encoding/json"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/logger"
	"gamelearn/internal/repository"
	"gamelearn/internal/util"

	"go.uber.org/zap"
)

// ScoreStore is the failover-aware port for score records. Per-user reads
// and writes degrade to the local fallback copy; ranking queries have no
// local equivalent and surface their error so callers can substitute the
// fixed fallback datasets.
type ScoreStore interface {
	AddScore(ctx context.Context, userID, displayName string, delta, currentStreak int) (*domain.ScoreRecord, domain.Source, error)
	GetScore(ctx context.Context, userID string) (*domain.ScoreRecord, domain.Source, error)
	ListScores(ctx context.Context) ([]domain.ScoreRecord, error)
	ListForLeaderboard(ctx context.Context, since *time.Time, sortBy domain.SortBy, limit int) ([]domain.ScoreRecord, error)
	ListScoresByUserIDs(ctx context.Context, userIDs []string) ([]domain.ScoreRecord, error)
	UpdateCompletionRate(ctx context.Context, userID string, rate int) error
	AppendHistory(ctx context.Context, userID string, score int) error
	GetHistorySince(ctx context.Context, since time.Time) ([]domain.ScoreHistoryEntry, error)
	RecordModuleScore(ctx context.Context, userID, courseID, moduleID string, points int) error
	DeleteModuleScores(ctx context.Context, userID, courseID, moduleID string) error
}

type failoverScoreStore struct {
	remote      repository.ScoreRepository
	fallback    Fallback
	timeout     time.Duration
	rankTimeout time.Duration
	histTimeout time.Duration
}

// NewScoreStore wraps the remote repository with the local fallback.
// Ranking queries and history window scans get their own deadlines.
func NewScoreStore(remote repository.ScoreRepository, fallback Fallback, timeout, rankTimeout, histTimeout time.Duration) ScoreStore {
	return &failoverScoreStore{remote: remote, fallback: fallback, timeout: timeout, rankTimeout: rankTimeout, histTimeout: histTimeout}
}

func (s *failoverScoreStore) userKey(userID string) string {
	return FallbackKey(CollectionLeaderboard, userID)
}

// AddScore applies the delta remotely; on failure it accumulates into the
// local fallback record so the user's session keeps a consistent running
// total until the remote store recovers.
func (s *failoverScoreStore) AddScore(ctx context.Context, userID, displayName string, delta, currentStreak int) (*domain.ScoreRecord, domain.Source, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.remote.AddScore(rctx, userID, displayName, delta, currentStreak)
	if err == nil {
		return record, domain.SourceLive, nil
	}

	logger.Get().Warn("Remote score upsert failed, accumulating in fallback store",
		zap.Error(err),
		zap.String("userID", userID),
		zap.Int("delta", delta))

	local := s.readFallbackRecord(userID)
	now := time.Now()
	if local == nil {
		local = &domain.ScoreRecord{
			ID:          util.NewULID(),
			UserID:      userID,
			DisplayName: displayName,
			CreatedAt:   now,
		}
	}
	local.Score += delta
	if currentStreak > local.MaxStreak {
		local.MaxStreak = currentStreak
	}
	if displayName != "" {
		local.DisplayName = displayName
	}
	local.UpdatedAt = now
	s.writeFallbackRecord(local)

	return local, domain.SourceFallback, nil
}

func (s *failoverScoreStore) GetScore(ctx context.Context, userID string) (*domain.ScoreRecord, domain.Source, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.remote.GetScore(rctx, userID)
	if err == nil {
		return record, domain.SourceLive, nil
	}

	logger.Get().Warn("Remote score read failed, using fallback store",
		zap.Error(err), zap.String("userID", userID))
	return s.readFallbackRecord(userID), domain.SourceFallback, nil
}

func (s *failoverScoreStore) readFallbackRecord(userID string) *domain.ScoreRecord {
	raw, ok := s.fallback.Get(s.userKey(userID))
	if !ok {
		return nil
	}
	var record domain.ScoreRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		logger.Get().Warn("Failed to decode fallback score record", zap.Error(err), zap.String("userID", userID))
		return nil
	}
	return &record
}

func (s *failoverScoreStore) writeFallbackRecord(record *domain.ScoreRecord) {
	data, err := json.Marshal(record)
	if err != nil {
		logger.Get().Warn("Failed to encode fallback score record", zap.Error(err))
		return
	}
	s.fallback.Set(s.userKey(record.UserID), string(data))
}

func (s *failoverScoreStore) ListScores(ctx context.Context) ([]domain.ScoreRecord, error) {
	rctx, cancel := withTimeout(ctx, s.rankTimeout)
	defer cancel()
	return s.remote.ListScores(rctx)
}

func (s *failoverScoreStore) ListForLeaderboard(ctx context.Context, since *time.Time, sortBy domain.SortBy, limit int) ([]domain.ScoreRecord, error) {
	rctx, cancel := withTimeout(ctx, s.rankTimeout)
	defer cancel()
	return s.remote.ListForLeaderboard(rctx, since, sortBy, limit)
}

func (s *failoverScoreStore) ListScoresByUserIDs(ctx context.Context, userIDs []string) ([]domain.ScoreRecord, error) {
	rctx, cancel := withTimeout(ctx, s.rankTimeout)
	defer cancel()
	return s.remote.ListScoresByUserIDs(rctx, userIDs)
}

func (s *failoverScoreStore) UpdateCompletionRate(ctx context.Context, userID string, rate int) error {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.remote.UpdateCompletionRate(rctx, userID, rate); err != nil {
		logger.Get().Warn("Remote completion-rate update failed",
			zap.Error(err), zap.String("userID", userID), zap.Int("rate", rate))
		if local := s.readFallbackRecord(userID); local != nil {
			local.CompletionRate = rate
			local.UpdatedAt = time.Now()
			s.writeFallbackRecord(local)
		}
	}
	return nil
}

// AppendHistory is best-effort: history feeds the improvement rankings,
// losing a sample under outage only widens a window that is approximate
// anyway.
func (s *failoverScoreStore) AppendHistory(ctx context.Context, userID string, score int) error {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.remote.AppendHistory(rctx, userID, score); err != nil {
		logger.Get().Warn("Remote score-history append failed",
			zap.Error(err), zap.String("userID", userID))
	}
	return nil
}

func (s *failoverScoreStore) GetHistorySince(ctx context.Context, since time.Time) ([]domain.ScoreHistoryEntry, error) {
	rctx, cancel := withTimeout(ctx, s.histTimeout)
	defer cancel()
	return s.remote.GetHistorySince(rctx, since)
}

func (s *failoverScoreStore) RecordModuleScore(ctx context.Context, userID, courseID, moduleID string, points int) error {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.remote.RecordModuleScore(rctx, userID, courseID, moduleID, points); err != nil {
		logger.Get().Warn("Remote module-score insert failed",
			zap.Error(err), zap.String("userID", userID), zap.String("moduleID", moduleID))
	}
	return nil
}

// DeleteModuleScores surfaces the remote error so reset callers can log
// the partial cleanup.
func (s *failoverScoreStore) DeleteModuleScores(ctx context.Context, userID, courseID, moduleID string) error {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.remote.DeleteModuleScores(rctx, userID, courseID, moduleID)
}
