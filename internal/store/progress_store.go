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

// ProgressStore is the failover-aware port for progress records. Reads
// report where the data came from; degraded reads never surface remote
// errors, they return the local copy or an explicit empty result.
type ProgressStore interface {
	UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error
	GetProgress(ctx context.Context, userID, courseID, moduleID string) (*domain.ProgressRecord, error)
	GetCourseProgress(ctx context.Context, userID, courseID string) ([]domain.ProgressRecord, domain.Source, error)
	GetAllProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, domain.Source, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
	DeleteProgress(ctx context.Context, userID, courseID, moduleID string) error
}

type failoverProgressStore struct {
	remote   repository.ProgressRepository
	fallback Fallback
	timeout  time.Duration
}

// NewProgressStore wraps the remote repository with the local fallback.
func NewProgressStore(remote repository.ProgressRepository, fallback Fallback, timeout time.Duration) ProgressStore {
	return &failoverProgressStore{remote: remote, fallback: fallback, timeout: timeout}
}

func (s *failoverProgressStore) courseKey(userID, courseID string) string {
	return FallbackKey(CollectionProgress, userID, courseID)
}

// UpsertProgress writes to the remote store; on failure the record lands in
// the per-(user, course) fallback list instead. Fallback writes cannot fail
// loudly: progress capture must not block the user.
func (s *failoverProgressStore) UpsertProgress(ctx context.Context, record *domain.ProgressRecord) error {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.remote.UpsertProgress(rctx, record); err != nil {
		logger.Get().Warn("Remote progress upsert failed, writing to fallback store",
			zap.Error(err),
			zap.String("userID", record.UserID),
			zap.String("moduleID", record.ModuleID))
		s.upsertFallback(record)
	}
	return nil
}

func (s *failoverProgressStore) upsertFallback(record *domain.ProgressRecord) {
	key := s.courseKey(record.UserID, record.CourseID)
	records := s.readFallbackList(key)

	found := false
	for i := range records {
		if records[i].ModuleID == record.ModuleID {
			records[i].Progress = record.Progress
			records[i].UpdatedAt = time.Now()
			found = true
			break
		}
	}
	if !found {
		rec := *record
		rec.UpdatedAt = time.Now()
		records = append(records, rec)
	}

	data, err := json.Marshal(records)
	if err != nil {
		logger.Get().Warn("Failed to encode fallback progress", zap.Error(err))
		return
	}
	s.fallback.Set(key, string(data))
}

func (s *failoverProgressStore) readFallbackList(key string) []domain.ProgressRecord {
	raw, ok := s.fallback.Get(key)
	if !ok {
		return nil
	}
	var records []domain.ProgressRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Get().Warn("Failed to decode fallback progress", zap.Error(err), zap.String("key", key))
		return nil
	}
	return records
}

func (s *failoverProgressStore) GetProgress(ctx context.Context, userID, courseID, moduleID string) (*domain.ProgressRecord, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.remote.GetProgress(rctx, userID, courseID, moduleID)
	if err == nil {
		return record, nil
	}

	logger.Get().Warn("Remote progress read failed, using fallback store", zap.Error(err))
	for _, rec := range s.readFallbackList(s.courseKey(userID, courseID)) {
		if rec.ModuleID == moduleID {
			return &rec, nil
		}
	}
	return nil, nil
}

func (s *failoverProgressStore) GetCourseProgress(ctx context.Context, userID, courseID string) ([]domain.ProgressRecord, domain.Source, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.remote.GetCourseProgress(rctx, userID, courseID)
	if err == nil {
		return records, domain.SourceLive, nil
	}

	logger.Get().Warn("Remote course progress read failed, using fallback store",
		zap.Error(err),
		zap.String("userID", userID),
		zap.String("courseID", courseID))
	return s.readFallbackList(s.courseKey(userID, courseID)), domain.SourceFallback, nil
}

func (s *failoverProgressStore) GetAllProgress(ctx context.Context, userID string) ([]domain.ProgressRecord, domain.Source, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.remote.GetAllProgress(rctx, userID)
	if err == nil {
		return records, domain.SourceLive, nil
	}

	// The fallback store is keyed per course; without a course list there
	// is nothing to scan, so degraded mode reports an explicit empty set.
	logger.Get().Warn("Remote all-progress read failed", zap.Error(err), zap.String("userID", userID))
	return nil, domain.SourceFallback, nil
}

func (s *failoverProgressStore) CountCompleted(ctx context.Context, userID string) (int, error) {
	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	count, err := s.remote.CountCompleted(rctx, userID)
	if err != nil {
		logger.Get().Warn("Remote completed-count read failed", zap.Error(err), zap.String("userID", userID))
		return 0, nil
	}
	return count, nil
}

// DeleteProgress removes the remote record and always clears the fallback
// copy. A remote failure is surfaced so the caller can log the partial
// reset.
func (s *failoverProgressStore) DeleteProgress(ctx context.Context, userID, courseID, moduleID string) error {
	key := s.courseKey(userID, courseID)
	records := s.readFallbackList(key)
	kept := records[:0]
	for _, rec := range records {
		if rec.ModuleID != moduleID {
			kept = append(kept, rec)
		}
	}
	if len(kept) == 0 {
		s.fallback.Delete(key)
	} else if data, err := json.Marshal(kept); err == nil {
		s.fallback.Set(key, string(data))
	}

	rctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.remote.DeleteProgress(rctx, userID, courseID, moduleID)
}
