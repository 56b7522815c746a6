package service

import (
	"context"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/logger"
	"gamelearn/internal/store"
	"gamelearn/internal/util"

	"go.uber.org/zap"
)

// ProgressService tracks module progress and derives per-course summaries.
type ProgressService interface {
	StartModule(ctx context.Context, userID string, req *dto.StartModuleRequest) error
	CompleteModule(ctx context.Context, userID string, req *dto.CompleteModuleRequest) (*dto.CourseProgressResponse, error)
	GetCourseProgress(ctx context.Context, userID, courseID string) (*dto.CourseProgressResponse, error)
	ResetModule(ctx context.Context, userID, courseID, moduleID string) error
}

type progressService struct {
	progress store.ProgressStore
	scores   store.ScoreStore
	courses  CourseService
	scoreSvc ScoreService
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(progress store.ProgressStore, scores store.ScoreStore, courses CourseService, scoreSvc ScoreService) ProgressService {
	return &progressService{progress: progress, scores: scores, courses: courses, scoreSvc: scoreSvc}
}

// StartModule records that the user opened the module. Re-starting an
// already started or completed module only refreshes the access time.
func (s *progressService) StartModule(ctx context.Context, userID string, req *dto.StartModuleRequest) error {
	course, err := s.courses.GetCourse(ctx, req.CourseID)
	if err != nil {
		return err
	}
	if !courseHasModule(course, req.ModuleID) {
		return domain.NewModuleNotFoundError(req.ModuleID)
	}

	now := time.Now()
	record := &domain.ProgressRecord{
		ID:       util.NewULID(),
		UserID:   userID,
		CourseID: req.CourseID,
		ModuleID: req.ModuleID,
		Progress: domain.ProgressPayload{
			Started:      true,
			LastAccessed: now,
		},
		UpdatedAt: now,
	}
	return s.progress.UpsertProgress(ctx, record)
}

// CompleteModule marks the module completed, credits the earned points,
// records the per-module score line, refreshes the stored completion rate
// and returns the updated course summary. Completing an already completed
// module is a no-op for scoring.
func (s *progressService) CompleteModule(ctx context.Context, userID string, req *dto.CompleteModuleRequest) (*dto.CourseProgressResponse, error) {
	course, err := s.courses.GetCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !courseHasModule(course, req.ModuleID) {
		return nil, domain.NewModuleNotFoundError(req.ModuleID)
	}

	existing, err := s.progress.GetProgress(ctx, userID, req.CourseID, req.ModuleID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read module progress", err)
	}
	alreadyCompleted := existing != nil && existing.Progress.Completed

	now := time.Now()
	record := &domain.ProgressRecord{
		ID:       util.NewULID(),
		UserID:   userID,
		CourseID: req.CourseID,
		ModuleID: req.ModuleID,
		Progress: domain.ProgressPayload{
			Started:      true,
			Completed:    true,
			LastAccessed: now,
			CompletedAt:  &now,
		},
		UpdatedAt: now,
	}
	if err := s.progress.UpsertProgress(ctx, record); err != nil {
		return nil, domain.NewInternalError("Failed to save module progress", err)
	}

	if !alreadyCompleted && req.Points > 0 {
		if err := s.scores.RecordModuleScore(ctx, userID, req.CourseID, req.ModuleID, req.Points); err != nil {
			logger.Get().Warn("Failed to record module score", zap.Error(err), zap.String("moduleID", req.ModuleID))
		}
		if _, err := s.scoreSvc.AddScore(ctx, userID, &dto.AddScoreRequest{
			Points:        req.Points,
			CurrentStreak: req.CurrentStreak,
			DisplayName:   req.DisplayName,
		}); err != nil {
			logger.Get().Warn("Failed to credit module points", zap.Error(err), zap.String("userID", userID))
		}
	}

	summary, err := s.buildSummary(ctx, userID, course)
	if err != nil {
		return nil, err
	}
	s.refreshCompletionRate(ctx, userID, summary)
	return summary, nil
}

func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID string) (*dto.CourseProgressResponse, error) {
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.buildSummary(ctx, userID, course)
}

// ResetModule clears the module's progress and its score lines. Both
// deletes are best-effort: a failed leg is logged and the reset still
// reports success, matching the module's tolerance for partial state.
func (s *progressService) ResetModule(ctx context.Context, userID, courseID, moduleID string) error {
	if err := s.progress.DeleteProgress(ctx, userID, courseID, moduleID); err != nil {
		logger.Get().Warn("Module progress reset incomplete",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("moduleID", moduleID))
	}
	if err := s.scores.DeleteModuleScores(ctx, userID, courseID, moduleID); err != nil {
		logger.Get().Warn("Module score reset incomplete",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("moduleID", moduleID))
	}
	return nil
}

func (s *progressService) buildSummary(ctx context.Context, userID string, course *domain.Course) (*dto.CourseProgressResponse, error) {
	records, source, err := s.progress.GetCourseProgress(ctx, userID, course.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read course progress", err)
	}

	modules := make([]dto.ModuleProgressResponse, 0, len(records))
	for _, rec := range records {
		modules = append(modules, dto.ModuleProgressResponse{
			ModuleID:     rec.ModuleID,
			Started:      rec.Progress.Started,
			Completed:    rec.Progress.Completed,
			LastAccessed: rec.Progress.LastAccessed,
			CompletedAt:  rec.Progress.CompletedAt,
		})
	}

	return &dto.CourseProgressResponse{
		CourseID:             course.ID,
		Source:               source,
		CompletionPercentage: course.CompletionPercentage(records),
		Modules:              modules,
		NextRecommended:      course.NextRecommendedModule(records),
	}, nil
}

// refreshCompletionRate pushes the freshly computed percentage onto the
// user's score record, best-effort.
func (s *progressService) refreshCompletionRate(ctx context.Context, userID string, summary *dto.CourseProgressResponse) {
	if err := s.scores.UpdateCompletionRate(ctx, userID, summary.CompletionPercentage); err != nil {
		logger.Get().Warn("Failed to refresh completion rate", zap.Error(err), zap.String("userID", userID))
	}
}

func courseHasModule(course *domain.Course, moduleID string) bool {
	for _, level := range course.Levels {
		if level.FindModule(moduleID) != nil {
			return true
		}
	}
	return false
}
