package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gamelearn/internal/cache"
	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/logger"

	"go.uber.org/zap"
)

// CourseService exposes the course catalog. The catalog itself is compiled
// in; reads go through the cache so hot course lookups skip the rebuild.
type CourseService interface {
	ListCourses(ctx context.Context) ([]dto.CourseSummaryResponse, error)
	GetCourse(ctx context.Context, courseID string) (*domain.Course, error)
	GetLevel(ctx context.Context, courseID, levelID string) (*domain.Level, error)
	GetModule(ctx context.Context, courseID, moduleID string) (*domain.Module, error)
	GetModuleQuiz(ctx context.Context, courseID, moduleID string) (*domain.ModuleQuiz, error)
}

type courseService struct {
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewCourseService creates a new instance of courseService.
func NewCourseService(cacheAdapter domain.Cache, cacheTTL time.Duration) CourseService {
	return &courseService{cache: cacheAdapter, cacheTTL: cacheTTL}
}

func (s *courseService) ListCourses(ctx context.Context) ([]dto.CourseSummaryResponse, error) {
	courses := CourseCatalog()
	summaries := make([]dto.CourseSummaryResponse, 0, len(courses))
	for i := range courses {
		course := &courses[i]
		summaries = append(summaries, dto.CourseSummaryResponse{
			ID:             course.ID,
			Name:           course.Name,
			Description:    course.Description,
			Icon:           course.Icon,
			Difficulty:     course.Difficulty,
			EstimatedHours: course.EstimatedHours,
			Tags:           course.Tags,
			TotalModules:   course.TotalModules(),
		})
	}
	return summaries, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	cacheKey := cache.GenerateCacheKey("course", "catalog", courseID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var course domain.Course
			if jsonErr := json.Unmarshal([]byte(cached), &course); jsonErr == nil {
				return &course, nil
			}
			logger.Get().Warn("Failed to decode cached course, rebuilding", zap.String("courseID", courseID))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Course cache read failed", zap.Error(err), zap.String("courseID", courseID))
		}
	}

	course := findCourse(courseID)
	if course == nil {
		return nil, domain.NewCourseNotFoundError(courseID)
	}

	if s.cache != nil {
		if data, err := json.Marshal(course); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
				logger.Get().Warn("Course cache write failed", zap.Error(err), zap.String("courseID", courseID))
			}
		}
	}
	return course, nil
}

func (s *courseService) GetLevel(ctx context.Context, courseID, levelID string) (*domain.Level, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if level := course.FindLevel(levelID); level != nil {
		return level, nil
	}
	return nil, domain.NewNotFoundError("Level not found: " + levelID)
}

func (s *courseService) GetModule(ctx context.Context, courseID, moduleID string) (*domain.Module, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for _, level := range course.Levels {
		if module := level.FindModule(moduleID); module != nil {
			return module, nil
		}
	}
	return nil, domain.NewModuleNotFoundError(moduleID)
}

func (s *courseService) GetModuleQuiz(ctx context.Context, courseID, moduleID string) (*domain.ModuleQuiz, error) {
	if _, err := s.GetModule(ctx, courseID, moduleID); err != nil {
		return nil, err
	}
	if quiz, ok := moduleQuizBank()[moduleID]; ok {
		return &quiz, nil
	}
	return nil, domain.NewNotFoundError("No quiz available for module " + moduleID)
}

func findCourse(courseID string) *domain.Course {
	courses := CourseCatalog()
	for i := range courses {
		if courses[i].ID == courseID {
			return &courses[i]
		}
	}
	return nil
}
