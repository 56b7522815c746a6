package service

import (
	"context"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/logger"
	"gamelearn/internal/repository"
	"gamelearn/internal/store"
	"gamelearn/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AchievementService evaluates eligibility and awards achievements.
type AchievementService interface {
	// ListEligible returns catalog entries the user qualifies for but has
	// not earned yet.
	ListEligible(ctx context.Context, userID string) ([]domain.Achievement, error)
	// Award grants the achievement if the user qualifies. Granting is
	// idempotent; bonus points apply exactly once.
	Award(ctx context.Context, userID, achievementID string) (*dto.AwardAchievementResponse, error)
	// AwardEligible evaluates the whole catalog and awards everything the
	// user newly qualifies for.
	AwardEligible(ctx context.Context, userID string) ([]domain.UserAchievement, error)
	ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, domain.Source, error)
	ProgressSummary(ctx context.Context, userID string) ([]dto.AchievementProgressResponse, error)
	GetUserStatistics(ctx context.Context, userID string) (*domain.UserStatistics, error)
}

type achievementService struct {
	achievements store.AchievementStore
	scores       store.ScoreStore
	progress     store.ProgressStore
	statsRepo    repository.StatisticsRepository
	friendRepo   repository.FriendRepository
	scoreSvc     ScoreService
	eventBus     domain.EventBus
}

// NewAchievementService creates a new instance of achievementService.
func NewAchievementService(
	achievements store.AchievementStore,
	scores store.ScoreStore,
	progress store.ProgressStore,
	statsRepo repository.StatisticsRepository,
	friendRepo repository.FriendRepository,
	scoreSvc ScoreService,
	eventBus domain.EventBus,
) AchievementService {
	return &achievementService{
		achievements: achievements,
		scores:       scores,
		progress:     progress,
		statsRepo:    statsRepo,
		friendRepo:   friendRepo,
		scoreSvc:     scoreSvc,
		eventBus:     eventBus,
	}
}

func (s *achievementService) ListEligible(ctx context.Context, userID string) ([]domain.Achievement, error) {
	catalog, _, err := s.achievements.ListCatalog(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read achievement catalog", err)
	}

	earned, _, err := s.achievements.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read user achievements", err)
	}
	earnedSet := earnedIDs(earned)

	stats, err := s.GetUserStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.fillFriendCountIfNeeded(ctx, catalog, stats)

	eligible := make([]domain.Achievement, 0)
	for _, achievement := range catalog {
		if earnedSet[achievement.ID] {
			continue
		}
		if achievement.Qualifies(*stats) {
			eligible = append(eligible, achievement)
		}
	}
	return eligible, nil
}

func (s *achievementService) Award(ctx context.Context, userID, achievementID string) (*dto.AwardAchievementResponse, error) {
	achievement, err := s.achievements.GetAchievement(ctx, achievementID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read achievement", err)
	}
	if achievement == nil {
		return nil, domain.NewAchievementNotFoundError(achievementID)
	}

	stats, err := s.GetUserStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	if achievement.Requirements.NeedsFriendCount() && !stats.FriendCountKnown {
		s.loadFriendCount(ctx, stats)
	}
	if !achievement.Qualifies(*stats) {
		return &dto.AwardAchievementResponse{Awarded: false}, nil
	}

	return s.grant(ctx, userID, achievement)
}

func (s *achievementService) AwardEligible(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	eligible, err := s.ListEligible(ctx, userID)
	if err != nil {
		return nil, err
	}

	awarded := make([]domain.UserAchievement, 0, len(eligible))
	for i := range eligible {
		resp, err := s.grant(ctx, userID, &eligible[i])
		if err != nil {
			logger.Get().Warn("Failed to award eligible achievement",
				zap.Error(err),
				zap.String("userID", userID),
				zap.String("achievementID", eligible[i].ID))
			continue
		}
		if resp.Awarded && resp.Achievement != nil {
			awarded = append(awarded, *resp.Achievement)
		}
	}
	return awarded, nil
}

// grant inserts the award and, only when the insert actually created a
// row, credits the bonus points and announces the unlock.
func (s *achievementService) grant(ctx context.Context, userID string, achievement *domain.Achievement) (*dto.AwardAchievementResponse, error) {
	award := &domain.UserAchievement{
		ID:            util.NewULID(),
		UserID:        userID,
		AchievementID: achievement.ID,
		Name:          achievement.Name,
		Description:   achievement.Description,
		Icon:          achievement.Icon,
		Points:        achievement.Points,
		EarnedAt:      time.Now(),
	}

	inserted, _, err := s.achievements.InsertUserAchievement(ctx, award)
	if err != nil {
		return nil, domain.NewInternalError("Failed to record achievement", err)
	}
	if !inserted {
		return &dto.AwardAchievementResponse{Awarded: false}, nil
	}

	if achievement.Points > 0 {
		if _, err := s.scoreSvc.AddScore(ctx, userID, &dto.AddScoreRequest{Points: achievement.Points}); err != nil {
			logger.Get().Warn("Failed to credit achievement bonus",
				zap.Error(err),
				zap.String("userID", userID),
				zap.String("achievementID", achievement.ID))
		}
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, domain.EventAchievementUnlocked, award); err != nil {
			logger.Get().Warn("Failed to publish achievement unlock",
				zap.Error(err),
				zap.String("achievementID", achievement.ID))
		}
	}

	return &dto.AwardAchievementResponse{
		Awarded:     true,
		Achievement: award,
		BonusPoints: achievement.Points,
	}, nil
}

func (s *achievementService) ListUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, domain.Source, error) {
	return s.achievements.ListUserAchievements(ctx, userID)
}

func (s *achievementService) ProgressSummary(ctx context.Context, userID string) ([]dto.AchievementProgressResponse, error) {
	catalog, _, err := s.achievements.ListCatalog(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read achievement catalog", err)
	}

	earned, _, err := s.achievements.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to read user achievements", err)
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, award := range earned {
		earnedAt[award.AchievementID] = award.EarnedAt
	}

	stats, err := s.GetUserStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.fillFriendCountIfNeeded(ctx, catalog, stats)

	summary := make([]dto.AchievementProgressResponse, 0, len(catalog))
	for _, achievement := range catalog {
		entry := dto.AchievementProgressResponse{Achievement: achievement}
		if at, ok := earnedAt[achievement.ID]; ok {
			entry.Earned = true
			entry.EarnedAt = &at
			entry.Progress = 100
		} else {
			entry.Progress = achievement.ProgressToward(*stats)
		}
		summary = append(summary, entry)
	}
	return summary, nil
}

// GetUserStatistics assembles the evaluation snapshot. The statistics
// projection, score record and completed-lesson count are fetched
// concurrently; each leg degrades independently so a partial snapshot is
// still usable. The friend count is not part of the snapshot, it is
// loaded lazily only when a definition needs it.
func (s *achievementService) GetUserStatistics(ctx context.Context, userID string) (*domain.UserStatistics, error) {
	stats := &domain.UserStatistics{UserID: userID}

	var (
		projection *domain.UserStatistics
		score      *domain.ScoreRecord
		completed  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projection, err = s.statsRepo.GetUserStatistics(gctx, userID)
		if err != nil {
			logger.Get().Warn("User statistics projection unavailable", zap.Error(err), zap.String("userID", userID))
		}
		return nil
	})
	g.Go(func() error {
		score, _, _ = s.scores.GetScore(gctx, userID)
		return nil
	})
	g.Go(func() error {
		completed, _ = s.progress.CountCompleted(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("Failed to assemble user statistics", err)
	}

	if projection != nil {
		*stats = *projection
		stats.UserID = userID
	}
	if score != nil {
		if score.Score > stats.Score {
			stats.Score = score.Score
		}
		if score.MaxStreak > stats.CurrentStreak && projection == nil {
			stats.CurrentStreak = score.MaxStreak
		}
	}
	if completed > stats.LessonsCompleted {
		stats.LessonsCompleted = completed
	}
	return stats, nil
}

// fillFriendCountIfNeeded loads the friend count only when some catalog
// entry actually checks it.
func (s *achievementService) fillFriendCountIfNeeded(ctx context.Context, catalog []domain.Achievement, stats *domain.UserStatistics) {
	if stats.FriendCountKnown {
		return
	}
	for _, achievement := range catalog {
		if achievement.Requirements.NeedsFriendCount() {
			s.loadFriendCount(ctx, stats)
			return
		}
	}
}

func (s *achievementService) loadFriendCount(ctx context.Context, stats *domain.UserStatistics) {
	count, err := s.friendRepo.CountFriends(ctx, stats.UserID)
	if err != nil {
		logger.Get().Warn("Friend count unavailable", zap.Error(err), zap.String("userID", stats.UserID))
		return
	}
	stats.FriendCount = count
	stats.FriendCountKnown = true
}

func earnedIDs(awards []domain.UserAchievement) map[string]bool {
	set := make(map[string]bool, len(awards))
	for _, award := range awards {
		set[award.AchievementID] = true
	}
	return set
}
