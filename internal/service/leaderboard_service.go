package service

import (
	"context"
	"sort"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/logger"
	"gamelearn/internal/repository"
	"gamelearn/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const leaderboardSize = 10

// LeaderboardService builds ranked views over the score records.
type LeaderboardService interface {
	// Build returns the top entries for the filter and sort order. When
	// the store cannot be read it returns the fixed fallback list, tagged.
	Build(ctx context.Context, filter domain.TimeFilter, sortBy domain.SortBy) (*domain.Leaderboard, error)
	// FriendsLeaderboard ranks the user and their accepted friends. A user
	// with no friends gets an empty live board, not fallback data.
	FriendsLeaderboard(ctx context.Context, userID string) (*domain.Leaderboard, error)
}

type leaderboardService struct {
	scores           store.ScoreStore
	achievementStore store.AchievementStore
	friendRepo       repository.FriendRepository
}

// NewLeaderboardService creates a new instance of leaderboardService.
func NewLeaderboardService(scores store.ScoreStore, achievementStore store.AchievementStore, friendRepo repository.FriendRepository) LeaderboardService {
	return &leaderboardService{scores: scores, achievementStore: achievementStore, friendRepo: friendRepo}
}

func (s *leaderboardService) Build(ctx context.Context, filter domain.TimeFilter, sortBy domain.SortBy) (*domain.Leaderboard, error) {
	if !filter.Valid() {
		return nil, domain.NewInvalidInputError("invalid time filter: " + string(filter))
	}
	if !sortBy.Valid() {
		return nil, domain.NewInvalidInputError("invalid sort field: " + string(sortBy))
	}

	records, err := s.scores.ListForLeaderboard(ctx, filterSince(filter), sortBy, leaderboardSize)
	if err != nil {
		logger.Get().Warn("Leaderboard read failed, serving fallback data", zap.Error(err))
		board := domain.FallbackLeaderboard()
		return &board, nil
	}

	entries := s.toEntries(ctx, records)
	return &domain.Leaderboard{Source: domain.SourceLive, Entries: entries}, nil
}

func (s *leaderboardService) FriendsLeaderboard(ctx context.Context, userID string) (*domain.Leaderboard, error) {
	friendIDs, err := s.friendRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		logger.Get().Warn("Friend listing failed, serving empty friends board",
			zap.Error(err), zap.String("userID", userID))
		return &domain.Leaderboard{Source: domain.SourceLive, Entries: []domain.LeaderboardEntry{}}, nil
	}
	if len(friendIDs) == 0 {
		return &domain.Leaderboard{Source: domain.SourceLive, Entries: []domain.LeaderboardEntry{}}, nil
	}

	records, err := s.scores.ListScoresByUserIDs(ctx, append(friendIDs, userID))
	if err != nil {
		logger.Get().Warn("Friends leaderboard read failed, serving empty board",
			zap.Error(err), zap.String("userID", userID))
		return &domain.Leaderboard{Source: domain.SourceLive, Entries: []domain.LeaderboardEntry{}}, nil
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Score > records[j].Score })
	entries := s.toEntries(ctx, records)
	return &domain.Leaderboard{Source: domain.SourceLive, Entries: entries}, nil
}

// toEntries projects score records into ranked entries and decorates them
// with badge names, fetched concurrently. A failed badge fetch leaves the
// entry without badges rather than failing the whole board.
func (s *leaderboardService) toEntries(ctx context.Context, records []domain.ScoreRecord) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, len(records))

	g, gctx := errgroup.WithContext(ctx)
	for i := range records {
		i := i
		entries[i] = domain.LeaderboardEntry{
			UserID:         records[i].UserID,
			DisplayName:    records[i].DisplayName,
			Score:          records[i].Score,
			MaxStreak:      records[i].MaxStreak,
			CompletionRate: records[i].CompletionRate,
			Rank:           i + 1,
		}

		g.Go(func() error {
			awards, _, err := s.achievementStore.ListUserAchievements(gctx, entries[i].UserID)
			if err != nil {
				logger.Get().Warn("Badge fetch failed", zap.Error(err), zap.String("userID", entries[i].UserID))
				return nil
			}
			badges := make([]string, 0, len(awards))
			for _, award := range awards {
				badges = append(badges, award.Name)
			}
			entries[i].Badges = badges
			return nil
		})
	}
	_ = g.Wait()

	return entries
}

func filterSince(filter domain.TimeFilter) *time.Time {
	var window time.Duration
	switch filter {
	case domain.FilterWeek:
		window = 7 * 24 * time.Hour
	case domain.FilterMonth:
		window = 30 * 24 * time.Hour
	default:
		return nil
	}
	since := time.Now().Add(-window)
	return &since
}
