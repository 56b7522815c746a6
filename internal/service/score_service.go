package service

import (
	"context"
	"strconv"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/logger"
	"gamelearn/internal/store"

	"go.uber.org/zap"
)

// ScoreService applies score deltas and answers standing queries.
type ScoreService interface {
	AddScore(ctx context.Context, userID string, req *dto.AddScoreRequest) (*dto.ScoreResponse, error)
	GetScore(ctx context.Context, userID string) (*dto.ScoreResponse, error)
	GetRank(ctx context.Context, userID string) (*dto.RankResponse, error)
	MostImproved(ctx context.Context, window time.Duration, limit int) (*domain.MostImprovedResult, error)
}

type scoreService struct {
	scores   store.ScoreStore
	eventBus domain.EventBus
}

// NewScoreService creates a new instance of scoreService.
func NewScoreService(scores store.ScoreStore, eventBus domain.EventBus) ScoreService {
	return &scoreService{scores: scores, eventBus: eventBus}
}

// AddScore applies the delta, appends the new cumulative total to the
// score history, and announces the change on the realtime channel. History
// and announcement are best-effort.
func (s *scoreService) AddScore(ctx context.Context, userID string, req *dto.AddScoreRequest) (*dto.ScoreResponse, error) {
	if req.Points < 0 {
		return nil, domain.NewInvalidInputError("points must not be negative")
	}

	record, source, err := s.scores.AddScore(ctx, userID, req.DisplayName, req.Points, req.CurrentStreak)
	if err != nil {
		return nil, domain.NewInternalError("Failed to add score", err)
	}

	if source == domain.SourceLive {
		if err := s.scores.AppendHistory(ctx, userID, record.Score); err != nil {
			logger.Get().Warn("Failed to append score history", zap.Error(err), zap.String("userID", userID))
		}
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, domain.EventLeaderboardUpdate, map[string]interface{}{
			"user_id": userID,
			"score":   record.Score,
		}); err != nil {
			logger.Get().Warn("Failed to publish leaderboard update", zap.Error(err), zap.String("userID", userID))
		}
	}

	return toScoreResponse(record, source), nil
}

func (s *scoreService) GetScore(ctx context.Context, userID string) (*dto.ScoreResponse, error) {
	record, source, err := s.scores.GetScore(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get score", err)
	}
	if record == nil {
		return &dto.ScoreResponse{UserID: userID, Source: source}, nil
	}
	return toScoreResponse(record, source), nil
}

// GetRank ranks the user among all score records, ordered by score
// descending. When the full listing cannot be read the user's own record
// still renders, with an unknown rank.
func (s *scoreService) GetRank(ctx context.Context, userID string) (*dto.RankResponse, error) {
	records, err := s.scores.ListScores(ctx)
	if err != nil {
		logger.Get().Warn("Rank listing unavailable, degrading to own record",
			zap.Error(err), zap.String("userID", userID))
		record, _, gerr := s.scores.GetScore(ctx, userID)
		if gerr != nil {
			return nil, domain.NewInternalError("Failed to get rank", gerr)
		}
		resp := &dto.RankResponse{Rank: "-", Source: domain.SourceFallback}
		if record != nil {
			resp.Score = record.Score
			resp.MaxStreak = record.MaxStreak
			resp.CompletionRate = record.CompletionRate
		}
		return resp, nil
	}

	info := domain.RankInfo{UserID: userID, TotalPlayers: len(records), Source: domain.SourceLive}
	for i, record := range records {
		if record.UserID == userID {
			info.Rank = i + 1
			info.Score = record.Score
			info.MaxStreak = record.MaxStreak
			info.CompletionRate = record.CompletionRate
			break
		}
	}

	return &dto.RankResponse{
		Rank:           formatRank(info.Rank),
		TotalPlayers:   info.TotalPlayers,
		Score:          info.Score,
		MaxStreak:      info.MaxStreak,
		CompletionRate: info.CompletionRate,
		Source:         info.Source,
	}, nil
}

// MostImproved ranks players by score gained inside the trailing window.
// When the history cannot be read it returns the fixed fallback list.
func (s *scoreService) MostImproved(ctx context.Context, window time.Duration, limit int) (*domain.MostImprovedResult, error) {
	since := time.Now().Add(-window)
	history, err := s.scores.GetHistorySince(ctx, since)
	if err != nil {
		logger.Get().Warn("Score history unavailable, using fallback improved players", zap.Error(err))
		result := domain.FallbackImprovedPlayers(limit)
		return &result, nil
	}

	players := domain.ComputeImprovements(history)
	if len(players) == 0 {
		result := domain.FallbackImprovedPlayers(limit)
		return &result, nil
	}
	if limit > 0 && limit < len(players) {
		players = players[:limit]
	}

	s.enrichPlayers(ctx, players)
	return &domain.MostImprovedResult{Source: domain.SourceLive, Players: players}, nil
}

// enrichPlayers fills display names and current scores from the score
// records. A failed enrichment leaves the ranking itself intact.
func (s *scoreService) enrichPlayers(ctx context.Context, players []domain.ImprovedPlayer) {
	if len(players) == 0 {
		return
	}
	userIDs := make([]string, 0, len(players))
	for _, player := range players {
		userIDs = append(userIDs, player.UserID)
	}

	records, err := s.scores.ListScoresByUserIDs(ctx, userIDs)
	if err != nil {
		logger.Get().Warn("Failed to enrich improved players", zap.Error(err))
		return
	}

	byUser := make(map[string]*domain.ScoreRecord, len(records))
	for i := range records {
		byUser[records[i].UserID] = &records[i]
	}
	for i := range players {
		if record, ok := byUser[players[i].UserID]; ok {
			players[i].DisplayName = record.DisplayName
			players[i].Score = record.Score
		}
	}
}

func toScoreResponse(record *domain.ScoreRecord, source domain.Source) *dto.ScoreResponse {
	return &dto.ScoreResponse{
		UserID:         record.UserID,
		DisplayName:    record.DisplayName,
		Score:          record.Score,
		MaxStreak:      record.MaxStreak,
		CompletionRate: record.CompletionRate,
		Source:         source,
	}
}

func formatRank(rank int) string {
	if rank <= 0 {
		return "-"
	}
	return strconv.Itoa(rank)
}
