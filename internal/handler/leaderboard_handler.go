package handler

import (
	"gamelearn/internal/domain"
	"gamelearn/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardHandler handles ranked board requests.
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance.
func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard handles GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	filter := domain.TimeFilter(c.Query("filter", string(domain.FilterAll)))
	sortBy := domain.SortBy(c.Query("sort", string(domain.SortByScore)))

	board, err := h.leaderboardService.Build(c.Context(), filter, sortBy)
	if err != nil {
		return err
	}
	return c.JSON(board)
}

// GetFriendsLeaderboard handles GET /api/leaderboard/friends
func (h *LeaderboardHandler) GetFriendsLeaderboard(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	board, err := h.leaderboardService.FriendsLeaderboard(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(board)
}
