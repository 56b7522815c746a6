package handler

import (
	"strconv"
	"time"

	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/service"
	"gamelearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const defaultImprovedWindow = 7 * 24 * time.Hour

// ScoreHandler handles score and standing requests.
type ScoreHandler struct {
	scoreService service.ScoreService
	validator    *validation.Validator
}

// NewScoreHandler creates a new ScoreHandler instance.
func NewScoreHandler(scoreService service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService, validator: validation.NewValidator()}
}

// AddScore handles POST /api/scores
func (h *ScoreHandler) AddScore(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.AddScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateAddScore(req.Points, req.CurrentStreak); len(errs) > 0 {
		return errs
	}

	resp, err := h.scoreService.AddScore(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMyScore handles GET /api/scores/me
func (h *ScoreHandler) GetMyScore(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.scoreService.GetScore(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetMyRank handles GET /api/scores/me/rank
func (h *ScoreHandler) GetMyRank(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.scoreService.GetRank(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// MostImproved handles GET /api/leaderboard/improved
func (h *ScoreHandler) MostImproved(c *fiber.Ctx) error {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > 50 {
			return domain.ValidationErrors{domain.NewInvalidFormatError("limit", limitStr)}
		}
		limit = parsed
	}

	window := defaultImprovedWindow
	if c.Query("window") == "month" {
		window = 30 * 24 * time.Hour
	}

	result, err := h.scoreService.MostImproved(c.Context(), window, limit)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
