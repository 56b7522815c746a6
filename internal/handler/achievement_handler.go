package handler

import (
	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/service"
	"gamelearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AchievementHandler handles achievement catalog and award requests.
type AchievementHandler struct {
	achievementService service.AchievementService
	validator          *validation.Validator
}

// NewAchievementHandler creates a new AchievementHandler instance.
func NewAchievementHandler(achievementService service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService, validator: validation.NewValidator()}
}

// GetMyAchievements handles GET /api/achievements/me
func (h *AchievementHandler) GetMyAchievements(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	awards, source, err := h.achievementService.ListUserAchievements(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"source": source, "achievements": awards})
}

// GetProgressSummary handles GET /api/achievements/me/progress
func (h *AchievementHandler) GetProgressSummary(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.achievementService.ProgressSummary(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// Award handles POST /api/achievements/award
func (h *AchievementHandler) Award(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.AwardAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateAchievementID(req.AchievementID); len(errs) > 0 {
		return errs
	}

	resp, err := h.achievementService.Award(c.Context(), userID, req.AchievementID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AwardEligible handles POST /api/achievements/check
func (h *AchievementHandler) AwardEligible(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	awarded, err := h.achievementService.AwardEligible(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"awarded": awarded})
}

// GetUserStatistics handles GET /api/statistics/me
func (h *AchievementHandler) GetUserStatistics(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.achievementService.GetUserStatistics(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
