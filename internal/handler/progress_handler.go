package handler

import (
	"gamelearn/internal/domain"
	"gamelearn/internal/dto"
	"gamelearn/internal/middleware"
	"gamelearn/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler handles module progress requests.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler instance.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func requireUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("Authentication required")
	}
	return userID, nil
}

// StartModule handles POST /api/progress/start
func (h *ProgressHandler) StartModule(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.StartModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.progressService.StartModule(c.Context(), userID, &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CompleteModule handles POST /api/progress/complete
func (h *ProgressHandler) CompleteModule(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.CompleteModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	summary, err := h.progressService.CompleteModule(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// GetCourseProgress handles GET /api/progress/:courseID
func (h *ProgressHandler) GetCourseProgress(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.progressService.GetCourseProgress(c.Context(), userID, c.Params("courseID"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// ResetModule handles DELETE /api/progress/:courseID/modules/:moduleID
func (h *ProgressHandler) ResetModule(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.progressService.ResetModule(c.Context(), userID, c.Params("courseID"), c.Params("moduleID")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
