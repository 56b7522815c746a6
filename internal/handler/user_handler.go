package handler

import (
	"gamelearn/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMyProfile handles GET /api/users/me
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetMyProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
