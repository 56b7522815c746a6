package middleware

import (
	"gamelearn/internal/domain"
	"gamelearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateModuleRef validates course and module identifiers from the path.
func (vm *ValidationMiddleware) ValidateModuleRef() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Params("courseID")
		moduleID := c.Params("moduleID")

		if errors := vm.validator.ValidateModuleRef(courseID, moduleID); len(errors) > 0 {
			return errors // Handled by the ErrorHandler middleware
		}

		c.Locals("validated_course_id", courseID)
		c.Locals("validated_module_id", moduleID)
		return c.Next()
	}
}

// ValidateCourseID validates the course identifier from the path.
func (vm *ValidationMiddleware) ValidateCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Params("courseID")

		if courseID == "" {
			return domain.ValidationErrors{domain.NewMissingFieldError("course_id")}
		}

		c.Locals("validated_course_id", courseID)
		return c.Next()
	}
}
