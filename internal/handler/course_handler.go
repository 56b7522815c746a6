package handler

import (
	"gamelearn/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler serves the course catalog.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new CourseHandler instance.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses handles GET /api/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	summaries, err := h.courseService.ListCourses(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(summaries)
}

// GetCourse handles GET /api/courses/:courseID
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	course, err := h.courseService.GetCourse(c.Context(), c.Params("courseID"))
	if err != nil {
		return err
	}
	return c.JSON(course)
}

// GetLevel handles GET /api/courses/:courseID/levels/:levelID
func (h *CourseHandler) GetLevel(c *fiber.Ctx) error {
	level, err := h.courseService.GetLevel(c.Context(), c.Params("courseID"), c.Params("levelID"))
	if err != nil {
		return err
	}
	return c.JSON(level)
}

// GetModule handles GET /api/courses/:courseID/modules/:moduleID
func (h *CourseHandler) GetModule(c *fiber.Ctx) error {
	module, err := h.courseService.GetModule(c.Context(), c.Params("courseID"), c.Params("moduleID"))
	if err != nil {
		return err
	}
	return c.JSON(module)
}

// GetModuleQuiz handles GET /api/courses/:courseID/modules/:moduleID/quiz
func (h *CourseHandler) GetModuleQuiz(c *fiber.Ctx) error {
	quiz, err := h.courseService.GetModuleQuiz(c.Context(), c.Params("courseID"), c.Params("moduleID"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}
