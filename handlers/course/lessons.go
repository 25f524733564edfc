package course

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/utils/middleware"
	"github.com/learnfx/academy-api/utils/response"
)

// GetLesson handles GET /api/v1/courses/:course_slug/lessons/:lesson_slug
//
// Visibility is decided by AccessService.CanAccessLesson and nowhere else.
func (h *CourseHandler) GetLesson(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseSlug := c.Params("course_slug")
	lessonSlug := c.Params("lesson_slug")

	lesson, crs, err := h.catalog.GetLesson(c.Context(), courseSlug, lessonSlug)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) || errors.Is(err, services.ErrLessonNotFound) {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to fetch lesson")
	}

	decision, err := h.access.CanAccessLesson(c.Context(), user, crs, lesson, time.Now())
	if err != nil {
		return response.InternalServerError(c, "Failed to check lesson access")
	}
	if !decision.Allowed {
		switch decision.Reason {
		case services.DeniedSubscriptionRequired:
			return response.Forbidden(c, "Premium subscription required for this lesson")
		default:
			return response.Forbidden(c, "You must be enrolled in this course to view this lesson")
		}
	}

	return response.Success(c, lesson)
}
