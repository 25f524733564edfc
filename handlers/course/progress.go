package course

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/utils/middleware"
	"github.com/learnfx/academy-api/utils/response"
)

// UpdateProgress handles POST /api/v1/courses/:course_slug/lessons/:lesson_slug/progress
//
// The body is a partial patch; omitted fields are left untouched. Repeating
// the same update is harmless.
func (h *CourseHandler) UpdateProgress(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	courseSlug := c.Params("course_slug")
	lessonSlug := c.Params("lesson_slug")

	var patch services.ProgressPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(patch); err != nil {
		return response.ValidationError(c, err)
	}

	progress, err := h.progress.UpdateProgress(c.Context(), user, courseSlug, lessonSlug, patch, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLessonNotFound):
			return response.NotFound(c, "Lesson not found")
		case errors.Is(err, services.ErrNotEnrolled):
			return response.Forbidden(c, "You must be enrolled in this course to record progress")
		default:
			return response.InternalServerError(c, "Failed to update lesson progress")
		}
	}

	return response.Success(c, progress)
}
