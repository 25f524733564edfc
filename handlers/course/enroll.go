package course

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/utils/middleware"
	"github.com/learnfx/academy-api/utils/response"
	"github.com/learnfx/academy-api/utils/validation"
)

// CourseHandler handles enrollment, lesson access and progress requests
type CourseHandler struct {
	enrollments *services.EnrollmentService
	access      *services.AccessService
	progress    *services.ProgressService
	catalog     *services.CatalogService
	validator   *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(enrollments *services.EnrollmentService, access *services.AccessService, progress *services.ProgressService, catalog *services.CatalogService) *CourseHandler {
	return &CourseHandler{
		enrollments: enrollments,
		access:      access,
		progress:    progress,
		catalog:     catalog,
		validator:   validation.NewValidator(),
	}
}

// Enroll handles POST /api/v1/courses/:course_slug/enroll
//
// Enrolling twice is not an error: the second call returns the existing
// enrollment with a 200 instead of a 201.
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	slug := c.Params("course_slug")

	enrollment, created, err := h.enrollments.Enroll(c.Context(), user, slug, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, services.ErrSubscriptionRequired):
			return response.Forbidden(c, "Premium subscription required for this course")
		default:
			return response.InternalServerError(c, "Failed to enroll in course")
		}
	}

	if created {
		return response.CreatedWithMessage(c, "Successfully enrolled in course", enrollment)
	}
	return response.SuccessWithMessage(c, "Already enrolled in this course", enrollment)
}

// ListEnrollments handles GET /api/v1/enrollments
func (h *CourseHandler) ListEnrollments(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	enrollments, err := h.enrollments.ListUserEnrollments(c.Context(), user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch enrollments")
	}
	return response.Success(c, enrollments)
}
