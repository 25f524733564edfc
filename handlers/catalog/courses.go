package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/utils/response"
)

// ListCourses handles GET /api/v1/courses
func (h *CatalogHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	filter := services.CourseFilter{
		CategorySlug: c.Query("category"),
		Difficulty:   c.Query("difficulty"),
		Search:       c.Query("search"),
		Ordering:     c.Query("ordering", "-created_at"),
		Page:         page,
		Limit:        limit,
	}

	if premium := c.Query("is_premium"); premium != "" {
		isPremium := premium == "true"
		filter.IsPremium = &isPremium
	}

	courses, total, err := h.catalog.ListCourses(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, response.CalculatePagination(page, limit, total))
}

// GetCourse handles GET /api/v1/courses/:course_slug
func (h *CatalogHandler) GetCourse(c *fiber.Ctx) error {
	slug := c.Params("course_slug")

	course, err := h.catalog.GetCourse(c.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return response.Success(c, course)
}
