package review

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/utils/middleware"
	"github.com/learnfx/academy-api/utils/response"
	"github.com/learnfx/academy-api/utils/validation"
)

// ReviewHandler handles course review requests
type ReviewHandler struct {
	reviews   *services.ReviewService
	validator *validation.Validator
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		validator: validation.NewValidator(),
	}
}

// CreateReviewRequest represents the request body for creating a review
type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"omitempty,max=2000"`
}

// ListReviews handles GET /api/v1/courses/:course_slug/reviews
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	slug := c.Params("course_slug")

	reviews, err := h.reviews.ListCourseReviews(c.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch reviews")
	}

	rating, err := h.reviews.GetCourseRating(c.Context(), slug)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch course rating")
	}

	return response.Success(c, fiber.Map{
		"reviews": reviews,
		"rating":  rating,
	})
}

// CreateReview handles POST /api/v1/courses/:course_slug/reviews
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	slug := c.Params("course_slug")

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Review = validation.SanitizeString(req.Review)

	created, err := h.reviews.CreateReview(c.Context(), user, slug, req.Rating, req.Review)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, services.ErrNotEnrolled):
			return response.Forbidden(c, "You must be enrolled in this course to leave a review")
		case errors.Is(err, services.ErrDuplicateReview):
			return response.Conflict(c, "You have already reviewed this course")
		case errors.Is(err, services.ErrInvalidRating):
			return response.BadRequest(c, "Rating must be between 1 and 5")
		default:
			return response.InternalServerError(c, "Failed to create review")
		}
	}

	return response.Created(c, created)
}
