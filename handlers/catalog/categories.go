package catalog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/services"
	"github.com/learnfx/academy-api/utils/response"
)

// CatalogHandler serves the public catalog read paths
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch categories")
	}
	return response.Success(c, categories)
}
