package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/learnfx/academy-api/database"
	"github.com/learnfx/academy-api/utils/response"
)

// HandleCheckHealth reports service liveness including database reachability
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable,
				"Database unreachable", "SERVICE_UNAVAILABLE")
		}
		return response.Success(c, fiber.Map{"status": "ok"})
	}
}
