package api

import "github.com/gofiber/fiber/v2"

// Health also reports whether create-owner has been run.
func (handler *Handler) Health(c *fiber.Ctx) error {
	configured, err := handler.setupService.OwnerConfigured()
	if err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "error.storage")
	}
	return c.JSON(fiber.Map{"status": "ok", "owner_configured": configured})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "error.not_found")
}
