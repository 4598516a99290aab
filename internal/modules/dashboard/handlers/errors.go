package handlers

import (
	"errors"

	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/studio-dashboard-be/internal/shared/utils"
	"github.com/gofiber/fiber/v2"
)

// writeError maps service errors to HTTP responses
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, export.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		utils.LogError("Request failed", err, map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func respond(c *fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(data)
}
