package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func Health(appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"app":       appName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
