package handler

import (
	"strconv"
	"strings"

	"ponto-backend/internal/i18n"

	"github.com/gofiber/fiber/v2"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Localize is a middleware storing the request locale in the user context.
func Localize(c *fiber.Ctx) error {
	locale := i18n.Match(c.Get(fiber.HeaderAcceptLanguage))
	c.SetUserContext(i18n.WithLocale(c.UserContext(), locale))
	return c.Next()
}
