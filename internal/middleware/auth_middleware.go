package middleware

import (
	"strings"

	"ponto-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

func Auth(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Bearer token
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token não informado"})
		}

		// Format: "Bearer <token>"
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// 2. Validate
		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token inválido ou expirado"})
		}

		// 3. Identity for the handlers
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalUserID).(uint)
	return id, ok && id > 0
}
