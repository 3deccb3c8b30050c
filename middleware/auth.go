package middleware

import (
	"log"

	"fifa-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// PlayerContextMiddleware extracts the player identity and role set by the
// Gateway. The role is an explicit claim on the request context — admin
// status is never inferred from a display name.
func PlayerContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID := c.Get("X-Player-ID")
		role := c.Get("X-Player-Role")

		if playerID == "" {
			log.Printf("❌ [PLAYER_CTX] X-Player-ID missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Player-ID — request must come through gateway with auth context",
			})
		}
		if role != models.RoleAdmin {
			role = models.RolePlayer
		}

		c.Locals("player_id", playerID)
		c.Locals("player_role", role)
		return c.Next()
	}
}

// RequireAdmin guards admin-only route groups.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("player_role").(string)
		if role != models.RoleAdmin {
			log.Printf("🚫 [ADMIN] non-admin access attempt on %s", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}
		return c.Next()
	}
}
