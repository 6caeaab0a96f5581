package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edgylearn-api/internal/models"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

// RequireRole admits requests whose token role is one of roles. Role aliases
// are resolved first, so an "instructor" token passes a teacher gate.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, ok := roleFromLocals(c)
		if !ok {
			return utils.SendError(c, fiber.StatusForbidden, "role missing from token")
		}
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

func roleFromLocals(c *fiber.Ctx) (models.Role, bool) {
	switch v := c.Locals("user_role").(type) {
	case models.Role:
		return models.ParseRole(string(v))
	case string:
		return models.ParseRole(v)
	default:
		return "", false
	}
}
