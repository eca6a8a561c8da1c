package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"competition_backend/internals/constants"
	"competition_backend/internals/logger"
)

// RequireRoles lets the request through when userRole matches one of
// roles, ignoring case. Anything else is a 401.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(constants.LocUserRole).(string)
		if strings.TrimSpace(role) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Role not found")
		}
		if !constants.HasRole(role, roles) {
			logger.L().WithField("role", role).Debug("[AUTH] role rejected")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}
}

// CurrentUserID returns the user id local, or "".
func CurrentUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(constants.LocUserID).(string)
	return v
}
