package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware that allows only the listed roles
// through. The role is read from the verified token claim set by
// JWTMiddleware; header-asserted roles are never consulted.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role not found", nil)
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
