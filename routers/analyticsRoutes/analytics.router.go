package analyticsRoutes

import (
	controllers "elearn/controllers/analytics"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAnalyticsRoutes sets up analytics routes (FACULTY and ADMIN only)
func SetupAnalyticsRoutes(app *fiber.App) {
	analyticsGroup := app.Group("/api/analytics",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin))

	analyticsGroup.Get("/roles", controllers.GetRoleStats)
	analyticsGroup.Get("/engagement", controllers.GetEngagementReport)
}
