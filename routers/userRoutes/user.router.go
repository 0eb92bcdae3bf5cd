package userRoutes

import (
	controllers "elearn/controllers/user"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user CRUD routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/users", middleware.JWTMiddleware)

	userGroup.Get("/",
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.GetUsers)
	userGroup.Get("/:userId", controllers.GetUserByID)
	userGroup.Put("/:userId",
		middleware.RequireRoles(models.RoleAdmin),
		controllers.UpdateUser)
	userGroup.Delete("/:userId",
		middleware.RequireRoles(models.RoleAdmin),
		controllers.DeleteUser)
}
