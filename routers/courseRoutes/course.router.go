package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course CRUD routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses", middleware.JWTMiddleware)

	courseGroup.Get("/", controllers.GetCourses)
	courseGroup.Get("/:courseId", controllers.GetCourseByID)
	courseGroup.Post("/",
		middleware.RequireRoles(models.RoleAdmin),
		controllers.CreateCourse)
	courseGroup.Put("/:courseId",
		middleware.RequireRoles(models.RoleAdmin),
		controllers.UpdateCourse)
	courseGroup.Delete("/:courseId",
		middleware.RequireRoles(models.RoleAdmin),
		controllers.DeleteCourse)
}
