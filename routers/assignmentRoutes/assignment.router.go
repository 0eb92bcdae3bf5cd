package assignmentRoutes

import (
	controllers "elearn/controllers/assignment"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAssignmentRoutes sets up assignment CRUD routes
func SetupAssignmentRoutes(app *fiber.App) {
	assignmentGroup := app.Group("/api/assignments", middleware.JWTMiddleware)

	assignmentGroup.Get("/", controllers.GetAssignments)
	assignmentGroup.Get("/:id", controllers.GetAssignmentByID)
	assignmentGroup.Post("/",
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.CreateAssignment)
	assignmentGroup.Put("/:id",
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.UpdateAssignment)
	assignmentGroup.Delete("/:id",
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.DeleteAssignment)
}
