package quizRoutes

import (
	controllers "elearn/controllers/quiz"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz CRUD routes
func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/api/quizzes", middleware.JWTMiddleware)

	quizGroup.Get("/", controllers.GetQuizzes)
	quizGroup.Get("/:id", controllers.GetQuizByID)
	quizGroup.Post("/",
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.CreateQuiz)
	quizGroup.Put("/:id",
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.UpdateQuiz)
	quizGroup.Delete("/:id",
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.DeleteQuiz)
}
