package enrollmentRoutes

import (
	controllers "elearn/controllers/enrollment"
	"elearn/middleware"
	"elearn/models"
	validators "elearn/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up the enrollment subsystem routes. Only ADMIN
// may mutate enrollment state; FACULTY gets read-only visibility; a STUDENT
// sees their own records.
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollGroup := app.Group("/api/enrollments", middleware.JWTMiddleware)

	enrollGroup.Post("/",
		middleware.RequireRoles(models.RoleAdmin),
		validators.CreateEnrollment(),
		controllers.CreateEnrollmentHandler)
	enrollGroup.Get("/", controllers.GetEnrollmentsHandler)
	enrollGroup.Get("/:id", controllers.GetEnrollmentByIDHandler)
	enrollGroup.Put("/:id",
		middleware.RequireRoles(models.RoleAdmin),
		validators.UpdateEnrollment(),
		controllers.UpdateEnrollmentHandler)
	enrollGroup.Delete("/:id",
		middleware.RequireRoles(models.RoleAdmin),
		controllers.DeleteEnrollmentHandler)

	// Bulk enrollment and per-course/per-user views
	app.Post("/api/courses/:courseId/bulk-enroll",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleAdmin),
		validators.BulkEnroll(),
		controllers.BulkEnrollHandler)
	app.Get("/api/courses/:courseId/enrollments",
		middleware.JWTMiddleware,
		middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin),
		controllers.GetCourseEnrollmentsHandler)
	app.Get("/api/users/:userId/enrollments",
		middleware.JWTMiddleware,
		controllers.GetUserEnrollmentsHandler)
	app.Get("/api/users/:userId/courses/:courseId/enrollment",
		middleware.JWTMiddleware,
		controllers.CheckEnrollmentHandler)
}
