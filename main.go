package main

import (
	"log"

	"elearn/config"
	analytics "elearn/controllers/analytics"
	"elearn/database"
	analyticsRoutes "elearn/routers/analyticsRoutes"
	assignmentRoutes "elearn/routers/assignmentRoutes"
	authRoutes "elearn/routers/authRoutes"
	courseRoutes "elearn/routers/courseRoutes"
	enrollmentRoutes "elearn/routers/enrollmentRoutes"
	quizRoutes "elearn/routers/quizRoutes"
	userRoutes "elearn/routers/userRoutes"
	"elearn/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	assignmentRoutes.SetupAssignmentRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	analyticsRoutes.SetupAnalyticsRoutes(app)

	// Analytics subscribers and the engagement snapshot job live for the
	// lifetime of the serving process.
	registry := analytics.NewRegistry()
	scheduler := utils.StartEngagementScheduler(registry)
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
