package enrollmentValidator

import (
	"time"

	controllers "elearn/controllers/enrollment"
	"elearn/middleware"
	"elearn/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateEnrollment validates the POST /api/enrollments body. References are
// bare ids; the expanded objects only ever appear in responses.
func CreateEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			User           uint       `json:"user" validate:"required"`
			Course         uint       `json:"course" validate:"required"`
			EnrollmentDate *time.Time `json:"enrollmentDate"`
			Status         string     `json:"status" validate:"omitempty,oneof=ACTIVE COMPLETED DROPPED PENDING"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "User":
					errors["user"] = "User is required!"
				case "Course":
					errors["course"] = "Course is required!"
				case "Status":
					errors["status"] = "Status must be one of ACTIVE, COMPLETED, DROPPED, PENDING!"
				}
			}
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
		}

		c.Locals("validatedEnrollment", &controllers.CreateEnrollmentInput{
			UserID:         reqData.User,
			CourseID:       reqData.Course,
			EnrollmentDate: reqData.EnrollmentDate,
			Status:         reqData.Status,
		})
		return c.Next()
	}
}

// UpdateEnrollment validates the PUT /api/enrollments/:id body. All fields
// are optional; present fields must be well-formed.
func UpdateEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status       *string    `json:"status" validate:"omitempty,oneof=ACTIVE COMPLETED DROPPED PENDING"`
			Grade        *float64   `json:"grade" validate:"omitempty,gte=0,lte=100"`
			LastActivity *time.Time `json:"lastActivity"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Status != nil && !models.IsValidEnrollmentStatus(*reqData.Status) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", map[string]string{
				"status": "Status must be one of ACTIVE, COMPLETED, DROPPED, PENDING!",
			})
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", map[string]string{
				"grade": "Grade must be between 0 and 100!",
			})
		}

		c.Locals("validatedEnrollmentUpdate", &controllers.UpdateEnrollmentInput{
			Status:       reqData.Status,
			Grade:        reqData.Grade,
			LastActivity: reqData.LastActivity,
		})
		return c.Next()
	}
}

// BulkEnroll validates the POST /api/courses/:courseId/bulk-enroll body.
// An empty or missing list is rejected before any transaction is opened.
func BulkEnroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.BulkEnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "userIds must be a non-empty list!", nil)
		}

		c.Locals("validatedBulkEnroll", reqData)
		return c.Next()
	}
}
