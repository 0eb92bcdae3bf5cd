package authValidator

import (
	controllers "elearn/controllers/auth"
	"elearn/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username  string `json:"username" validate:"required,min=3"`
			Password  string `json:"password" validate:"required,min=8"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email" validate:"required,email"`
			Role      string `json:"role" validate:"omitempty,oneof=STUDENT FACULTY ADMIN"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Username":
					errors["username"] = "Username must be at least 3 characters long!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				case "Email":
					errors["email"] = "Invalid email!"
				case "Role":
					errors["role"] = "Role must be one of STUDENT, FACULTY, ADMIN!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRegister", &controllers.RegisterInput{
			Username:  reqData.Username,
			Password:  reqData.Password,
			FirstName: reqData.FirstName,
			LastName:  reqData.LastName,
			Email:     reqData.Email,
			Role:      reqData.Role,
		})
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"credentials": "Username and password are required!",
			})
		}

		c.Locals("validatedLogin", &controllers.LoginInput{
			Username: reqData.Username,
			Password: reqData.Password,
		})
		return c.Next()
	}
}
