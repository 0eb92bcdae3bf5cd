package controllers

import (
	"errors"
	"strconv"
	"time"

	"elearn/database"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAssignments handles GET /api/assignments. Supports filtering by course
// number via ?course_number=.
func GetAssignments(c *fiber.Ctx) error {
	query := database.Database.Db.Order("due_date")
	if number := c.Query("course_number"); number != "" {
		query = query.Where("course_number = ?", number)
	}

	var assignments []models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
}

// GetAssignmentByID handles GET /api/assignments/:id.
func GetAssignmentByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment ID!", nil)
	}

	var assignment models.Assignment
	if err := database.Database.Db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment fetched successfully!", assignment)
}

// CreateAssignment handles POST /api/assignments (FACULTY and ADMIN).
func CreateAssignment(c *fiber.Ctx) error {
	reqData := new(struct {
		Title        string    `json:"title"`
		CourseNumber string    `json:"course_number"`
		Points       int       `json:"points"`
		Released     bool      `json:"released"`
		StartingDate time.Time `json:"starting_date"`
		DueDate      time.Time `json:"due_date"`
		Content      string    `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errs := make(map[string]string)
	if reqData.Title == "" {
		errs["title"] = "Title is required!"
	}
	if reqData.CourseNumber == "" {
		errs["course_number"] = "Course number is required!"
	}
	if reqData.Points <= 0 {
		errs["points"] = "Points must be greater than 0!"
	}
	if reqData.StartingDate.IsZero() || reqData.DueDate.IsZero() {
		errs["dates"] = "Starting date and due date are required!"
	}
	if len(errs) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errs)
	}

	assignment := models.Assignment{
		Title:        reqData.Title,
		CourseNumber: reqData.CourseNumber,
		Points:       reqData.Points,
		Released:     reqData.Released,
		StartingDate: reqData.StartingDate,
		DueDate:      reqData.DueDate,
		Content:      reqData.Content,
	}

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// UpdateAssignment handles PUT /api/assignments/:id (FACULTY and ADMIN).
func UpdateAssignment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment ID!", nil)
	}

	reqData := new(struct {
		Title        *string    `json:"title"`
		Points       *int       `json:"points"`
		Released     *bool      `json:"released"`
		StartingDate *time.Time `json:"starting_date"`
		DueDate      *time.Time `json:"due_date"`
		Outdated     *bool      `json:"outdated"`
		Content      *string    `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var assignment models.Assignment
	if err := database.Database.Db.First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignment!", nil)
	}

	if reqData.Title != nil {
		assignment.Title = *reqData.Title
	}
	if reqData.Points != nil {
		assignment.Points = *reqData.Points
	}
	if reqData.Released != nil {
		assignment.Released = *reqData.Released
	}
	if reqData.StartingDate != nil {
		assignment.StartingDate = *reqData.StartingDate
	}
	if reqData.DueDate != nil {
		assignment.DueDate = *reqData.DueDate
	}
	if reqData.Outdated != nil {
		assignment.Outdated = *reqData.Outdated
	}
	if reqData.Content != nil {
		assignment.Content = *reqData.Content
	}

	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully!", assignment)
}

// DeleteAssignment handles DELETE /api/assignments/:id (FACULTY and ADMIN).
func DeleteAssignment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment ID!", nil)
	}

	result := database.Database.Db.Unscoped().Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assignment!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}
