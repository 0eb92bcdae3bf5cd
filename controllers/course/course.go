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

// GetCourses handles GET /api/courses. Supports filtering by course number
// via the ?number= query parameter.
func GetCourses(c *fiber.Ctx) error {
	query := database.Database.Db.Order("id")
	if number := c.Query("number"); number != "" {
		query = query.Where("number = ?", number)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseByID handles GET /api/courses/:courseId.
func GetCourseByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// CreateCourse handles POST /api/courses (ADMIN only).
func CreateCourse(c *fiber.Ctx) error {
	reqData := new(struct {
		Name        string     `json:"name"`
		Number      string     `json:"number"`
		Term        string     `json:"term"`
		Department  string     `json:"department"`
		Credits     int        `json:"credits"`
		Description string     `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errs := make(map[string]string)
	if reqData.Name == "" {
		errs["name"] = "Name is required!"
	}
	if reqData.Number == "" {
		errs["number"] = "Number is required!"
	}
	if reqData.Term == "" {
		errs["term"] = "Term is required!"
	}
	if reqData.Credits <= 0 {
		errs["credits"] = "Credits must be greater than 0!"
	}
	if len(errs) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errs)
	}

	course := models.Course{
		Name:        reqData.Name,
		Number:      reqData.Number,
		Term:        reqData.Term,
		Department:  reqData.Department,
		Credits:     reqData.Credits,
		Description: reqData.Description,
		StartDate:   reqData.StartDate,
		EndDate:     reqData.EndDate,
		Status:      "ACTIVE",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course number already exists!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse handles PUT /api/courses/:courseId (ADMIN only).
func UpdateCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	reqData := new(struct {
		Name        *string    `json:"name"`
		Term        *string    `json:"term"`
		Department  *string    `json:"department"`
		Credits     *int       `json:"credits"`
		Description *string    `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Status      *string    `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	if reqData.Name != nil {
		course.Name = *reqData.Name
	}
	if reqData.Term != nil {
		course.Term = *reqData.Term
	}
	if reqData.Department != nil {
		course.Department = *reqData.Department
	}
	if reqData.Credits != nil {
		course.Credits = *reqData.Credits
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.StartDate != nil {
		course.StartDate = reqData.StartDate
	}
	if reqData.EndDate != nil {
		course.EndDate = reqData.EndDate
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse handles DELETE /api/courses/:courseId (ADMIN only). Deletion
// is refused while enrollments still reference the course.
func DeleteCourse(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var count int64
	if err := database.Database.Db.Model(&models.Enrollment{}).Where("course_id = ?", id).Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollments!", nil)
	}
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course has existing enrollments!", nil)
	}

	if err := database.Database.Db.Unscoped().Delete(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
