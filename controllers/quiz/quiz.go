package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"elearn/database"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// validateQuestions enforces the explicit question schema at the boundary.
// Required fields are never optional and unknown question types are rejected.
func validateQuestions(questions []models.QuizQuestion) map[string]string {
	errs := make(map[string]string)
	for i, q := range questions {
		key := fmt.Sprintf("questions[%d]", i)
		if !models.IsValidQuestionType(q.Type) {
			errs[key] = "Unknown question type!"
			continue
		}
		if q.Content == "" {
			errs[key] = "Question content is required!"
			continue
		}
		if q.CorrectAns == "" {
			errs[key] = "Correct answer is required!"
			continue
		}
		if q.Type == models.QuestionMultipleChoice && len(q.Options) < 2 {
			errs[key] = "Multiple choice questions need at least two options!"
		}
	}
	return errs
}

// GetQuizzes handles GET /api/quizzes. Supports filtering by course number
// via ?course_number=.
func GetQuizzes(c *fiber.Ctx) error {
	query := database.Database.Db.Order("id")
	if number := c.Query("course_number"); number != "" {
		query = query.Where("course_number = ?", number)
	}

	var quizzes []models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", quizzes)
}

// GetQuizByID handles GET /api/quizzes/:id.
func GetQuizByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// CreateQuiz handles POST /api/quizzes (FACULTY and ADMIN).
func CreateQuiz(c *fiber.Ctx) error {
	reqData := new(struct {
		Title           string                `json:"title"`
		Description     string                `json:"description"`
		Type            string                `json:"type"`
		CourseNumber    string                `json:"course_number"`
		Points          int                   `json:"points"`
		TimeLimit       int                   `json:"time_limit"`
		AssignmentGroup string                `json:"assignment_group"`
		BrowserRequired bool                  `json:"browser_required"`
		Questions       []models.QuizQuestion `json:"questions"`
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
	if reqData.TimeLimit <= 0 {
		errs["time_limit"] = "Time limit must be greater than 0!"
	}
	if reqData.AssignmentGroup != "EXAMS" && reqData.AssignmentGroup != "QUIZZES" {
		errs["assignment_group"] = "Assignment group must be EXAMS or QUIZZES!"
	}
	for k, v := range validateQuestions(reqData.Questions) {
		errs[k] = v
	}
	if len(errs) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errs)
	}

	questionsJSON, err := json.Marshal(reqData.Questions)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questions payload!", nil)
	}

	quiz := models.Quiz{
		Title:           reqData.Title,
		Description:     reqData.Description,
		Type:            reqData.Type,
		CourseNumber:    reqData.CourseNumber,
		Points:          reqData.Points,
		TimeLimit:       reqData.TimeLimit,
		AssignmentGroup: reqData.AssignmentGroup,
		BrowserRequired: reqData.BrowserRequired,
		Questions:       datatypes.JSON(questionsJSON),
	}
	if quiz.Type == "" {
		quiz.Type = "Graded Quiz"
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// UpdateQuiz handles PUT /api/quizzes/:id (FACULTY and ADMIN).
func UpdateQuiz(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	reqData := new(struct {
		Title           *string               `json:"title"`
		Description     *string               `json:"description"`
		Points          *int                  `json:"points"`
		TimeLimit       *int                  `json:"time_limit"`
		BrowserRequired *bool                 `json:"browser_required"`
		Published       *bool                 `json:"published"`
		Questions       []models.QuizQuestion `json:"questions"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var quiz models.Quiz
	if err := database.Database.Db.First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	if reqData.Title != nil {
		quiz.Title = *reqData.Title
	}
	if reqData.Description != nil {
		quiz.Description = *reqData.Description
	}
	if reqData.Points != nil {
		quiz.Points = *reqData.Points
	}
	if reqData.TimeLimit != nil {
		quiz.TimeLimit = *reqData.TimeLimit
	}
	if reqData.BrowserRequired != nil {
		quiz.BrowserRequired = *reqData.BrowserRequired
	}
	if reqData.Published != nil {
		quiz.Published = *reqData.Published
	}
	if reqData.Questions != nil {
		if errs := validateQuestions(reqData.Questions); len(errs) > 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errs)
		}
		questionsJSON, err := json.Marshal(reqData.Questions)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questions payload!", nil)
		}
		quiz.Questions = datatypes.JSON(questionsJSON)
	}

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// DeleteQuiz handles DELETE /api/quizzes/:id (FACULTY and ADMIN).
func DeleteQuiz(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
	}

	result := database.Database.Db.Unscoped().Delete(&models.Quiz{}, id)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}
