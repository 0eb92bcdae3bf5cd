package controllers

import (
	"errors"
	"log"
	"strconv"

	"elearn/database"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BulkEnrollSuccess is a per-item success in a bulk enrollment batch.
type BulkEnrollSuccess struct {
	UserID       uint `json:"userId"`
	EnrollmentID uint `json:"enrollmentId"`
}

// BulkEnrollFailure is a per-item failure in a bulk enrollment batch.
type BulkEnrollFailure struct {
	UserID uint   `json:"userId"`
	Reason string `json:"reason"`
}

// BulkEnrollResult is the per-item breakdown of one batch. Entries in each
// list follow the input order.
type BulkEnrollResult struct {
	BatchID    string              `json:"batchId"`
	Successful []BulkEnrollSuccess `json:"successful"`
	Failed     []BulkEnrollFailure `json:"failed"`
}

// BulkEnrollUsers enrolls a batch of students into one course inside a single
// transaction. One student's failure is recorded as data and does not stop
// the rest of the batch; earlier inserts are visible to later existence
// checks in the same unit, so a student listed twice fails on the second
// occurrence. Only the zero-success aggregate condition raises out of the
// unit, rolling the whole batch back.
func BulkEnrollUsers(db *gorm.DB, courseID uint, userIDs []uint) (*BulkEnrollResult, error) {
	if len(userIDs) == 0 {
		return nil, models.ErrEmptyBulkRequest
	}

	result := &BulkEnrollResult{
		BatchID:    uuid.NewString(),
		Successful: []BulkEnrollSuccess{},
		Failed:     []BulkEnrollFailure{},
	}

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrCourseNotFound
			}
			return err
		}

		for _, userID := range userIDs {
			enrollmentID, reason := enrollOne(tx, userID, courseID)
			if reason != "" {
				result.Failed = append(result.Failed, BulkEnrollFailure{UserID: userID, Reason: reason})
				continue
			}
			result.Successful = append(result.Successful, BulkEnrollSuccess{UserID: userID, EnrollmentID: enrollmentID})
		}

		// Nothing succeeded with a non-empty input: fail the whole unit so
		// any transient state rolls back.
		if len(result.Successful) == 0 {
			return models.ErrBulkAllFailed
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	log.Printf("Bulk enrollment %s: course=%d enrolled=%d failed=%d",
		result.BatchID, courseID, len(result.Successful), len(result.Failed))
	return result, nil
}

// enrollOne processes a single student of a batch against the in-progress
// transaction. Errors never escape: they come back as a failure reason so
// one student cannot roll back the others.
func enrollOne(tx *gorm.DB, userID, courseID uint) (uint, string) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "User not found"
		}
		return 0, "Failed to look up user"
	}

	var existing models.Enrollment
	err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return 0, "Already enrolled"
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, "Failed to check existing enrollment"
	}

	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.EnrollmentActive,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		return 0, "Failed to create enrollment"
	}
	return enrollment.ID, ""
}

// BulkEnrollHandler handles POST /api/courses/:courseId/bulk-enroll
// (ADMIN only).
func BulkEnrollHandler(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	reqData, ok := c.Locals("validatedBulkEnroll").(*BulkEnrollRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := BulkEnrollUsers(database.Database.Db, uint(courseID), reqData.UserIDs)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyBulkRequest):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "userIds must be a non-empty list!", nil)
		case errors.Is(err, models.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, models.ErrBulkAllFailed):
			return middleware.TransactionFailedResponse(c, fiber.StatusInternalServerError, "Bulk enrollment failed for all users!")
		default:
			return middleware.TransactionFailedResponse(c, fiber.StatusInternalServerError, "Transaction failed!")
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk enrollment processed!", fiber.Map{
		"results": result,
	})
}

// BulkEnrollRequest is the expected body for a bulk enrollment call.
type BulkEnrollRequest struct {
	UserIDs []uint `json:"userIds" validate:"required,min=1,dive,gt=0"`
}
