package controllers

import (
	"errors"
	"strconv"
	"time"

	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	"elearn/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateEnrollmentInput carries the fields accepted when enrolling a single
// student. References are bare ids; responses expand them.
type CreateEnrollmentInput struct {
	UserID         uint
	CourseID       uint
	EnrollmentDate *time.Time
	Status         string
}

// UpdateEnrollmentInput is a partial update; nil fields are left untouched.
type UpdateEnrollmentInput struct {
	Status       *string
	Grade        *float64
	LastActivity *time.Time
}

// CreateEnrollment enrolls one student into one course inside a single
// transaction. The existence check and the insert run in the same unit so a
// duplicate surfaces as a domain error; the unique index on
// (user_id, course_id) is the backstop for a concurrent duplicate insert,
// which also maps to ErrDuplicateEnrollment.
func CreateEnrollment(db *gorm.DB, in CreateEnrollmentInput) (*models.Enrollment, error) {
	var created models.Enrollment

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrUserNotFound
			}
			return err
		}

		var course models.Course
		if err := tx.First(&course, in.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrCourseNotFound
			}
			return err
		}

		var existing models.Enrollment
		err := tx.Where("user_id = ? AND course_id = ?", in.UserID, in.CourseID).First(&existing).Error
		if err == nil {
			return models.ErrDuplicateEnrollment
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		enrollment := models.Enrollment{
			UserID:   in.UserID,
			CourseID: in.CourseID,
			Status:   in.Status,
		}
		if in.EnrollmentDate != nil {
			enrollment.EnrollmentDate = *in.EnrollmentDate
		}

		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrDuplicateEnrollment
			}
			return err
		}

		created = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("User").Preload("Course").First(&created, created.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEnrollment applies a partial update to an enrollment inside a
// transaction. Status changes go through the save hook, so an invalid status
// rolls the unit back.
func UpdateEnrollment(db *gorm.DB, id uint, in UpdateEnrollmentInput) (*models.Enrollment, error) {
	var updated models.Enrollment

	err := database.WithTransaction(db, func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.First(&enrollment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrEnrollmentNotFound
			}
			return err
		}

		if in.Status != nil {
			enrollment.Status = *in.Status
		}
		if in.Grade != nil {
			enrollment.Grade = in.Grade
		}
		if in.LastActivity != nil {
			enrollment.LastActivity = in.LastActivity
		}

		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}

		updated = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("User").Preload("Course").First(&updated, updated.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEnrollment removes an enrollment. Deletion is unconditional once
// authorized; the delete is a hard delete so the (user, course) pair can be
// re-enrolled later without tripping the unique index.
func DeleteEnrollment(db *gorm.DB, id uint) error {
	return database.WithTransaction(db, func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.First(&enrollment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrEnrollmentNotFound
			}
			return err
		}
		return tx.Unscoped().Delete(&enrollment).Error
	})
}

// IsUserEnrolled reports whether the user holds an ACTIVE or COMPLETED
// enrollment in the course.
func IsUserEnrolled(db *gorm.DB, userID, courseID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status IN ?",
			userID, courseID, []string{models.EnrollmentActive, models.EnrollmentCompleted}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// enrollmentErrorResponse maps a domain error onto the HTTP envelope.
func enrollmentErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrDuplicateEnrollment):
		return middleware.TransactionFailedResponse(c, fiber.StatusBadRequest, "User is already enrolled in this course!")
	case errors.Is(err, models.ErrInvalidEnrollmentStatus):
		return middleware.TransactionFailedResponse(c, fiber.StatusBadRequest, "Invalid enrollment status!")
	case errors.Is(err, models.ErrEnrollmentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	case errors.Is(err, models.ErrUserNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	case errors.Is(err, models.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, models.ErrNotEnrollmentOwner):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	default:
		return middleware.TransactionFailedResponse(c, fiber.StatusInternalServerError, "Transaction failed!")
	}
}

// CreateEnrollmentHandler handles POST /api/enrollments (ADMIN only).
func CreateEnrollmentHandler(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollment").(*CreateEnrollmentInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, err := CreateEnrollment(database.Database.Db, *reqData)
	if err != nil {
		return enrollmentErrorResponse(c, err)
	}

	go utils.SendEnrollmentConfirmation(enrollment.User.Email,
		enrollment.User.FirstName, enrollment.Course.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment created successfully!", enrollment)
}

// GetEnrollmentsHandler handles GET /api/enrollments. FACULTY and ADMIN see
// every record; a STUDENT sees only their own.
func GetEnrollmentsHandler(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("userRole").(string)

	query := database.Database.Db.Preload("User").Preload("Course").Order("id")
	if role == models.RoleStudent {
		query = query.Where("user_id = ?", userID)
	}

	var enrollments []models.Enrollment
	if err := query.Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetEnrollmentByIDHandler handles GET /api/enrollments/:id. A STUDENT asking
// for someone else's enrollment gets an explicit denial, not a not-found.
func GetEnrollmentByIDHandler(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
	}

	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)

	var enrollment models.Enrollment
	if err := database.Database.Db.Preload("User").Preload("Course").First(&enrollment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enrollmentErrorResponse(c, models.ErrEnrollmentNotFound)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment!", nil)
	}

	if role == models.RoleStudent && enrollment.UserID != userID {
		return enrollmentErrorResponse(c, models.ErrNotEnrollmentOwner)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// UpdateEnrollmentHandler handles PUT /api/enrollments/:id (ADMIN only).
func UpdateEnrollmentHandler(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollmentUpdate").(*UpdateEnrollmentInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment, err := UpdateEnrollment(database.Database.Db, uint(id), *reqData)
	if err != nil {
		return enrollmentErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment updated successfully!", enrollment)
}

// DeleteEnrollmentHandler handles DELETE /api/enrollments/:id (ADMIN only).
func DeleteEnrollmentHandler(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
	}

	if err := DeleteEnrollment(database.Database.Db, uint(id)); err != nil {
		return enrollmentErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment deleted successfully!", nil)
}

// GetUserEnrollmentsHandler handles GET /api/users/:userId/enrollments. A
// STUDENT may only list their own enrollments.
func GetUserEnrollmentsHandler(c *fiber.Ctx) error {
	targetID, err := strconv.Atoi(c.Params("userId"))
	if err != nil || targetID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	userID, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)
	if role == models.RoleStudent && uint(targetID) != userID {
		return enrollmentErrorResponse(c, models.ErrNotEnrollmentOwner)
	}

	var enrollments []models.Enrollment
	err = database.Database.Db.Preload("Course").
		Where("user_id = ?", targetID).Order("id").Find(&enrollments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetCourseEnrollmentsHandler handles GET /api/courses/:courseId/enrollments
// (FACULTY and ADMIN only, enforced at the route).
func GetCourseEnrollmentsHandler(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	var enrollments []models.Enrollment
	err = database.Database.Db.Preload("User").
		Where("course_id = ?", courseID).Order("id").Find(&enrollments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// CheckEnrollmentHandler handles
// GET /api/users/:userId/courses/:courseId/enrollment.
func CheckEnrollmentHandler(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil || userID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
	}

	enrolled, err := IsUserEnrolled(database.Database.Db, uint(userID), uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status fetched successfully!", fiber.Map{
		"isEnrolled": enrolled,
	})
}
