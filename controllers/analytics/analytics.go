package controllers

import (
	"time"

	"elearn/database"
	"elearn/middleware"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StudentEngagement is one student's aggregated engagement row.
type StudentEngagement struct {
	StudentID       uint       `json:"studentId"`
	StudentName     string     `json:"studentName"`
	Email           string     `json:"email"`
	CoursesEnrolled int        `json:"coursesEnrolled"`
	TotalCredits    int        `json:"totalCredits"`
	LastActivity    *time.Time `json:"lastActivity"`
	DaysInactive    float64    `json:"daysInactive"`
	EngagementScore string     `json:"engagementScore"` // High, Medium, Low
}

// scoreEngagement buckets a last-activity timestamp: High under 7 days,
// Medium under 14, Low otherwise. No recorded activity scores Low.
func scoreEngagement(lastActivity *time.Time, now time.Time) (float64, string) {
	if lastActivity == nil {
		return 0, "Low"
	}
	days := now.Sub(*lastActivity).Hours() / 24
	switch {
	case days < 7:
		return days, "High"
	case days < 14:
		return days, "Medium"
	default:
		return days, "Low"
	}
}

// ComputeEngagementSnapshot aggregates active enrollments per student:
// course count, total credits, most recent activity and the bucketed score.
// Used by the analytics endpoint and by the engagement scheduler.
func ComputeEngagementSnapshot(db *gorm.DB) ([]StudentEngagement, error) {
	var enrollments []models.Enrollment
	err := db.Preload("User").Preload("Course").
		Where("status = ?", models.EnrollmentActive).
		Order("user_id").Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	byStudent := make(map[uint]*StudentEngagement)
	order := []uint{}

	for _, e := range enrollments {
		row, ok := byStudent[e.UserID]
		if !ok {
			row = &StudentEngagement{
				StudentID:    e.UserID,
				StudentName:  e.User.FirstName + " " + e.User.LastName,
				Email:        e.User.Email,
				LastActivity: e.User.LastActivity,
			}
			byStudent[e.UserID] = row
			order = append(order, e.UserID)
		}

		row.CoursesEnrolled++
		row.TotalCredits += e.Course.Credits
		if e.LastActivity != nil &&
			(row.LastActivity == nil || e.LastActivity.After(*row.LastActivity)) {
			row.LastActivity = e.LastActivity
		}
	}

	snapshot := make([]StudentEngagement, 0, len(order))
	for _, id := range order {
		row := byStudent[id]
		row.DaysInactive, row.EngagementScore = scoreEngagement(row.LastActivity, now)
		snapshot = append(snapshot, *row)
	}
	return snapshot, nil
}

// GetRoleStats handles GET /api/analytics/roles (FACULTY and ADMIN).
func GetRoleStats(c *fiber.Ctx) error {
	type roleCount struct {
		Role  string
		Count int64
	}

	var stats []roleCount
	err := database.Database.Db.Model(&models.User{}).
		Select("role, count(*) as count").
		Group("role").Order("role").Scan(&stats).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch role statistics!", nil)
	}

	labels := make([]string, 0, len(stats))
	counts := make([]int64, 0, len(stats))
	var total int64
	for _, s := range stats {
		labels = append(labels, s.Role)
		counts = append(counts, s.Count)
		total += s.Count
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role statistics fetched successfully!", fiber.Map{
		"labels":     labels,
		"counts":     counts,
		"totalUsers": total,
	})
}

// GetEngagementReport handles GET /api/analytics/engagement (FACULTY and
// ADMIN).
func GetEngagementReport(c *fiber.Ctx) error {
	snapshot, err := ComputeEngagementSnapshot(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute engagement report!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Engagement report fetched successfully!", snapshot)
}
