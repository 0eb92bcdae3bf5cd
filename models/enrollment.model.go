package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
	EnrollmentDropped   = "DROPPED"
	EnrollmentPending   = "PENDING"
)

// Enrollment is the join record between a student and a course. At most one
// row may exist per (user_id, course_id) pair regardless of status; the
// composite unique index is the structural backstop for the explicit
// existence check performed inside the enrollment transactions.
type Enrollment struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID       uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	EnrollmentDate time.Time  `json:"enrollment_date"`
	Status         string     `json:"status" gorm:"default:'ACTIVE'"`
	Grade          *float64   `json:"grade"`
	LastActivity   *time.Time `json:"last_activity"`

	// Weak references, expanded on read. Responses always carry the
	// expanded objects; request bodies always carry bare ids.
	User   User   `json:"user" gorm:"foreignKey:UserID"`
	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

// IsValidEnrollmentStatus reports whether status is a known enrollment status.
func IsValidEnrollmentStatus(status string) bool {
	switch status {
	case EnrollmentActive, EnrollmentCompleted, EnrollmentDropped, EnrollmentPending:
		return true
	}
	return false
}

// BeforeSave defaults the enrollment date and rejects unknown statuses. The
// hook runs inside whatever transaction the write belongs to, so an invalid
// status fails the whole unit.
func (e *Enrollment) BeforeSave(tx *gorm.DB) error {
	if e.Status == "" {
		e.Status = EnrollmentActive
	}
	if !IsValidEnrollmentStatus(e.Status) {
		return ErrInvalidEnrollmentStatus
	}
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now()
	}
	return nil
}
