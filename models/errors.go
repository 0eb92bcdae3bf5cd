package models

import "errors"

// Domain errors for the enrollment subsystem. Controllers match on these to
// pick the HTTP status; the transaction layer rolls back on any of them.
var (
	ErrDuplicateEnrollment     = errors.New("user is already enrolled in this course")
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrCourseNotFound          = errors.New("course not found")
	ErrInvalidEnrollmentStatus = errors.New("invalid enrollment status")

	// Ownership mismatch is a distinct, explicit denial. It never reveals
	// whether the underlying record exists.
	ErrNotEnrollmentOwner = errors.New("enrollment belongs to another user")

	ErrEmptyBulkRequest = errors.New("userIds must be a non-empty list")
	ErrBulkAllFailed    = errors.New("bulk enrollment failed for all users")

	ErrUserHasEnrollments   = errors.New("user has existing enrollments")
	ErrCourseHasEnrollments = errors.New("course has existing enrollments")
)
