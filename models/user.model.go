package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a principal can carry. Role is taken from the verified token claim
// only; anything else is treated as unauthenticated.
const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Username     string     `json:"username" gorm:"unique;not null"`
	Password     string     `json:"-" gorm:"not null"`
	FirstName    string     `json:"first_name" gorm:"default:''"`
	LastName     string     `json:"last_name" gorm:"default:''"`
	Email        string     `json:"email" gorm:"index"`
	DOB          *time.Time `json:"dob"`
	Role         string     `json:"role" gorm:"default:'STUDENT'"`
	LastActivity *time.Time `json:"last_activity"`
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}
