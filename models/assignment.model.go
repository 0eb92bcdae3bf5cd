package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	gorm.Model
	Title        string    `json:"title" gorm:"not null"`
	CourseNumber string    `json:"course_number" gorm:"index;not null"`
	Points       int       `json:"points" gorm:"not null"`
	Released     bool      `json:"released" gorm:"default:false"`
	StartingDate time.Time `json:"starting_date"`
	DueDate      time.Time `json:"due_date"`
	Outdated     bool      `json:"outdated" gorm:"default:false"`
	Content      string    `json:"content" gorm:"default:''"`
}
