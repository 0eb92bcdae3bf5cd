package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Name        string     `json:"name" gorm:"not null"`
	Number      string     `json:"number" gorm:"unique;not null"`
	Term        string     `json:"term" gorm:"not null"`
	Department  string     `json:"department" gorm:"default:''"`
	Credits     int        `json:"credits" gorm:"not null"`
	Description string     `json:"description" gorm:"default:''"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, INACTIVE
}
