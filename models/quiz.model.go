package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types accepted by the quiz schema. Unknown types are rejected at
// the boundary; required fields are enforced there too, never optionally.
const (
	QuestionMultipleChoice = "Multiple Choice"
	QuestionFillInBlank    = "Fill in Blank"
	QuestionTrueOrFalse    = "TrueORFalse"
)

type Quiz struct {
	gorm.Model
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description" gorm:"default:''"`
	Type            string         `json:"type" gorm:"default:'Graded Quiz'"`
	CourseNumber    string         `json:"course_number" gorm:"index;not null"`
	Points          int            `json:"points" gorm:"not null"`
	TimeLimit       int            `json:"time_limit" gorm:"not null"`
	AssignmentGroup string         `json:"assignment_group" gorm:"not null"` // EXAMS, QUIZZES
	BrowserRequired bool           `json:"browser_required" gorm:"default:false"`
	Published       bool           `json:"published" gorm:"default:false"`
	Questions       datatypes.JSON `json:"questions"`
}

// QuizQuestion is the explicit, versioned question shape stored in the
// Questions column.
type QuizQuestion struct {
	QuestionID int      `json:"question_id"`
	Type       string   `json:"question_type"`
	Points     int      `json:"question_points"`
	Content    string   `json:"question_content"`
	Options    []string `json:"options,omitempty"`
	CorrectAns string   `json:"correct_ans"`
	Difficulty string   `json:"question_difficulty"` // easy, medium, hard
}

// IsValidQuestionType reports whether t is a supported question type.
func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionMultipleChoice, QuestionFillInBlank, QuestionTrueOrFalse:
		return true
	}
	return false
}
