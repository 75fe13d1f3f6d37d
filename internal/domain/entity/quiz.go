package entity

import (
	"time"
)

// Quiz purpose slots. Exactly one quiz per purpose may be active at a time;
// the catalog deactivates the previous one on activation, and a partial
// unique index backs the same rule at the database level.
const (
	QuizPurposeDailyCheckin      = "DAILY_CHECKIN"
	QuizPurposeInitialAssessment = "INITIAL_ASSESSMENT"
)

// Quiz is a questionnaire definition owned by an administrator.
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"size:500;not null;default:''" json:"description"`
	Purpose     string     `gorm:"size:30;not null;index" json:"purpose"`
	IsActive    bool       `gorm:"not null;default:false;index" json:"is_active"`
	CreatedBy   *uint      `gorm:"index" json:"created_by,omitempty"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// IsDailyCheckin reports whether submissions against this quiz go through the
// safety classification waterfall.
func (q *Quiz) IsDailyCheckin() bool {
	return q.Purpose == QuizPurposeDailyCheckin
}

// IsInitialAssessment reports whether submissions resolve to the neutral
// "assessment completed" outcome instead of a safety classification.
func (q *Quiz) IsInitialAssessment() bool {
	return q.Purpose == QuizPurposeInitialAssessment
}

// IsValidPurpose checks a purpose value against the closed set.
func IsValidPurpose(purpose string) bool {
	return purpose == QuizPurposeDailyCheckin || purpose == QuizPurposeInitialAssessment
}
