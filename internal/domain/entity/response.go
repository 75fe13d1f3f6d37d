package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SnapshotOption is an option as it existed at submission time.
type SnapshotOption struct {
	ID    uint   `json:"id"`
	Token string `json:"token"`
	Label string `json:"label"`
}

// SnapshotQuestion is a question as it existed at submission time.
type SnapshotQuestion struct {
	ID           uint             `json:"id"`
	Role         string           `json:"role"`
	Type         string           `json:"type"`
	Text         string           `json:"text"`
	DisplayOrder int              `json:"display_order"`
	Options      []SnapshotOption `json:"options,omitempty"`
}

// QuizSnapshot freezes the question/option set a response was answered
// against, so historical answers never depend on mutable catalog rows.
// Stored as JSONB.
type QuizSnapshot []SnapshotQuestion

// Scan implements sql.Scanner for reading JSONB.
func (s *QuizSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = QuizSnapshot{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*s = QuizSnapshot{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Value implements driver.Valuer for writing JSONB.
func (s QuizSnapshot) Value() (driver.Value, error) {
	if len(s) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Response is one submitted check-in: at most one per (user, quiz, calendar
// day), enforced by the uniq_response_user_quiz_day index. Immutable once
// committed; created atomically with its Answers.
type Response struct {
	ID                      uint         `gorm:"primaryKey" json:"id"`
	UserID                  uint         `gorm:"not null;index;uniqueIndex:uniq_response_user_quiz_day,priority:1" json:"user_id"`
	QuizID                  uint         `gorm:"not null;index;uniqueIndex:uniq_response_user_quiz_day,priority:2" json:"quiz_id"`
	ResponseDate            time.Time    `gorm:"type:date;not null;index;uniqueIndex:uniq_response_user_quiz_day,priority:3" json:"response_date"`
	TotalScore              int          `gorm:"not null;default:0" json:"total_score"`
	IsGoodDayForExercise    bool         `gorm:"not null;default:false" json:"is_good_day_for_exercise"`
	RecommendedExerciseType string       `gorm:"size:255;not null" json:"recommended_exercise_type"`
	Classification          string       `gorm:"size:30;not null" json:"classification"`
	GeneralObservations     string       `gorm:"type:text;not null;default:''" json:"general_observations,omitempty"`
	QuizSnapshot            QuizSnapshot `gorm:"type:jsonb;not null" json:"quiz_snapshot,omitempty"`
	Answers                 []Answer     `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
	CreatedAt               time.Time    `json:"created_at"`
}

func (Response) TableName() string {
	return "quiz_responses"
}
