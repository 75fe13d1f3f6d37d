package entity

import "time"

// Answer stores the raw value submitted for one question of a response: the
// option token, "YES"/"NO", or a stringified 0-10 integer. Never mutated
// after creation.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ResponseID uint      `gorm:"not null;index" json:"response_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Value      string    `gorm:"size:50;not null" json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Answer) TableName() string {
	return "response_answers"
}
