package entity

import "time"

// Option is one fixed answer choice of a MULTIPLE_CHOICE question. Token is
// the stable contract the decision engine matches against; Label is display
// text and may be edited freely. A token must never be reused for a different
// meaning once the quiz is live.
type Option struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuestionID   uint      `gorm:"not null;index;uniqueIndex:idx_option_question_token,priority:1" json:"question_id"`
	Token        string    `gorm:"size:50;not null;uniqueIndex:idx_option_question_token,priority:2" json:"token"`
	Label        string    `gorm:"size:255;not null" json:"label"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Option) TableName() string {
	return "question_options"
}
