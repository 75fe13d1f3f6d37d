package entity

import (
	"strconv"
	"time"
)

// Question types. Closed set; the answer value domain depends on it.
const (
	QuestionTypeYesNo          = "YES_NO"
	QuestionTypeScale0To10     = "SCALE_0_10"
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
)

// Accepted raw values for YES_NO questions.
const (
	AnswerYes = "YES"
	AnswerNo  = "NO"
)

// Question belongs to exactly one Quiz. DisplayOrder is presentation-only;
// the decision engine addresses questions by Role, so reordering a live quiz
// never changes classification.
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuizID       uint      `gorm:"not null;index" json:"quiz_id"`
	Text         string    `gorm:"size:500;not null" json:"text"`
	Type         string    `gorm:"size:20;not null;column:question_type" json:"question_type"`
	Role         string    `gorm:"size:30;not null;index" json:"role"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	Options      []Option  `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// IsValidType checks a question type against the closed set.
func IsValidType(questionType string) bool {
	switch questionType {
	case QuestionTypeYesNo, QuestionTypeScale0To10, QuestionTypeMultipleChoice:
		return true
	}
	return false
}

// IsValidValue reports whether a raw submitted value lies in the question's
// declared type domain. For MULTIPLE_CHOICE any non-empty token is accepted:
// a token the engine does not recognize must degrade to "no rule match", not
// to a validation failure, so catalog additions cannot break submissions.
func (q *Question) IsValidValue(raw string) bool {
	switch q.Type {
	case QuestionTypeYesNo:
		return raw == AnswerYes || raw == AnswerNo
	case QuestionTypeScale0To10:
		n, err := strconv.Atoi(raw)
		return err == nil && n >= 0 && n <= 10
	case QuestionTypeMultipleChoice:
		return raw != ""
	}
	return false
}

// HasOptionToken reports whether the question's option set declares token.
func (q *Question) HasOptionToken(token string) bool {
	for _, opt := range q.Options {
		if opt.Token == token {
			return true
		}
	}
	return false
}
