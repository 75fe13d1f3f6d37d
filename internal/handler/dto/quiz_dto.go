package dto

import (
	"time"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

// OptionResponse represents an answer option in API responses.
type OptionResponse struct {
	ID           uint   `json:"id"`
	Token        string `json:"token"`
	Label        string `json:"label"`
	DisplayOrder int    `json:"display_order"`
}

// QuestionResponse represents a question in API responses.
type QuestionResponse struct {
	ID           uint             `json:"id"`
	QuizID       uint             `json:"quiz_id"`
	Text         string           `json:"text"`
	Type         string           `json:"type"`
	Role         string           `json:"role"`
	DisplayOrder int              `json:"display_order"`
	Options      []OptionResponse `json:"options,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// QuizResponse represents a questionnaire in API responses.
type QuizResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Purpose       string             `json:"purpose"`
	IsActive      bool               `json:"is_active"`
	QuestionCount int                `json:"question_count"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewOptionResponse creates a DTO for a single option.
func NewOptionResponse(o *entity.Option) OptionResponse {
	return OptionResponse{
		ID:           o.ID,
		Token:        o.Token,
		Label:        o.Label,
		DisplayOrder: o.DisplayOrder,
	}
}

// NewQuestionResponse creates a DTO for a question including its options.
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i := range q.Options {
		options[i] = NewOptionResponse(&q.Options[i])
	}
	return QuestionResponse{
		ID:           q.ID,
		QuizID:       q.QuizID,
		Text:         q.Text,
		Type:         q.Type,
		Role:         q.Role,
		DisplayOrder: q.DisplayOrder,
		Options:      options,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// NewQuizResponse creates a DTO for a questionnaire. Questions are included
// only when includeQuestions is set.
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) *QuizResponse {
	if quiz == nil {
		return nil
	}

	var questions []QuestionResponse
	if includeQuestions {
		questions = make([]QuestionResponse, len(quiz.Questions))
		for i := range quiz.Questions {
			questions[i] = NewQuestionResponse(&quiz.Questions[i])
		}
	}

	return &QuizResponse{
		ID:            quiz.ID,
		Name:          quiz.Name,
		Description:   quiz.Description,
		Purpose:       quiz.Purpose,
		IsActive:      quiz.IsActive,
		QuestionCount: len(quiz.Questions),
		Questions:     questions,
		CreatedAt:     quiz.CreatedAt,
		UpdatedAt:     quiz.UpdatedAt,
	}
}

// NewListQuizResponse creates DTOs for a list of questionnaires.
func NewListQuizResponse(quizzes []entity.Quiz) []*QuizResponse {
	out := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		out[i] = NewQuizResponse(&quizzes[i], false)
	}
	return out
}
