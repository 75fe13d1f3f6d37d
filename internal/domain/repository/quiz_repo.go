package repository

import (
	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

// QuizRepository defines persistence for the quiz catalog.
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	Update(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetActiveByPurpose returns the single quiz flagged active for the
	// purpose slot, without questions. ErrNotFound when none is active.
	GetActiveByPurpose(purpose string) (*entity.Quiz, error)
	// GetWithQuestions loads the quiz with questions in ascending display
	// order, each with its options in ascending display order.
	GetWithQuestions(id uint) (*entity.Quiz, error)
	List(limit, offset int) ([]entity.Quiz, int64, error)
	// Activate atomically deactivates all quizzes sharing the target's
	// purpose and activates the target, so at most one quiz per purpose is
	// active at any time.
	Activate(quizID uint) error
	Delete(id uint) error

	GetQuestion(id uint) (*entity.Question, error)
	CreateQuestion(question *entity.Question) error
	UpdateQuestion(question *entity.Question) error
	DeleteQuestion(id uint) error

	GetOption(id uint) (*entity.Option, error)
	CreateOption(option *entity.Option) error
	UpdateOption(option *entity.Option) error
	DeleteOption(id uint) error
}
