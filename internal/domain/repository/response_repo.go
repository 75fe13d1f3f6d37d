package repository

import (
	"time"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

// ResponseRepository defines persistence for submitted check-ins.
type ResponseRepository interface {
	// CreateWithAnswers persists the response and its answers as a single
	// transaction; a partial write must never be observable. A violation of
	// the (user, quiz, day) unique index is returned as ErrConflict — this
	// is the authoritative one-per-day guarantee, the service-level
	// existence check is only a fast path.
	CreateWithAnswers(response *entity.Response, answers []entity.Answer) error
	GetByID(id uint) (*entity.Response, error)
	// GetByUserQuizDate returns the response for a calendar day (date
	// truncated), ErrNotFound when the user has not checked in.
	GetByUserQuizDate(userID, quizID uint, day time.Time) (*entity.Response, error)
	// GetHistory returns responses with answers, newest first.
	GetHistory(userID uint, limit int) ([]entity.Response, error)
	CountByUser(userID uint) (int64, error)
	// GetResponseDates returns distinct check-in dates, newest first.
	GetResponseDates(userID uint, limit int) ([]time.Time, error)
	// HasForQuiz reports whether any response references the quiz; used by
	// the catalog to freeze semantic fields of live quizzes.
	HasForQuiz(quizID uint) (bool, error)
}
