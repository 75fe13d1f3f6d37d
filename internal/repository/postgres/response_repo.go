package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
)

// ResponseRepo implements repository.ResponseRepository.
type ResponseRepo struct {
	db *gorm.DB
}

func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// CreateWithAnswers inserts the response and all its answers in one
// transaction. The uniq_response_user_quiz_day index is the authoritative
// one-per-day guard: two near-simultaneous submissions cannot both commit,
// and the loser surfaces as ErrConflict exactly like the service pre-check.
func (r *ResponseRepo) CreateWithAnswers(response *entity.Response, answers []entity.Answer) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}

		for i := range answers {
			answers[i].ResponseID = response.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: response already exists for user #%d, quiz #%d on %s",
				apperrors.ErrConflict, response.UserID, response.QuizID,
				response.ResponseDate.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to create response with answers: %w", err)
	}

	response.Answers = answers
	return nil
}

func (r *ResponseRepo) GetByID(id uint) (*entity.Response, error) {
	var response entity.Response
	err := r.db.Preload("Answers").First(&response, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get response #%d: %w", id, err)
	}
	return &response, nil
}

func (r *ResponseRepo) GetByUserQuizDate(userID, quizID uint, day time.Time) (*entity.Response, error) {
	var response entity.Response
	err := r.db.
		Preload("Answers").
		Where("user_id = ? AND quiz_id = ? AND response_date = ?",
			userID, quizID, day.Format("2006-01-02")).
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get response for user #%d, quiz #%d: %w", userID, quizID, err)
	}
	return &response, nil
}

func (r *ResponseRepo) GetHistory(userID uint, limit int) ([]entity.Response, error) {
	var responses []entity.Response
	query := r.db.
		Preload("Answers").
		Where("user_id = ?", userID).
		Order("response_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to get history for user #%d: %w", userID, err)
	}
	return responses, nil
}

func (r *ResponseRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Response{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ResponseRepo) GetResponseDates(userID uint, limit int) ([]time.Time, error) {
	var dates []time.Time
	query := r.db.Model(&entity.Response{}).
		Where("user_id = ?", userID).
		Order("response_date DESC").
		Distinct("response_date")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Pluck("response_date", &dates).Error; err != nil {
		return nil, fmt.Errorf("failed to get response dates for user #%d: %w", userID, err)
	}
	return dates, nil
}

func (r *ResponseRepo) HasForQuiz(quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Response{}).
		Where("quiz_id = ?", quizID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
