package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
)

// QuizRepo implements repository.QuizRepository.
type QuizRepo struct {
	db *gorm.DB
}

func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	return r.db.Save(quiz).Error
}

func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quiz #%d: %w", id, err)
	}
	return &quiz, nil
}

func (r *QuizRepo) GetActiveByPurpose(purpose string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Where("purpose = ? AND is_active = ?", purpose, true).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active quiz for purpose %s: %w", purpose, err)
	}
	return &quiz, nil
}

func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quiz #%d with questions: %w", id, err)
	}
	return &quiz, nil
}

func (r *QuizRepo) List(limit, offset int) ([]entity.Quiz, int64, error) {
	var quizzes []entity.Quiz
	var total int64

	if err := r.db.Model(&entity.Quiz{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

// Activate enforces the single-active-per-purpose invariant in one
// transaction: everything sharing the target's purpose is deactivated before
// the target is flipped on.
func (r *QuizRepo) Activate(quizID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var quiz entity.Quiz
		if err := tx.First(&quiz, quizID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&entity.Quiz{}).
			Where("purpose = ? AND id <> ?", quiz.Purpose, quizID).
			Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate sibling quizzes: %w", err)
		}

		return tx.Model(&entity.Quiz{}).
			Where("id = ?", quizID).
			Update("is_active", true).Error
	})
}

// Delete removes the quiz together with its questions and options. Cascades
// are performed explicitly here, never implicitly by the database; only
// administrative tooling calls this.
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&entity.Question{}).
			Where("quiz_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&entity.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).
				Delete(&entity.Question{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&entity.Quiz{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *QuizRepo) GetQuestion(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question #%d: %w", id, err)
	}
	return &question, nil
}

func (r *QuizRepo) CreateQuestion(question *entity.Question) error {
	return r.db.Create(question).Error
}

func (r *QuizRepo) UpdateQuestion(question *entity.Question) error {
	return r.db.Save(question).Error
}

func (r *QuizRepo) DeleteQuestion(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&entity.Option{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Question{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *QuizRepo) GetOption(id uint) (*entity.Option, error) {
	var option entity.Option
	err := r.db.First(&option, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get option #%d: %w", id, err)
	}
	return &option, nil
}

func (r *QuizRepo) CreateOption(option *entity.Option) error {
	err := r.db.Create(option).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: token %q already exists for question #%d",
			apperrors.ErrConflict, option.Token, option.QuestionID)
	}
	return err
}

func (r *QuizRepo) UpdateOption(option *entity.Option) error {
	err := r.db.Save(option).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("%w: token %q already exists for question #%d",
			apperrors.ErrConflict, option.Token, option.QuestionID)
	}
	return err
}

func (r *QuizRepo) DeleteOption(id uint) error {
	result := r.db.Delete(&entity.Option{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
