package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oncoliving/checkin-api/internal/checkin"
	"github.com/oncoliving/checkin-api/internal/domain/entity"
	"github.com/oncoliving/checkin-api/internal/domain/repository"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
)

const activeQuizCacheKeyPrefix = "catalog:active:"

// CatalogService owns quiz definitions: the active quiz per purpose slot,
// question/option administration, and the single-active-per-purpose
// invariant. The active quiz is served cache-aside from Redis because every
// check-in submission loads it.
type CatalogService struct {
	quizRepo     repository.QuizRepository
	responseRepo repository.ResponseRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

func NewCatalogService(
	quizRepo repository.QuizRepository,
	responseRepo repository.ResponseRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CatalogService{
		quizRepo:     quizRepo,
		responseRepo: responseRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// GetActiveQuiz returns the single active quiz for the purpose slot, with
// questions and options fully loaded. ErrNotFound means "no check-in
// available" and is an expected state, not a failure.
func (s *CatalogService) GetActiveQuiz(purpose string) (*entity.Quiz, error) {
	if !entity.IsValidPurpose(purpose) {
		return nil, fmt.Errorf("%w: unknown quiz purpose %q", apperrors.ErrValidation, purpose)
	}

	cacheKey := activeQuizCacheKeyPrefix + purpose
	if s.cacheRepo != nil {
		var cached entity.Quiz
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	active, err := s.quizRepo.GetActiveByPurpose(purpose)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizRepo.GetWithQuestions(active.ID)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, quiz, s.cacheTTL); err != nil {
			log.Printf("[CatalogService] Failed to cache active quiz for %s: %v", purpose, err)
		}
	}
	return quiz, nil
}

// GetQuizWithQuestions loads a quiz by id with questions in display order.
func (s *CatalogService) GetQuizWithQuestions(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// ListQuizzes returns a page of quiz definitions plus the total count.
func (s *CatalogService) ListQuizzes(limit, offset int) ([]entity.Quiz, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.quizRepo.List(limit, offset)
}

// CreateQuiz creates an inactive quiz definition.
func (s *CatalogService) CreateQuiz(name, description, purpose string, createdBy *uint) (*entity.Quiz, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: quiz name is required", apperrors.ErrValidation)
	}
	if !entity.IsValidPurpose(purpose) {
		return nil, fmt.Errorf("%w: unknown quiz purpose %q", apperrors.ErrValidation, purpose)
	}

	quiz := &entity.Quiz{
		Name:        name,
		Description: description,
		Purpose:     purpose,
		IsActive:    false,
		CreatedBy:   createdBy,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	return quiz, nil
}

// UpdateQuiz edits display fields of a quiz. nil means "leave unchanged".
func (s *CatalogService) UpdateQuiz(quizID uint, name, description *string) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if *name == "" {
			return nil, fmt.Errorf("%w: quiz name cannot be empty", apperrors.ErrValidation)
		}
		quiz.Name = *name
	}
	if description != nil {
		quiz.Description = *description
	}
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz #%d: %w", quizID, err)
	}
	s.invalidateActiveCache()
	return quiz, nil
}

// ActivateQuiz flips the quiz active, deactivating the previous active quiz
// of the same purpose in the same transaction.
func (s *CatalogService) ActivateQuiz(quizID uint) error {
	if err := s.quizRepo.Activate(quizID); err != nil {
		return err
	}
	s.invalidateActiveCache()
	return nil
}

// DeleteQuiz removes a quiz and its question tree. Refused once responses
// reference the quiz: historical answers must keep a valid target.
func (s *CatalogService) DeleteQuiz(quizID uint) error {
	has, err := s.responseRepo.HasForQuiz(quizID)
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: quiz #%d has responses and cannot be deleted", apperrors.ErrConflict, quizID)
	}
	if err := s.quizRepo.Delete(quizID); err != nil {
		return err
	}
	s.invalidateActiveCache()
	return nil
}

// AddQuestion appends a question to a quiz.
func (s *CatalogService) AddQuestion(quizID uint, text, questionType, role string, displayOrder int) (*entity.Question, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if !entity.IsValidType(questionType) {
		return nil, fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, questionType)
	}
	if !checkin.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown question role %q", apperrors.ErrValidation, role)
	}
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	question := &entity.Question{
		QuizID:       quizID,
		Text:         text,
		Type:         questionType,
		Role:         role,
		DisplayOrder: displayOrder,
	}
	if err := s.quizRepo.CreateQuestion(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	s.invalidateActiveCache()
	return question, nil
}

// UpdateQuestion edits a question. Changing the semantic role of a question
// on a quiz that already has responses is refused: the role is the contract
// the decision engine classifies by, and flipping it would silently change
// the clinical meaning of the slot.
func (s *CatalogService) UpdateQuestion(questionID uint, text, role *string, displayOrder *int) (*entity.Question, error) {
	question, err := s.quizRepo.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}

	if role != nil && *role != question.Role {
		if !checkin.IsValidRole(*role) {
			return nil, fmt.Errorf("%w: unknown question role %q", apperrors.ErrValidation, *role)
		}
		live, err := s.responseRepo.HasForQuiz(question.QuizID)
		if err != nil {
			return nil, err
		}
		if live {
			return nil, fmt.Errorf("%w: cannot change role of question #%d on a quiz with responses",
				apperrors.ErrConflict, questionID)
		}
		question.Role = *role
	}
	if text != nil {
		if *text == "" {
			return nil, fmt.Errorf("%w: question text cannot be empty", apperrors.ErrValidation)
		}
		question.Text = *text
	}
	if displayOrder != nil {
		question.DisplayOrder = *displayOrder
	}

	if err := s.quizRepo.UpdateQuestion(question); err != nil {
		return nil, fmt.Errorf("failed to update question #%d: %w", questionID, err)
	}
	s.invalidateActiveCache()
	return question, nil
}

// DeleteQuestion removes a question and its options.
func (s *CatalogService) DeleteQuestion(questionID uint) error {
	question, err := s.quizRepo.GetQuestion(questionID)
	if err != nil {
		return err
	}
	live, err := s.responseRepo.HasForQuiz(question.QuizID)
	if err != nil {
		return err
	}
	if live {
		return fmt.Errorf("%w: cannot delete question #%d from a quiz with responses",
			apperrors.ErrConflict, questionID)
	}
	if err := s.quizRepo.DeleteQuestion(questionID); err != nil {
		return err
	}
	s.invalidateActiveCache()
	return nil
}

// AddOption appends a fixed answer choice to a MULTIPLE_CHOICE question.
func (s *CatalogService) AddOption(questionID uint, token, label string, displayOrder int) (*entity.Option, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: option token is required", apperrors.ErrValidation)
	}
	if label == "" {
		return nil, fmt.Errorf("%w: option label is required", apperrors.ErrValidation)
	}
	question, err := s.quizRepo.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if question.Type != entity.QuestionTypeMultipleChoice {
		return nil, fmt.Errorf("%w: question #%d is %s and has no options",
			apperrors.ErrValidation, questionID, question.Type)
	}

	option := &entity.Option{
		QuestionID:   questionID,
		Token:        token,
		Label:        label,
		DisplayOrder: displayOrder,
	}
	if err := s.quizRepo.CreateOption(option); err != nil {
		return nil, err
	}
	s.invalidateActiveCache()
	return option, nil
}

// UpdateOption edits an option. Relabeling is always safe; changing the
// value token on a quiz that already has responses is refused because the
// token is the engine's matching contract and the raw value stored in
// historical answers.
func (s *CatalogService) UpdateOption(optionID uint, token, label *string, displayOrder *int) (*entity.Option, error) {
	option, err := s.quizRepo.GetOption(optionID)
	if err != nil {
		return nil, err
	}

	if token != nil && *token != option.Token {
		if *token == "" {
			return nil, fmt.Errorf("%w: option token cannot be empty", apperrors.ErrValidation)
		}
		question, err := s.quizRepo.GetQuestion(option.QuestionID)
		if err != nil {
			return nil, err
		}
		live, err := s.responseRepo.HasForQuiz(question.QuizID)
		if err != nil {
			return nil, err
		}
		if live {
			return nil, fmt.Errorf("%w: cannot change token of option #%d on a quiz with responses",
				apperrors.ErrConflict, optionID)
		}
		option.Token = *token
	}
	if label != nil {
		if *label == "" {
			return nil, fmt.Errorf("%w: option label cannot be empty", apperrors.ErrValidation)
		}
		option.Label = *label
	}
	if displayOrder != nil {
		option.DisplayOrder = *displayOrder
	}

	if err := s.quizRepo.UpdateOption(option); err != nil {
		return nil, err
	}
	s.invalidateActiveCache()
	return option, nil
}

// DeleteOption removes an option.
func (s *CatalogService) DeleteOption(optionID uint) error {
	option, err := s.quizRepo.GetOption(optionID)
	if err != nil {
		return err
	}
	question, err := s.quizRepo.GetQuestion(option.QuestionID)
	if err != nil {
		return err
	}
	live, err := s.responseRepo.HasForQuiz(question.QuizID)
	if err != nil {
		return err
	}
	if live {
		return fmt.Errorf("%w: cannot delete option #%d from a quiz with responses",
			apperrors.ErrConflict, optionID)
	}
	if err := s.quizRepo.DeleteOption(optionID); err != nil {
		return err
	}
	s.invalidateActiveCache()
	return nil
}

// invalidateActiveCache drops the cached active quiz for both purpose slots.
// There are exactly two; blanket invalidation is simpler than tracking which
// slot a nested mutation touched.
func (s *CatalogService) invalidateActiveCache() {
	if s.cacheRepo == nil {
		return
	}
	for _, purpose := range []string{entity.QuizPurposeDailyCheckin, entity.QuizPurposeInitialAssessment} {
		if err := s.cacheRepo.Delete(activeQuizCacheKeyPrefix + purpose); err != nil &&
			!errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[CatalogService] Failed to invalidate active quiz cache for %s: %v", purpose, err)
		}
	}
}
