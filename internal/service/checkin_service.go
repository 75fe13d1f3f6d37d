package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/oncoliving/checkin-api/internal/checkin"
	"github.com/oncoliving/checkin-api/internal/domain/entity"
	"github.com/oncoliving/checkin-api/internal/domain/repository"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
)

const defaultHistoryLimit = 30

// SubmittedAnswer is one raw answer of a submission as received from the
// caller.
type SubmittedAnswer struct {
	QuestionID uint
	Value      string
}

// CheckinService is the submission orchestrator: it enforces the one-per-day
// rule, validates the answer set, runs the decision engine and persists the
// outcome atomically. The calendar day is computed in the clinic's timezone,
// not the server's.
type CheckinService struct {
	quizRepo     repository.QuizRepository
	responseRepo repository.ResponseRepository
	cacheRepo    repository.CacheRepository
	location     *time.Location
	todayTTL     time.Duration
}

func NewCheckinService(
	quizRepo repository.QuizRepository,
	responseRepo repository.ResponseRepository,
	cacheRepo repository.CacheRepository,
	location *time.Location,
	todayTTL time.Duration,
) *CheckinService {
	if location == nil {
		location = time.UTC
	}
	if todayTTL <= 0 {
		todayTTL = 10 * time.Minute
	}
	return &CheckinService{
		quizRepo:     quizRepo,
		responseRepo: responseRepo,
		cacheRepo:    cacheRepo,
		location:     location,
		todayTTL:     todayTTL,
	}
}

// SubmitDaily validates and records one check-in, returning the computed
// response for immediate display.
//
// Failure modes: ErrNotFound (quiz does not exist), ErrValidation (duplicate
// answer rows, missing answers, out-of-domain values), ErrConflict (already
// submitted today — from the fast pre-check or from the unique index when two
// submissions race).
func (s *CheckinService) SubmitDaily(ctx context.Context, userID, quizID uint, answers []SubmittedAnswer, observations string) (*entity.Response, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	rawAnswers := make(map[uint]string, len(answers))
	for _, a := range answers {
		if _, dup := rawAnswers[a.QuestionID]; dup {
			return nil, fmt.Errorf("%w: duplicate answer for question #%d", apperrors.ErrValidation, a.QuestionID)
		}
		rawAnswers[a.QuestionID] = a.Value
	}

	if problems := checkin.ValidateSubmission(quiz.Questions, rawAnswers); len(problems) > 0 {
		details := make([]string, len(problems))
		for i, p := range problems {
			details[i] = p.String()
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(details, "; "))
	}

	today := s.today()

	// Fast path for the common duplicate case; the unique index below is the
	// actual guarantee under concurrency.
	if _, err := s.responseRepo.GetByUserQuizDate(userID, quizID, today); err == nil {
		return nil, fmt.Errorf("%w: already checked in today", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	var outcome checkin.Outcome
	if quiz.IsInitialAssessment() {
		outcome = checkin.NeutralAssessmentOutcome()
	} else {
		outcome = checkin.Evaluate(quiz.Questions, rawAnswers)
		if len(outcome.UnknownTokens) > 0 {
			// Catalog and engine have drifted apart; the submission still
			// succeeds but an operator should review the rules.
			log.Printf("[CheckinService] Unrecognized option tokens for quiz #%d, user #%d: %s",
				quizID, userID, strings.Join(outcome.UnknownTokens, ", "))
		}
	}

	response := &entity.Response{
		UserID:                  userID,
		QuizID:                  quizID,
		ResponseDate:            today,
		TotalScore:              outcome.TotalScore,
		IsGoodDayForExercise:    outcome.IsGoodDayForExercise,
		RecommendedExerciseType: outcome.RecommendedExerciseType,
		Classification:          string(outcome.Classification),
		GeneralObservations:     observations,
		QuizSnapshot:            buildSnapshot(quiz),
	}

	answerRows := make([]entity.Answer, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		answerRows = append(answerRows, entity.Answer{
			QuestionID: q.ID,
			Value:      rawAnswers[q.ID],
		})
	}

	if err := s.responseRepo.CreateWithAnswers(response, answerRows); err != nil {
		return nil, err
	}

	s.cacheToday(userID, quizID, today, response)
	return response, nil
}

// GetToday returns today's response for a user, ErrNotFound when not yet
// submitted. Idempotent: the stored response is returned as-is, nothing is
// recomputed.
func (s *CheckinService) GetToday(ctx context.Context, userID, quizID uint) (*entity.Response, error) {
	today := s.today()

	if s.cacheRepo != nil {
		var cached entity.Response
		if err := s.cacheRepo.GetJSON(s.todayCacheKey(userID, quizID, today), &cached); err == nil {
			return &cached, nil
		}
	}

	response, err := s.responseRepo.GetByUserQuizDate(userID, quizID, today)
	if err != nil {
		return nil, err
	}

	s.cacheToday(userID, quizID, today, response)
	return response, nil
}

// GetHistory returns the user's responses, newest first.
func (s *CheckinService) GetHistory(ctx context.Context, userID uint, limit int) ([]entity.Response, error) {
	if limit <= 0 || limit > 365 {
		limit = defaultHistoryLimit
	}
	return s.responseRepo.GetHistory(userID, limit)
}

// today truncates the current time to a calendar day in the configured
// timezone.
func (s *CheckinService) today() time.Time {
	now := time.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *CheckinService) todayCacheKey(userID, quizID uint, day time.Time) string {
	return fmt.Sprintf("checkin:today:%d:%d:%s", userID, quizID, day.Format("2006-01-02"))
}

func (s *CheckinService) cacheToday(userID, quizID uint, day time.Time, response *entity.Response) {
	if s.cacheRepo == nil {
		return
	}
	key := s.todayCacheKey(userID, quizID, day)
	if err := s.cacheRepo.SetJSON(key, response, s.todayTTL); err != nil {
		log.Printf("[CheckinService] Failed to cache today's response %s: %v", key, err)
	}
}

// buildSnapshot freezes the question/option set the submission was answered
// against, so the historical record stays meaningful even if the catalog is
// edited later.
func buildSnapshot(quiz *entity.Quiz) entity.QuizSnapshot {
	snapshot := make(entity.QuizSnapshot, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		sq := entity.SnapshotQuestion{
			ID:           q.ID,
			Role:         q.Role,
			Type:         q.Type,
			Text:         q.Text,
			DisplayOrder: q.DisplayOrder,
		}
		for _, opt := range q.Options {
			sq.Options = append(sq.Options, entity.SnapshotOption{
				ID:    opt.ID,
				Token: opt.Token,
				Label: opt.Label,
			})
		}
		snapshot = append(snapshot, sq)
	}
	return snapshot
}
