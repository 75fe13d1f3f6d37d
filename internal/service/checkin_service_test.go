package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oncoliving/checkin-api/internal/checkin"
	"github.com/oncoliving/checkin-api/internal/domain/entity"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
)

// ============================================================================
// Mocks shared by the service tests
// ============================================================================

// MockQuizRepo implements repository.QuizRepository
type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetActiveByPurpose(purpose string) (*entity.Quiz, error) {
	args := m.Called(purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) List(limit, offset int) ([]entity.Quiz, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]entity.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepo) Activate(quizID uint) error {
	args := m.Called(quizID)
	return args.Error(0)
}

func (m *MockQuizRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuizRepo) GetQuestion(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuizRepo) CreateQuestion(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuizRepo) UpdateQuestion(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuizRepo) DeleteQuestion(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuizRepo) GetOption(id uint) (*entity.Option, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Option), args.Error(1)
}

func (m *MockQuizRepo) CreateOption(option *entity.Option) error {
	args := m.Called(option)
	return args.Error(0)
}

func (m *MockQuizRepo) UpdateOption(option *entity.Option) error {
	args := m.Called(option)
	return args.Error(0)
}

func (m *MockQuizRepo) DeleteOption(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockResponseRepo implements repository.ResponseRepository
type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) CreateWithAnswers(response *entity.Response, answers []entity.Answer) error {
	args := m.Called(response, answers)
	return args.Error(0)
}

func (m *MockResponseRepo) GetByID(id uint) (*entity.Response, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Response), args.Error(1)
}

func (m *MockResponseRepo) GetByUserQuizDate(userID, quizID uint, day time.Time) (*entity.Response, error) {
	args := m.Called(userID, quizID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Response), args.Error(1)
}

func (m *MockResponseRepo) GetHistory(userID uint, limit int) ([]entity.Response, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Response), args.Error(1)
}

func (m *MockResponseRepo) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepo) GetResponseDates(userID uint, limit int) ([]time.Time, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockResponseRepo) HasForQuiz(quizID uint) (bool, error) {
	args := m.Called(quizID)
	return args.Bool(0), args.Error(1)
}

// MockCacheRepo implements repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

// ============================================================================
// Fixtures
// ============================================================================

// dailyQuiz builds an active DAILY_CHECKIN quiz with the full role set.
func dailyQuiz() *entity.Quiz {
	mc := func(id uint, role checkin.Role, tokens ...string) entity.Question {
		q := entity.Question{
			ID:     id,
			QuizID: 1,
			Text:   "q",
			Type:   entity.QuestionTypeMultipleChoice,
			Role:   string(role),
		}
		for i, token := range tokens {
			q.Options = append(q.Options, entity.Option{
				ID:         id*10 + uint(i),
				QuestionID: id,
				Token:      token,
				Label:      token,
			})
		}
		return q
	}
	yn := func(id uint, role checkin.Role) entity.Question {
		return entity.Question{ID: id, QuizID: 1, Text: "q", Type: entity.QuestionTypeYesNo, Role: string(role)}
	}

	return &entity.Quiz{
		ID:       1,
		Name:     "Check-in Diario",
		Purpose:  entity.QuizPurposeDailyCheckin,
		IsActive: true,
		Questions: []entity.Question{
			mc(1, checkin.RoleEnergy, checkin.TokenEnergyGood, checkin.TokenEnergyMedium, checkin.TokenEnergyExhausted),
			mc(2, checkin.RoleFatigue, checkin.TokenFatigueLight, checkin.TokenFatigueModerate, checkin.TokenFatigueIntense),
			mc(3, checkin.RolePain, checkin.TokenPainNone, checkin.TokenPainModerate, checkin.TokenPainStrong),
			mc(4, checkin.RoleSymptoms, checkin.TokenSymptomsNone, checkin.TokenSymptomsNausea, checkin.TokenSymptomsMultiple),
			mc(5, checkin.RoleTreatmentDay, checkin.TokenTreatmentNone, checkin.TokenTreatmentChemo),
			mc(6, checkin.RoleSleep, checkin.TokenSleepGood, checkin.TokenSleepMeh, checkin.TokenSleepBad),
			mc(7, checkin.RoleEmotional, checkin.TokenEmotionalWell, checkin.TokenEmotionalAnxious, checkin.TokenEmotionalVeryShaken),
			mc(8, checkin.RoleSafety, checkin.TokenSafetyYes, checkin.TokenSafetySomewhat, checkin.TokenSafetyNo),
			yn(9, checkin.RoleDiscomfort),
			yn(10, checkin.RoleConsultInterest),
		},
	}
}

func benignSubmission() []SubmittedAnswer {
	return []SubmittedAnswer{
		{QuestionID: 1, Value: checkin.TokenEnergyGood},
		{QuestionID: 2, Value: checkin.TokenFatigueLight},
		{QuestionID: 3, Value: checkin.TokenPainNone},
		{QuestionID: 4, Value: checkin.TokenSymptomsNone},
		{QuestionID: 5, Value: checkin.TokenTreatmentNone},
		{QuestionID: 6, Value: checkin.TokenSleepGood},
		{QuestionID: 7, Value: checkin.TokenEmotionalWell},
		{QuestionID: 8, Value: checkin.TokenSafetyYes},
		{QuestionID: 9, Value: entity.AnswerNo},
		{QuestionID: 10, Value: entity.AnswerNo},
	}
}

// ============================================================================
// SubmitDaily
// ============================================================================

func TestCheckinService_SubmitDaily_Success(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)
	mockCacheRepo := new(MockCacheRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(dailyQuiz(), nil)
	mockResponseRepo.On("GetByUserQuizDate", uint(42), uint(1), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)
	mockResponseRepo.On("CreateWithAnswers", mock.AnythingOfType("*entity.Response"), mock.AnythingOfType("[]entity.Answer")).
		Return(nil)
	mockCacheRepo.On("SetJSON", mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("time.Duration")).
		Return(nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, mockCacheRepo, time.UTC, 10*time.Minute)

	// Act
	response, err := svc.SubmitDaily(context.Background(), 42, 1, benignSubmission(), "slept well")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(checkin.ClassificationTrain), response.Classification)
	assert.True(t, response.IsGoodDayForExercise)
	assert.Equal(t, checkin.ScoreTrain, response.TotalScore)
	assert.Equal(t, "slept well", response.GeneralObservations)
	assert.Len(t, response.QuizSnapshot, 10, "snapshot must freeze every question")
	mockResponseRepo.AssertExpectations(t)
	mockCacheRepo.AssertExpectations(t)
}

func TestCheckinService_SubmitDaily_RedFlagClassifiesRecover(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(dailyQuiz(), nil)
	mockResponseRepo.On("GetByUserQuizDate", uint(42), uint(1), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)
	mockResponseRepo.On("CreateWithAnswers", mock.AnythingOfType("*entity.Response"), mock.AnythingOfType("[]entity.Answer")).
		Return(nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	answers := benignSubmission()
	answers[1].Value = checkin.TokenFatigueIntense

	// Act
	response, err := svc.SubmitDaily(context.Background(), 42, 1, answers, "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(checkin.ClassificationRecover), response.Classification)
	assert.False(t, response.IsGoodDayForExercise)
}

func TestCheckinService_SubmitDaily_AlreadyCheckedInToday(t *testing.T) {
	// Arrange: the fast pre-check finds an existing response
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(dailyQuiz(), nil)
	mockResponseRepo.On("GetByUserQuizDate", uint(42), uint(1), mock.AnythingOfType("time.Time")).
		Return(&entity.Response{ID: 7, UserID: 42, QuizID: 1}, nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	// Act
	_, err := svc.SubmitDaily(context.Background(), 42, 1, benignSubmission(), "")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockResponseRepo.AssertNotCalled(t, "CreateWithAnswers", mock.Anything, mock.Anything)
}

func TestCheckinService_SubmitDaily_RaceLosesToUniqueIndex(t *testing.T) {
	// Arrange: the pre-check sees nothing, but the insert hits the
	// (user, quiz, day) unique index
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(dailyQuiz(), nil)
	mockResponseRepo.On("GetByUserQuizDate", uint(42), uint(1), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)
	mockResponseRepo.On("CreateWithAnswers", mock.AnythingOfType("*entity.Response"), mock.AnythingOfType("[]entity.Answer")).
		Return(fmt.Errorf("%w: response already exists for user 42", apperrors.ErrConflict))

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	// Act
	_, err := svc.SubmitDaily(context.Background(), 42, 1, benignSubmission(), "")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCheckinService_SubmitDaily_MissingAnswer(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(dailyQuiz(), nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	answers := benignSubmission()[:9] // consult-interest slot left unanswered

	// Act
	_, err := svc.SubmitDaily(context.Background(), 42, 1, answers, "")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "question #10")
	mockResponseRepo.AssertNotCalled(t, "CreateWithAnswers", mock.Anything, mock.Anything)
}

func TestCheckinService_SubmitDaily_DuplicateAnswerRows(t *testing.T) {
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockQuizRepo.On("GetWithQuestions", uint(1)).Return(dailyQuiz(), nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	answers := append(benignSubmission(), SubmittedAnswer{QuestionID: 1, Value: checkin.TokenEnergyMedium})

	_, err := svc.SubmitDaily(context.Background(), 42, 1, answers, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "duplicate answer")
}

func TestCheckinService_SubmitDaily_QuizNotFound(t *testing.T) {
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockQuizRepo.On("GetWithQuestions", uint(99)).Return(nil, fmt.Errorf("%w: quiz with ID 99", apperrors.ErrNotFound))

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	_, err := svc.SubmitDaily(context.Background(), 42, 99, benignSubmission(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCheckinService_SubmitDaily_InitialAssessmentIsNeutral(t *testing.T) {
	// Arrange: an assessment quiz with profiling questions only
	assessment := &entity.Quiz{
		ID:       2,
		Name:     "Avaliacao Inicial",
		Purpose:  entity.QuizPurposeInitialAssessment,
		IsActive: true,
		Questions: []entity.Question{
			{ID: 21, QuizID: 2, Text: "q", Type: entity.QuestionTypeScale0To10, Role: string(checkin.RoleNone)},
			{ID: 22, QuizID: 2, Text: "q", Type: entity.QuestionTypeYesNo, Role: string(checkin.RoleNone)},
		},
	}

	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockQuizRepo.On("GetWithQuestions", uint(2)).Return(assessment, nil)
	mockResponseRepo.On("GetByUserQuizDate", uint(42), uint(2), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)
	mockResponseRepo.On("CreateWithAnswers", mock.AnythingOfType("*entity.Response"), mock.AnythingOfType("[]entity.Answer")).
		Return(nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	answers := []SubmittedAnswer{
		{QuestionID: 21, Value: "8"},
		{QuestionID: 22, Value: entity.AnswerYes},
	}

	// Act
	response, err := svc.SubmitDaily(context.Background(), 42, 2, answers, "")

	// Assert: recorded for profiling, no safety classification
	require.NoError(t, err)
	assert.Equal(t, string(checkin.ClassificationAssessment), response.Classification)
	assert.True(t, response.IsGoodDayForExercise)
	assert.Equal(t, checkin.ScoreAssessment, response.TotalScore)
}

// ============================================================================
// GetToday
// ============================================================================

func TestCheckinService_GetToday_CacheHit(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)
	mockCacheRepo := new(MockCacheRepo)

	cached := entity.Response{ID: 7, UserID: 42, QuizID: 1, Classification: string(checkin.ClassificationAdapt)}
	mockCacheRepo.On("GetJSON", mock.AnythingOfType("string"), mock.AnythingOfType("*entity.Response")).
		Run(func(args mock.Arguments) {
			*args.Get(1).(*entity.Response) = cached
		}).
		Return(nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, mockCacheRepo, time.UTC, 10*time.Minute)

	// Act
	response, err := svc.GetToday(context.Background(), 42, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(7), response.ID)
	mockResponseRepo.AssertNotCalled(t, "GetByUserQuizDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckinService_GetToday_CacheMissFallsBackToDB(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)
	mockCacheRepo := new(MockCacheRepo)

	stored := &entity.Response{ID: 7, UserID: 42, QuizID: 1}
	mockCacheRepo.On("GetJSON", mock.AnythingOfType("string"), mock.AnythingOfType("*entity.Response")).
		Return(apperrors.ErrNotFound)
	mockResponseRepo.On("GetByUserQuizDate", uint(42), uint(1), mock.AnythingOfType("time.Time")).
		Return(stored, nil)
	mockCacheRepo.On("SetJSON", mock.AnythingOfType("string"), stored, 10*time.Minute).Return(nil)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, mockCacheRepo, time.UTC, 10*time.Minute)

	// Act
	response, err := svc.GetToday(context.Background(), 42, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(7), response.ID)
	mockCacheRepo.AssertExpectations(t)
}

func TestCheckinService_GetToday_NotSubmittedYet(t *testing.T) {
	mockQuizRepo := new(MockQuizRepo)
	mockResponseRepo := new(MockResponseRepo)

	mockResponseRepo.On("GetByUserQuizDate", uint(42), uint(1), mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)

	svc := NewCheckinService(mockQuizRepo, mockResponseRepo, nil, time.UTC, 0)

	_, err := svc.GetToday(context.Background(), 42, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
