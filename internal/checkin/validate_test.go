package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

func TestValidateSubmission_CompleteAndWellTyped(t *testing.T) {
	problems := ValidateSubmission(dailyQuestions(), benignAnswers())

	assert.Nil(t, problems)
}

func TestValidateSubmission_MissingAnswer(t *testing.T) {
	// Arrange
	answers := benignAnswers()
	delete(answers, 3)

	// Act
	problems := ValidateSubmission(dailyQuestions(), answers)

	// Assert
	require.Len(t, problems, 1)
	assert.Equal(t, uint(3), problems[0].QuestionID)
	assert.Contains(t, problems[0].Reason, "missing")
}

func TestValidateSubmission_UnknownQuestionID(t *testing.T) {
	answers := benignAnswers()
	answers[99] = "whatever"

	problems := ValidateSubmission(dailyQuestions(), answers)

	require.Len(t, problems, 1)
	assert.Equal(t, uint(99), problems[0].QuestionID)
	assert.Contains(t, problems[0].Reason, "does not belong")
}

func TestValidateSubmission_OutOfDomainValues(t *testing.T) {
	cases := []struct {
		name       string
		questionID uint
		value      string
	}{
		{"yes/no slot with arbitrary text", 9, "MAYBE"},
		{"empty choice token", 4, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			answers := benignAnswers()
			answers[tc.questionID] = tc.value

			problems := ValidateSubmission(dailyQuestions(), answers)

			require.Len(t, problems, 1)
			assert.Equal(t, tc.questionID, problems[0].QuestionID)
			assert.Contains(t, problems[0].Reason, "domain")
		})
	}
}

func TestValidateSubmission_UnrecognizedTokenIsAccepted(t *testing.T) {
	// Token recognition is the engine's concern, not the validator's: a
	// type-correct but unknown option token must not fail the submission.
	answers := benignAnswers()
	answers[2] = "FATIGUE_FUTURE_LEVEL"

	problems := ValidateSubmission(dailyQuestions(), answers)

	assert.Nil(t, problems)
}

func TestValidateSubmission_ScaleDomain(t *testing.T) {
	questions := []entity.Question{
		{ID: 1, Text: "q", Type: entity.QuestionTypeScale0To10, Role: string(RoleNone)},
	}

	assert.Nil(t, ValidateSubmission(questions, map[uint]string{1: "0"}))
	assert.Nil(t, ValidateSubmission(questions, map[uint]string{1: "10"}))
	assert.Len(t, ValidateSubmission(questions, map[uint]string{1: "11"}), 1)
	assert.Len(t, ValidateSubmission(questions, map[uint]string{1: "-1"}), 1)
	assert.Len(t, ValidateSubmission(questions, map[uint]string{1: "five"}), 1)
}

func TestValidateSubmission_MultipleProblemsAreAllReported(t *testing.T) {
	answers := benignAnswers()
	delete(answers, 1)
	answers[9] = "MAYBE"
	answers[42] = "X"

	problems := ValidateSubmission(dailyQuestions(), answers)

	assert.Len(t, problems, 3)
}
