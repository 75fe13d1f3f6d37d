package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

func TestParseAnswerValue_YesNo(t *testing.T) {
	q := &entity.Question{ID: 1, Type: entity.QuestionTypeYesNo}

	yes, err := ParseAnswerValue(q, entity.AnswerYes)
	require.NoError(t, err)
	assert.Equal(t, KindYesNo, yes.Kind())
	assert.True(t, yes.IsYes())

	no, err := ParseAnswerValue(q, entity.AnswerNo)
	require.NoError(t, err)
	assert.False(t, no.IsYes())

	_, err = ParseAnswerValue(q, "yes")
	assert.Error(t, err, "lowercase values are outside the YES/NO domain")
}

func TestParseAnswerValue_Scale(t *testing.T) {
	q := &entity.Question{ID: 2, Type: entity.QuestionTypeScale0To10}

	v, err := ParseAnswerValue(q, "7")
	require.NoError(t, err)
	n, ok := v.ScaleValue()
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	for _, raw := range []string{"-1", "11", "3.5", ""} {
		_, err := ParseAnswerValue(q, raw)
		assert.Error(t, err, "value %q must be rejected", raw)
	}
}

func TestParseAnswerValue_Choice(t *testing.T) {
	q := &entity.Question{ID: 3, Type: entity.QuestionTypeMultipleChoice}

	v, err := ParseAnswerValue(q, TokenFatigueIntense)
	require.NoError(t, err)
	assert.Equal(t, KindChoice, v.Kind())
	assert.Equal(t, TokenFatigueIntense, v.Token())
	assert.True(t, v.Is(TokenFatigueIntense))
	assert.True(t, v.Is(TokenFatigueLight, TokenFatigueIntense))
	assert.False(t, v.Is(TokenFatigueLight))

	_, err = ParseAnswerValue(q, "")
	assert.Error(t, err)
}

func TestParseAnswerValue_UnknownQuestionType(t *testing.T) {
	q := &entity.Question{ID: 4, Type: "FREE_TEXT"}

	_, err := ParseAnswerValue(q, "anything")
	assert.Error(t, err)
}

func TestAnswerValue_KindMismatches(t *testing.T) {
	// Cross-kind queries always report "no match" instead of panicking.
	yes := YesNo(true)
	assert.False(t, yes.Is(TokenSafetyNo))
	assert.Empty(t, yes.Token())

	choice := Choice(TokenDiscomfortYes)
	assert.False(t, choice.IsYes())
	_, ok := choice.ScaleValue()
	assert.False(t, ok)

	scale := Scale(5)
	assert.False(t, scale.Is("5"))
	assert.False(t, scale.IsYes())
}

func TestAnswerValue_ZeroValueMatchesNothing(t *testing.T) {
	// The zero AnswerValue is what the engine sees for unanswered slots.
	var v AnswerValue
	assert.False(t, v.IsYes())
	assert.False(t, v.Is(TokenFatigueIntense, TokenPainStrong))
	assert.Empty(t, v.Token())
}
