package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

// dailyQuestions builds the standard daily check-in question list with
// stable ids (1..10) for use in engine tests.
func dailyQuestions() []entity.Question {
	mc := func(id uint, role Role, tokens ...string) entity.Question {
		q := entity.Question{
			ID:   id,
			Text: "q",
			Type: entity.QuestionTypeMultipleChoice,
			Role: string(role),
		}
		for i, token := range tokens {
			q.Options = append(q.Options, entity.Option{
				ID:           id*10 + uint(i),
				QuestionID:   id,
				Token:        token,
				Label:        token,
				DisplayOrder: i,
			})
		}
		return q
	}
	yn := func(id uint, role Role) entity.Question {
		return entity.Question{
			ID:   id,
			Text: "q",
			Type: entity.QuestionTypeYesNo,
			Role: string(role),
		}
	}

	return []entity.Question{
		mc(1, RoleEnergy, TokenEnergyGood, TokenEnergyMedium, TokenEnergyExhausted),
		mc(2, RoleFatigue, TokenFatigueLight, TokenFatigueModerate, TokenFatigueIntense),
		mc(3, RolePain, TokenPainNone, TokenPainModerate, TokenPainStrong),
		mc(4, RoleSymptoms, TokenSymptomsNone, TokenSymptomsNausea, TokenSymptomsDizziness, TokenSymptomsFever, TokenSymptomsMultiple),
		mc(5, RoleTreatmentDay, TokenTreatmentNone, TokenTreatmentChemo, TokenTreatmentRadio, TokenTreatmentHormone, TokenTreatmentPostSurgical),
		mc(6, RoleSleep, TokenSleepGood, TokenSleepMeh, TokenSleepBad),
		mc(7, RoleEmotional, TokenEmotionalWell, TokenEmotionalAnxious, TokenEmotionalSad, TokenEmotionalVeryShaken),
		mc(8, RoleSafety, TokenSafetyYes, TokenSafetySomewhat, TokenSafetyUnsure, TokenSafetyNo),
		yn(9, RoleDiscomfort),
		yn(10, RoleConsultInterest),
	}
}

// benignAnswers is a full answer set that classifies as TRAIN.
func benignAnswers() map[uint]string {
	return map[uint]string{
		1:  TokenEnergyGood,
		2:  TokenFatigueLight,
		3:  TokenPainNone,
		4:  TokenSymptomsNone,
		5:  TokenTreatmentNone,
		6:  TokenSleepGood,
		7:  TokenEmotionalWell,
		8:  TokenSafetyYes,
		9:  entity.AnswerNo,
		10: entity.AnswerNo,
	}
}

func TestEvaluate_AllBenignAnswersTrain(t *testing.T) {
	// Act
	outcome := Evaluate(dailyQuestions(), benignAnswers())

	// Assert
	assert.Equal(t, ClassificationTrain, outcome.Classification)
	assert.True(t, outcome.IsGoodDayForExercise)
	assert.Equal(t, ScoreTrain, outcome.TotalScore)
	assert.Equal(t, RecommendationTrain, outcome.RecommendedExerciseType)
	assert.Empty(t, outcome.UnknownTokens)
}

func TestEvaluate_SingleRedFlagDominates(t *testing.T) {
	redFlags := []struct {
		name       string
		questionID uint
		value      string
	}{
		{"intense fatigue", 2, TokenFatigueIntense},
		{"strong pain", 3, TokenPainStrong},
		{"exhausted", 1, TokenEnergyExhausted},
		{"feels unsafe", 8, TokenSafetyNo},
		{"unsure about safety", 8, TokenSafetyUnsure},
		{"very shaken", 7, TokenEmotionalVeryShaken},
		{"discomfort during exercise", 9, entity.AnswerYes},
	}

	for _, tc := range redFlags {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange: everything benign except one red flag
			answers := benignAnswers()
			answers[tc.questionID] = tc.value

			// Act
			outcome := Evaluate(dailyQuestions(), answers)

			// Assert
			assert.Equal(t, ClassificationRecover, outcome.Classification)
			assert.False(t, outcome.IsGoodDayForExercise)
			assert.Equal(t, ScoreRecover, outcome.TotalScore)
			assert.Equal(t, RecommendationRecover, outcome.RecommendedExerciseType)
		})
	}
}

func TestEvaluate_ModerateSignalsAdapt(t *testing.T) {
	moderate := []struct {
		name       string
		questionID uint
		value      string
	}{
		{"moderate fatigue", 2, TokenFatigueModerate},
		{"moderate pain", 3, TokenPainModerate},
		{"chemo day", 5, TokenTreatmentChemo},
		{"radio day", 5, TokenTreatmentRadio},
		{"hormone therapy day", 5, TokenTreatmentHormone},
		{"post-surgical", 5, TokenTreatmentPostSurgical},
		{"slept so-so", 6, TokenSleepMeh},
		{"slept badly", 6, TokenSleepBad},
		{"anxious", 7, TokenEmotionalAnxious},
		{"sad", 7, TokenEmotionalSad},
		{"somewhat safe", 8, TokenSafetySomewhat},
		{"nausea", 4, TokenSymptomsNausea},
		{"dizziness", 4, TokenSymptomsDizziness},
		{"fever", 4, TokenSymptomsFever},
		{"multiple symptoms", 4, TokenSymptomsMultiple},
	}

	for _, tc := range moderate {
		t.Run(tc.name, func(t *testing.T) {
			answers := benignAnswers()
			answers[tc.questionID] = tc.value

			outcome := Evaluate(dailyQuestions(), answers)

			assert.Equal(t, ClassificationAdapt, outcome.Classification)
			assert.True(t, outcome.IsGoodDayForExercise)
			assert.Equal(t, ScoreAdapt, outcome.TotalScore)
		})
	}
}

func TestEvaluate_RecoverBeatsAdapt(t *testing.T) {
	// Arrange: both a red flag and several moderate signals
	answers := benignAnswers()
	answers[2] = TokenFatigueIntense
	answers[3] = TokenPainModerate
	answers[5] = TokenTreatmentChemo
	answers[6] = TokenSleepBad

	// Act
	outcome := Evaluate(dailyQuestions(), answers)

	// Assert: the red flag wins no matter how many moderate signals fire
	assert.Equal(t, ClassificationRecover, outcome.Classification)
	assert.False(t, outcome.IsGoodDayForExercise)
}

func TestEvaluate_UnknownTokenFallsThroughToTrain(t *testing.T) {
	// Arrange: a fatigue token the engine has never heard of
	answers := benignAnswers()
	answers[2] = "FATIGUE_FUTURE_LEVEL"

	// Act
	outcome := Evaluate(dailyQuestions(), answers)

	// Assert: no rule matches, everything else is benign
	assert.Equal(t, ClassificationTrain, outcome.Classification)
	require.Len(t, outcome.UnknownTokens, 1)
	assert.Equal(t, "FATIGUE=FATIGUE_FUTURE_LEVEL", outcome.UnknownTokens[0])
}

func TestEvaluate_UnknownSymptomTokenStillCountsAsSymptom(t *testing.T) {
	// Any non-sentinel symptom token matches the symptom rule, including
	// tokens added to the catalog after the engine was built.
	answers := benignAnswers()
	answers[4] = "SYM_NOVO_SINTOMA"

	outcome := Evaluate(dailyQuestions(), answers)

	assert.Equal(t, ClassificationAdapt, outcome.Classification)
	assert.Contains(t, outcome.UnknownTokens, "SYMPTOMS=SYM_NOVO_SINTOMA")
}

func TestEvaluate_MissingAnswersAreNoMatch(t *testing.T) {
	// Arrange: only the symptoms slot answered, benignly
	answers := map[uint]string{4: TokenSymptomsNone}

	// Act
	outcome := Evaluate(dailyQuestions(), answers)

	// Assert: unanswered slots never fire a rule
	assert.Equal(t, ClassificationTrain, outcome.Classification)
}

func TestEvaluate_QuestionOrderDoesNotMatter(t *testing.T) {
	// Arrange: same questions in reverse display order
	questions := dailyQuestions()
	reversed := make([]entity.Question, len(questions))
	for i := range questions {
		reversed[len(questions)-1-i] = questions[i]
	}
	answers := benignAnswers()
	answers[3] = TokenPainStrong

	// Act
	forward := Evaluate(questions, answers)
	backward := Evaluate(reversed, answers)

	// Assert: role-based addressing is independent of question position
	assert.Equal(t, forward, backward)
	assert.Equal(t, ClassificationRecover, forward.Classification)
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	questions := dailyQuestions()
	answers := benignAnswers()
	answers[5] = TokenTreatmentChemo

	first := Evaluate(questions, answers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(questions, answers))
	}
}

func TestNeutralAssessmentOutcome(t *testing.T) {
	outcome := NeutralAssessmentOutcome()

	assert.Equal(t, ClassificationAssessment, outcome.Classification)
	assert.True(t, outcome.IsGoodDayForExercise)
	assert.Equal(t, ScoreAssessment, outcome.TotalScore)
	assert.Equal(t, RecommendationAssessment, outcome.RecommendedExerciseType)
}
