package checkin

import (
	"fmt"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

// Classification is the graded safety outcome of a daily check-in.
type Classification string

const (
	ClassificationRecover Classification = "RECOVER"
	ClassificationAdapt   Classification = "ADAPT"
	ClassificationTrain   Classification = "TRAIN"

	// ClassificationAssessment marks the neutral outcome of an initial
	// assessment submission; such quizzes never enter the waterfall.
	ClassificationAssessment Classification = "ASSESSMENT_COMPLETED"
)

// Fixed score bands per tier. The classification is driven by categorical
// rule matching; the score is a display artifact, never a summed quantity
// that could average away a single dangerous symptom.
const (
	ScoreRecover    = 20
	ScoreAdapt      = 50
	ScoreTrain      = 80
	ScoreAssessment = 0
)

// Recommendation labels returned with each tier.
const (
	RecommendationRecover    = "Recovery and active rest (breathing, gentle stretching)"
	RecommendationAdapt      = "Adapted exercise (seated, mobility, breathing)"
	RecommendationTrain      = "Train today (light strength + light cardio + mobility)"
	RecommendationAssessment = "Initial assessment completed"
)

// Outcome is the engine's result. UnknownTokens lists choice answers whose
// token is absent from the question's option set; they resolve as "no rule
// match" but are surfaced so an operator can spot catalog/engine drift.
type Outcome struct {
	Classification          Classification
	IsGoodDayForExercise    bool
	RecommendedExerciseType string
	TotalScore              int
	UnknownTokens           []string
}

// NeutralAssessmentOutcome is the fixed outcome for INITIAL_ASSESSMENT
// submissions: recorded for profiling only, no safety classification.
func NeutralAssessmentOutcome() Outcome {
	return Outcome{
		Classification:          ClassificationAssessment,
		IsGoodDayForExercise:    true,
		RecommendedExerciseType: RecommendationAssessment,
		TotalScore:              ScoreAssessment,
	}
}

// Evaluate classifies a daily check-in. Pure and deterministic: the ordered
// question list plus the raw answer map (question id -> submitted value)
// fully determine the outcome.
//
// The waterfall short-circuits: RECOVER beats ADAPT beats TRAIN, and a single
// red-flag answer dominates no matter what the other slots contain. A missing
// slot or an unrecognized token is "no match" for that slot's conditions,
// never an error; the orchestrator rejects incomplete submissions before the
// engine runs.
func Evaluate(questions []entity.Question, rawAnswers map[uint]string) Outcome {
	byRole, unknown := resolveRoles(questions, rawAnswers)

	energy := byRole[RoleEnergy]
	fatigue := byRole[RoleFatigue]
	pain := byRole[RolePain]
	symptoms := byRole[RoleSymptoms]
	treatment := byRole[RoleTreatmentDay]
	sleep := byRole[RoleSleep]
	emotional := byRole[RoleEmotional]
	safety := byRole[RoleSafety]
	discomfort := byRole[RoleDiscomfort]

	rest := fatigue.Is(TokenFatigueIntense) ||
		pain.Is(TokenPainStrong) ||
		energy.Is(TokenEnergyExhausted) ||
		safety.Is(TokenSafetyNo, TokenSafetyUnsure) ||
		emotional.Is(TokenEmotionalVeryShaken) ||
		discomfort.IsYes() || discomfort.Is(TokenDiscomfortYes)

	if rest {
		return Outcome{
			Classification:          ClassificationRecover,
			IsGoodDayForExercise:    false,
			RecommendedExerciseType: RecommendationRecover,
			TotalScore:              ScoreRecover,
			UnknownTokens:           unknown,
		}
	}

	// Any symptom other than the "no symptoms" sentinel counts, including
	// tokens added to the catalog after this engine was built.
	hasSymptoms := symptoms.Kind() == KindChoice && !symptoms.Is(TokenSymptomsNone)

	demandingTreatment := treatment.Is(
		TokenTreatmentChemo,
		TokenTreatmentRadio,
		TokenTreatmentHormone,
		TokenTreatmentPostSurgical,
	)

	adapt := fatigue.Is(TokenFatigueModerate) ||
		pain.Is(TokenPainModerate) ||
		demandingTreatment ||
		sleep.Is(TokenSleepMeh, TokenSleepBad) ||
		emotional.Is(TokenEmotionalAnxious, TokenEmotionalSad) ||
		safety.Is(TokenSafetySomewhat) ||
		hasSymptoms

	if adapt {
		return Outcome{
			Classification:          ClassificationAdapt,
			IsGoodDayForExercise:    true,
			RecommendedExerciseType: RecommendationAdapt,
			TotalScore:              ScoreAdapt,
			UnknownTokens:           unknown,
		}
	}

	return Outcome{
		Classification:          ClassificationTrain,
		IsGoodDayForExercise:    true,
		RecommendedExerciseType: RecommendationTrain,
		TotalScore:              ScoreTrain,
		UnknownTokens:           unknown,
	}
}

// resolveRoles builds the role -> answer lookup the waterfall matches
// against. Unanswered questions and values that fail to parse simply do not
// appear in the map. Choice answers whose token is not in the question's
// option set are kept (they still resolve as "no match") but reported.
func resolveRoles(questions []entity.Question, rawAnswers map[uint]string) (map[Role]AnswerValue, []string) {
	byRole := make(map[Role]AnswerValue, len(questions))
	var unknown []string

	for i := range questions {
		q := &questions[i]
		role := Role(q.Role)
		if role == "" || role == RoleNone {
			continue
		}

		raw, ok := rawAnswers[q.ID]
		if !ok {
			continue
		}

		value, err := ParseAnswerValue(q, raw)
		if err != nil {
			continue
		}

		if value.Kind() == KindChoice && len(q.Options) > 0 && !q.HasOptionToken(value.Token()) {
			unknown = append(unknown, fmt.Sprintf("%s=%s", role, value.Token()))
		}

		byRole[role] = value
	}

	return byRole, unknown
}
