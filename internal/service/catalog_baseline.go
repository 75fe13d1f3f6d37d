package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/oncoliving/checkin-api/internal/checkin"
	"github.com/oncoliving/checkin-api/internal/domain/entity"
	apperrors "github.com/oncoliving/checkin-api/internal/pkg/errors"
)

type baselineOption struct {
	token string
	label string
}

type baselineQuestion struct {
	text    string
	qtype   string
	role    checkin.Role
	options []baselineOption
}

// baselineDailyCheckin is the canonical 10-slot daily check-in. Tokens are
// the stable engine contract and must not be edited here once deployed;
// labels may be.
var baselineDailyCheckin = []baselineQuestion{
	{
		text:  "How is your energy today?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleEnergy,
		options: []baselineOption{
			{checkin.TokenEnergyGood, "Good, I feel up for the day"},
			{checkin.TokenEnergyMedium, "Medium, a bit low"},
			{checkin.TokenEnergyExhausted, "Exhausted"},
		},
	},
	{
		text:  "How intense is your fatigue right now?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleFatigue,
		options: []baselineOption{
			{checkin.TokenFatigueLight, "Light or none"},
			{checkin.TokenFatigueModerate, "Moderate"},
			{checkin.TokenFatigueIntense, "Intense"},
		},
	},
	{
		text:  "Are you in pain today?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RolePain,
		options: []baselineOption{
			{checkin.TokenPainNone, "No pain"},
			{checkin.TokenPainModerate, "Moderate pain"},
			{checkin.TokenPainStrong, "Strong pain"},
		},
	},
	{
		text:  "Any symptoms right now?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleSymptoms,
		options: []baselineOption{
			{checkin.TokenSymptomsNone, "No symptoms"},
			{checkin.TokenSymptomsNausea, "Nausea"},
			{checkin.TokenSymptomsDizziness, "Dizziness"},
			{checkin.TokenSymptomsFever, "Fever"},
			{checkin.TokenSymptomsMultiple, "Several at once"},
		},
	},
	{
		text:  "What kind of treatment day is today?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleTreatmentDay,
		options: []baselineOption{
			{checkin.TokenTreatmentNone, "No treatment today"},
			{checkin.TokenTreatmentChemo, "Chemotherapy"},
			{checkin.TokenTreatmentRadio, "Radiotherapy"},
			{checkin.TokenTreatmentHormone, "Hormone therapy"},
			{checkin.TokenTreatmentPostSurgical, "Post-surgical recovery"},
		},
	},
	{
		text:  "Did you sleep well last night?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleSleep,
		options: []baselineOption{
			{checkin.TokenSleepGood, "Yes, I slept well"},
			{checkin.TokenSleepMeh, "So-so"},
			{checkin.TokenSleepBad, "No, badly"},
		},
	},
	{
		text:  "How are you feeling emotionally?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleEmotional,
		options: []baselineOption{
			{checkin.TokenEmotionalWell, "Well"},
			{checkin.TokenEmotionalAnxious, "Anxious"},
			{checkin.TokenEmotionalSad, "Sad"},
			{checkin.TokenEmotionalVeryShaken, "Very shaken"},
		},
	},
	{
		text:  "Do you feel safe to exercise today?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleSafety,
		options: []baselineOption{
			{checkin.TokenSafetyYes, "Yes"},
			{checkin.TokenSafetySomewhat, "Somewhat"},
			{checkin.TokenSafetyUnsure, "Not sure"},
			{checkin.TokenSafetyNo, "No"},
		},
	},
	{
		text:  "Any specific discomfort that worries you right now?",
		qtype: entity.QuestionTypeYesNo,
		role:  checkin.RoleDiscomfort,
	},
	{
		text:  "Would you like to talk to a professional about how you feel?",
		qtype: entity.QuestionTypeYesNo,
		role:  checkin.RoleConsultInterest,
	},
}

// baselineInitialAssessment is the one-off profiling quiz; its answers never
// enter the safety waterfall.
var baselineInitialAssessment = []baselineQuestion{
	{
		text:  "How would you rate your overall fitness before diagnosis, from 0 to 10?",
		qtype: entity.QuestionTypeScale0To10,
		role:  checkin.RoleNone,
	},
	{
		text:  "How active are you in a typical week right now, from 0 to 10?",
		qtype: entity.QuestionTypeScale0To10,
		role:  checkin.RoleNone,
	},
	{
		text:  "Have you exercised regularly in the past year?",
		qtype: entity.QuestionTypeYesNo,
		role:  checkin.RoleNone,
	},
	{
		text:  "What is your current treatment stage?",
		qtype: entity.QuestionTypeMultipleChoice,
		role:  checkin.RoleNone,
		options: []baselineOption{
			{"STAGE_PRE_TREATMENT", "Before treatment"},
			{"STAGE_IN_TREATMENT", "In active treatment"},
			{"STAGE_POST_TREATMENT", "After treatment"},
		},
	},
	{
		text:  "Would you like a consultation before starting?",
		qtype: entity.QuestionTypeYesNo,
		role:  checkin.RoleNone,
	},
}

// EnsureBaselineQuizzes idempotently creates and activates the canonical
// daily check-in and initial assessment quizzes when their purpose slot has
// no active quiz. Safe to run at every startup and from the seed tool.
func (s *CatalogService) EnsureBaselineQuizzes() error {
	if err := s.ensureBaseline(
		entity.QuizPurposeDailyCheckin,
		"Daily Check-in",
		"Daily safety check-in that gates today's exercise recommendation.",
		baselineDailyCheckin,
	); err != nil {
		return err
	}
	return s.ensureBaseline(
		entity.QuizPurposeInitialAssessment,
		"Initial Assessment",
		"One-off profile assessment completed before the first training plan.",
		baselineInitialAssessment,
	)
}

func (s *CatalogService) ensureBaseline(purpose, name, description string, questions []baselineQuestion) error {
	_, err := s.quizRepo.GetActiveByPurpose(purpose)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check active quiz for %s: %w", purpose, err)
	}

	log.Printf("[CatalogService] No active %s quiz, seeding baseline %q", purpose, name)

	quiz := &entity.Quiz{
		Name:        name,
		Description: description,
		Purpose:     purpose,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return fmt.Errorf("failed to create baseline quiz %q: %w", name, err)
	}

	for i, bq := range questions {
		question := &entity.Question{
			QuizID:       quiz.ID,
			Text:         bq.text,
			Type:         bq.qtype,
			Role:         string(bq.role),
			DisplayOrder: i + 1,
		}
		if err := s.quizRepo.CreateQuestion(question); err != nil {
			return fmt.Errorf("failed to create baseline question %d of %q: %w", i+1, name, err)
		}
		for j, bo := range bq.options {
			option := &entity.Option{
				QuestionID:   question.ID,
				Token:        bo.token,
				Label:        bo.label,
				DisplayOrder: j + 1,
			}
			if err := s.quizRepo.CreateOption(option); err != nil {
				return fmt.Errorf("failed to create baseline option %q: %w", bo.token, err)
			}
		}
	}

	if err := s.quizRepo.Activate(quiz.ID); err != nil {
		return fmt.Errorf("failed to activate baseline quiz %q: %w", name, err)
	}
	s.invalidateActiveCache()

	log.Printf("[CatalogService] Baseline quiz %q seeded with %d questions", name, len(questions))
	return nil
}
