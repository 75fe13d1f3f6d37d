package dto

import (
	"time"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
	"github.com/oncoliving/checkin-api/internal/service"
)

// AnswerResponse represents a stored answer in API responses.
type AnswerResponse struct {
	QuestionID uint   `json:"question_id"`
	Value      string `json:"value"`
}

// CheckinResponse represents a completed check-in in API responses.
type CheckinResponse struct {
	ID                      uint                `json:"id"`
	UserID                  uint                `json:"user_id"`
	QuizID                  uint                `json:"quiz_id"`
	ResponseDate            string              `json:"response_date"`
	Classification          string              `json:"classification"`
	TotalScore              int                 `json:"total_score"`
	IsGoodDayForExercise    bool                `json:"is_good_day_for_exercise"`
	RecommendedExerciseType string              `json:"recommended_exercise_type"`
	GeneralObservations     string              `json:"general_observations,omitempty"`
	Answers                 []AnswerResponse    `json:"answers,omitempty"`
	Snapshot                entity.QuizSnapshot `json:"snapshot,omitempty"`
	CreatedAt               time.Time           `json:"created_at"`
}

// StatsResponse represents aggregate check-in statistics.
type StatsResponse struct {
	TotalCheckins int64      `json:"total_checkins"`
	CurrentStreak int        `json:"current_streak"`
	LastCheckin   *time.Time `json:"last_checkin,omitempty"`
}

// NewCheckinResponse creates a DTO for a stored check-in. The questionnaire
// snapshot is included only when includeSnapshot is set.
func NewCheckinResponse(r *entity.Response, includeSnapshot bool) *CheckinResponse {
	if r == nil {
		return nil
	}

	answers := make([]AnswerResponse, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = AnswerResponse{QuestionID: a.QuestionID, Value: a.Value}
	}

	resp := &CheckinResponse{
		ID:                      r.ID,
		UserID:                  r.UserID,
		QuizID:                  r.QuizID,
		ResponseDate:            r.ResponseDate.Format("2006-01-02"),
		Classification:          r.Classification,
		TotalScore:              r.TotalScore,
		IsGoodDayForExercise:    r.IsGoodDayForExercise,
		RecommendedExerciseType: r.RecommendedExerciseType,
		GeneralObservations:     r.GeneralObservations,
		Answers:                 answers,
		CreatedAt:               r.CreatedAt,
	}
	if includeSnapshot {
		resp.Snapshot = r.QuizSnapshot
	}
	return resp
}

// NewListCheckinResponse creates DTOs for a history listing, snapshots omitted.
func NewListCheckinResponse(responses []entity.Response) []*CheckinResponse {
	out := make([]*CheckinResponse, len(responses))
	for i := range responses {
		out[i] = NewCheckinResponse(&responses[i], false)
	}
	return out
}

// NewStatsResponse creates a DTO for aggregate statistics.
func NewStatsResponse(stats *service.CheckinStats) *StatsResponse {
	if stats == nil {
		return nil
	}
	return &StatsResponse{
		TotalCheckins: stats.TotalCheckins,
		CurrentStreak: stats.CurrentStreak,
		LastCheckin:   stats.LastCheckin,
	}
}
