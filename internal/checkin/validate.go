package checkin

import (
	"fmt"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

// Problem describes one missing or invalid answer of a submission.
type Problem struct {
	QuestionID uint   `json:"question_id"`
	Reason     string `json:"reason"`
}

func (p Problem) String() string {
	return fmt.Sprintf("question #%d: %s", p.QuestionID, p.Reason)
}

// ValidateSubmission checks a raw answer map against the quiz's question
// list: every question must be answered, every answer must reference a known
// question, and every value must lie in its question's type domain. Returns
// nil when the submission is complete and well-typed.
//
// Option-token recognition is deliberately NOT checked here: an answer only
// needs to exist and be type-correct, not to be a token the engine knows.
func ValidateSubmission(questions []entity.Question, answers map[uint]string) []Problem {
	var problems []Problem

	known := make(map[uint]bool, len(questions))
	for i := range questions {
		q := &questions[i]
		known[q.ID] = true

		raw, ok := answers[q.ID]
		if !ok {
			problems = append(problems, Problem{QuestionID: q.ID, Reason: "answer is missing"})
			continue
		}
		if !q.IsValidValue(raw) {
			problems = append(problems, Problem{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("value %q is outside the %s domain", raw, q.Type),
			})
		}
	}

	for questionID := range answers {
		if !known[questionID] {
			problems = append(problems, Problem{QuestionID: questionID, Reason: "question does not belong to this quiz"})
		}
	}

	return problems
}
