package checkin

import (
	"fmt"
	"strconv"

	"github.com/oncoliving/checkin-api/internal/domain/entity"
)

// AnswerKind tags the closed union of answer value shapes.
type AnswerKind int

const (
	KindYesNo AnswerKind = iota
	KindScale
	KindChoice
)

// AnswerValue is a validated answer as a tagged union: YesNo(bool),
// Scale(0..10) or Choice(token). Raw strings are parsed exactly once at the
// boundary so rule matching never works on defensive string comparisons.
type AnswerValue struct {
	kind  AnswerKind
	yes   bool
	scale int
	token string
}

// YesNo builds a YES_NO answer value.
func YesNo(yes bool) AnswerValue {
	return AnswerValue{kind: KindYesNo, yes: yes}
}

// Scale builds a SCALE_0_10 answer value.
func Scale(n int) AnswerValue {
	return AnswerValue{kind: KindScale, scale: n}
}

// Choice builds a MULTIPLE_CHOICE answer value carrying an option token.
func Choice(token string) AnswerValue {
	return AnswerValue{kind: KindChoice, token: token}
}

// Kind returns the union tag.
func (v AnswerValue) Kind() AnswerKind { return v.kind }

// IsYes reports a positive YES_NO answer. The legacy choice-shaped "*_SIM"
// flags are handled by the caller via Is, not here.
func (v AnswerValue) IsYes() bool {
	return v.kind == KindYesNo && v.yes
}

// ScaleValue returns the 0-10 value and whether the answer is a scale answer.
func (v AnswerValue) ScaleValue() (int, bool) {
	if v.kind != KindScale {
		return 0, false
	}
	return v.scale, true
}

// Is reports whether the answer is a choice carrying one of the given tokens.
func (v AnswerValue) Is(tokens ...string) bool {
	if v.kind != KindChoice {
		return false
	}
	for _, t := range tokens {
		if v.token == t {
			return true
		}
	}
	return false
}

// Token returns the option token for choice answers, "" otherwise.
func (v AnswerValue) Token() string {
	if v.kind != KindChoice {
		return ""
	}
	return v.token
}

// ParseAnswerValue converts a raw submitted string into the tagged union
// according to the question's declared type. The raw value must already be
// inside the type domain (see Question.IsValidValue); out-of-domain input is
// an error here because it indicates the boundary validation was skipped.
func ParseAnswerValue(q *entity.Question, raw string) (AnswerValue, error) {
	switch q.Type {
	case entity.QuestionTypeYesNo:
		switch raw {
		case entity.AnswerYes:
			return YesNo(true), nil
		case entity.AnswerNo:
			return YesNo(false), nil
		}
		return AnswerValue{}, fmt.Errorf("question #%d: %q is not a YES/NO value", q.ID, raw)
	case entity.QuestionTypeScale0To10:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 10 {
			return AnswerValue{}, fmt.Errorf("question #%d: %q is not an integer in [0,10]", q.ID, raw)
		}
		return Scale(n), nil
	case entity.QuestionTypeMultipleChoice:
		if raw == "" {
			return AnswerValue{}, fmt.Errorf("question #%d: empty option token", q.ID)
		}
		return Choice(raw), nil
	}
	return AnswerValue{}, fmt.Errorf("question #%d: unknown question type %q", q.ID, q.Type)
}
