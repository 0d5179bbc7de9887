package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RatingMax is the upper bound of the rating scale; 0 is the unanswered
// sentinel.
const RatingMax = 5

// AnswerValue is a tagged variant keyed by the owning question's type. The
// fields are unexported so a value inconsistent with its declared kind cannot
// be constructed; use the typed constructors or EmptyValue.
type AnswerValue struct {
	kind     QuestionType
	text     string
	selected []string
	rating   int
}

// TextValue builds a free-text answer.
func TextValue(s string) AnswerValue {
	return AnswerValue{kind: QuestionText, text: s}
}

// ChoiceValue builds a single-choice answer holding the selected option.
func ChoiceValue(option string) AnswerValue {
	return AnswerValue{kind: QuestionSingleChoice, text: option}
}

// SelectionValue builds a multi-choice answer holding the selected options in
// selection order.
func SelectionValue(options []string) AnswerValue {
	return AnswerValue{kind: QuestionMultiChoice, selected: append([]string(nil), options...)}
}

// RatingValue builds a rating answer. Zero means unanswered; values outside
// 0..RatingMax are rejected.
func RatingValue(n int) (AnswerValue, error) {
	if n < 0 || n > RatingMax {
		return AnswerValue{}, fmt.Errorf("rating %d out of range 0..%d", n, RatingMax)
	}
	return AnswerValue{kind: QuestionRating, rating: n}, nil
}

// EmptyValue returns the unanswered sentinel for the given question type:
// empty string for text and single choice, empty selection for multi choice,
// zero for rating.
func EmptyValue(t QuestionType) AnswerValue {
	return AnswerValue{kind: t}
}

// Kind reports the question type this value was constructed for.
func (v AnswerValue) Kind() QuestionType { return v.kind }

// Text returns the string payload for text and single-choice values.
func (v AnswerValue) Text() string { return v.text }

// Selected returns the chosen options of a multi-choice value.
func (v AnswerValue) Selected() []string { return append([]string(nil), v.selected...) }

// Rating returns the rating payload; 0 means unanswered.
func (v AnswerValue) Rating() int { return v.rating }

// IsEmpty reports whether the value still holds its unanswered sentinel: a
// blank or whitespace-only string, no selections, or rating zero.
func (v AnswerValue) IsEmpty() bool {
	switch v.kind {
	case QuestionMultiChoice:
		return len(v.selected) == 0
	case QuestionRating:
		return v.rating == 0
	default:
		return strings.TrimSpace(v.text) == ""
	}
}

type answerValueJSON struct {
	Type  QuestionType    `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the variant as {"type": ..., "value": ...} so the blob
// can be decoded without consulting the owning question.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.kind {
	case QuestionMultiChoice:
		if v.selected == nil {
			payload = []string{}
		} else {
			payload = v.selected
		}
	case QuestionRating:
		payload = v.rating
	default:
		payload = v.text
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerValueJSON{Type: v.kind, Value: raw})
}

// UnmarshalJSON decodes a value produced by MarshalJSON.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var env answerValueJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	switch env.Type {
	case QuestionText, QuestionSingleChoice:
		var s string
		if len(env.Value) > 0 {
			if err := json.Unmarshal(env.Value, &s); err != nil {
				return err
			}
		}
		v.kind, v.text, v.selected, v.rating = env.Type, s, nil, 0
	case QuestionMultiChoice:
		var opts []string
		if len(env.Value) > 0 {
			if err := json.Unmarshal(env.Value, &opts); err != nil {
				return err
			}
		}
		v.kind, v.text, v.selected, v.rating = env.Type, "", opts, 0
	case QuestionRating:
		var n int
		if len(env.Value) > 0 {
			if err := json.Unmarshal(env.Value, &n); err != nil {
				return err
			}
		}
		if n < 0 || n > RatingMax {
			return fmt.Errorf("rating %d out of range 0..%d", n, RatingMax)
		}
		v.kind, v.text, v.selected, v.rating = env.Type, "", nil, n
	default:
		return fmt.Errorf("unknown answer value type %q", env.Type)
	}
	return nil
}

func (v AnswerValue) clone() AnswerValue {
	cp := v
	if v.selected != nil {
		cp.selected = append([]string(nil), v.selected...)
	}
	return cp
}
