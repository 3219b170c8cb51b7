package quiz

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Correct is the tagged correct-answer variant. On the wire the field is
// untyped (a bare index for single-choice, an array for multi-choice); it is
// normalized here once, at decode time, so scoring code never re-inspects
// the question type.
type Correct struct {
	Multi   bool
	Indices []int // sorted, deduplicated; exactly one element when !Multi
}

// SingleCorrect builds the variant for a single-choice question.
func SingleCorrect(index int) Correct {
	return Correct{Indices: []int{index}}
}

// MultipleCorrect builds the variant for a multi-choice question.
func MultipleCorrect(indices ...int) Correct {
	return Correct{Multi: true, Indices: normalize(indices)}
}

// Matches reports whether a recorded selection scores as correct: exact set
// equality, order-independent. Partial credit is never given: a subset,
// superset, or disjoint selection all score incorrect. An empty selection
// (unanswered question) never matches.
func (c Correct) Matches(selection []int) bool {
	sel := normalize(selection)
	if len(sel) == 0 || len(sel) != len(c.Indices) {
		return false
	}
	for i, v := range sel {
		if v != c.Indices[i] {
			return false
		}
	}
	return true
}

// InBounds reports whether every correct index addresses a real answer.
func (c Correct) InBounds(answerCount int) bool {
	for _, i := range c.Indices {
		if i < 0 || i >= answerCount {
			return false
		}
	}
	return len(c.Indices) > 0
}

// Contains reports whether index is one of the correct indices. Used by the
// tutorial reveal to color each option.
func (c Correct) Contains(index int) bool {
	for _, i := range c.Indices {
		if i == index {
			return true
		}
	}
	return false
}

// wire renders the variant back into its JSON form: a bare number for
// single, an array for multiple.
func (c Correct) wire() (json.RawMessage, error) {
	if c.Multi {
		return json.Marshal(c.Indices)
	}
	if len(c.Indices) != 1 {
		return nil, fmt.Errorf("single-choice correct has %d indices", len(c.Indices))
	}
	return json.Marshal(c.Indices[0])
}

// parseCorrect decodes the untyped wire value according to the question type.
func parseCorrect(typ QuestionType, raw json.RawMessage) (Correct, error) {
	if len(raw) == 0 {
		return Correct{}, fmt.Errorf("missing correct field")
	}

	switch typ {
	case TypeSingle:
		var index int
		if err := json.Unmarshal(raw, &index); err != nil {
			// Tolerate a one-element array for single-choice questions.
			var indices []int
			if arrErr := json.Unmarshal(raw, &indices); arrErr != nil || len(indices) != 1 {
				return Correct{}, fmt.Errorf("correct for single-choice must be an index: %w", err)
			}
			index = indices[0]
		}
		return SingleCorrect(index), nil

	case TypeMultiple:
		var indices []int
		if err := json.Unmarshal(raw, &indices); err != nil {
			return Correct{}, fmt.Errorf("correct for multi-choice must be an index array: %w", err)
		}
		if len(indices) == 0 {
			return Correct{}, fmt.Errorf("correct for multi-choice is empty")
		}
		return MultipleCorrect(indices...), nil

	default:
		return Correct{}, fmt.Errorf("unknown question type %q", typ)
	}
}

// normalize sorts and deduplicates a selection without mutating the input.
func normalize(indices []int) []int {
	out := make([]int, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
