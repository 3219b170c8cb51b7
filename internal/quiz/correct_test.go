package quiz

import (
	"encoding/json"
	"testing"
)

func TestMatchesSetEquality(t *testing.T) {
	tests := []struct {
		name      string
		correct   Correct
		selection []int
		want      bool
	}{
		{"single exact", SingleCorrect(2), []int{2}, true},
		{"single wrong", SingleCorrect(2), []int{1}, false},
		{"single empty never matches", SingleCorrect(0), nil, false},
		{"multi exact", MultipleCorrect(0, 2), []int{2, 0}, true},
		{"multi subset", MultipleCorrect(0, 2), []int{0}, false},
		{"multi superset", MultipleCorrect(0, 2), []int{0, 1, 2}, false},
		{"multi disjoint", MultipleCorrect(0, 2), []int{1, 3}, false},
		{"duplicate selection collapses", MultipleCorrect(0, 2), []int{0, 2, 2, 0}, true},
		{"multi empty never matches", MultipleCorrect(0, 2), []int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.correct.Matches(tt.selection); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.selection, got, tt.want)
			}
		})
	}
}

func TestMultipleCorrectNormalizes(t *testing.T) {
	c := MultipleCorrect(3, 1, 3, 0)
	want := []int{0, 1, 3}
	if len(c.Indices) != len(want) {
		t.Fatalf("expected %v, got %v", want, c.Indices)
	}
	for i, v := range want {
		if c.Indices[i] != v {
			t.Fatalf("expected %v, got %v", want, c.Indices)
		}
	}
}

func TestInBounds(t *testing.T) {
	if !SingleCorrect(3).InBounds(4) {
		t.Error("index 3 of 4 answers should be in bounds")
	}
	if SingleCorrect(4).InBounds(4) {
		t.Error("index 4 of 4 answers should be out of bounds")
	}
	if SingleCorrect(-1).InBounds(4) {
		t.Error("negative index should be out of bounds")
	}
	if (Correct{}).InBounds(4) {
		t.Error("empty correct set should not be in bounds")
	}
}

func TestQuestionWireRoundTrip(t *testing.T) {
	raw := []byte(`{"question":"Pick two","type":"multiple","answers":["a","b","c"],"correct":[2,0]}`)

	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !q.Correct.Multi {
		t.Error("expected multi variant")
	}
	if !q.Correct.Matches([]int{0, 2}) {
		t.Error("expected {0,2} to match after decode")
	}

	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var q2 Question
	if err := json.Unmarshal(out, &q2); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if !q2.Correct.Matches([]int{0, 2}) {
		t.Error("round trip lost the correct set")
	}
}

func TestSingleChoiceToleratesOneElementArray(t *testing.T) {
	raw := []byte(`{"question":"Pick one","answers":["a","b"],"correct":[1]}`)

	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if q.Type != TypeSingle {
		t.Errorf("expected default type single, got %q", q.Type)
	}
	if q.Correct.Multi {
		t.Error("expected single variant")
	}
	if !q.Correct.Matches([]int{1}) {
		t.Error("expected index 1 to match")
	}
}

func TestSingleChoiceRejectsMultiElementArray(t *testing.T) {
	raw := []byte(`{"question":"Pick one","answers":["a","b"],"correct":[0,1]}`)

	var q Question
	if err := json.Unmarshal(raw, &q); err == nil {
		t.Error("expected error for single-choice with two correct indices")
	}
}
