package results

import (
	"testing"

	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/session"
)

func TestFromSession(t *testing.T) {
	def := &quiz.Definition{
		ID:    "t1",
		Title: "Test one",
		Mode:  quiz.ModeExam,
		Questions: []quiz.Question{
			{Prompt: "q1", Answers: []string{"a", "b"}, Correct: quiz.SingleCorrect(0)},
			{Prompt: "q2", Answers: []string{"a", "b"}, Correct: quiz.SingleCorrect(1)},
		},
	}

	s := session.Start(def)
	s.SelectAnswer(0, []int{0})
	s.Advance()
	s.SelectAnswer(1, []int{0})
	s.Advance()

	r := FromSession(s, "u1", "User One")

	if r.TestID != "t1" || r.TestTitle != "Test one" {
		t.Errorf("test reference wrong: %q %q", r.TestID, r.TestTitle)
	}
	if r.Score != 1 || r.Total != 2 || r.Percentage != 50 {
		t.Errorf("score snapshot wrong: %d/%d %d%%", r.Score, r.Total, r.Percentage)
	}
	if r.UserID != "u1" || r.UserName != "User One" {
		t.Errorf("user snapshot wrong: %q %q", r.UserID, r.UserName)
	}
	if r.ID == "" {
		t.Error("expected generated id")
	}
	if len(r.Answers) != 2 {
		t.Errorf("expected 2 answer slots, got %d", len(r.Answers))
	}
	if r.Date.IsZero() {
		t.Error("expected date from finalization")
	}
}
