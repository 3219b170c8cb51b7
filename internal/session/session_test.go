package session

import (
	"testing"

	"github.com/bugaev/quizdeck/internal/quiz"
)

func examDef() *quiz.Definition {
	return &quiz.Definition{
		ID:    "exam1",
		Title: "Exam",
		Mode:  quiz.ModeExam,
		Questions: []quiz.Question{
			{Prompt: "q1", Type: quiz.TypeSingle, Answers: []string{"a", "b"}, Correct: quiz.SingleCorrect(1)},
			{Prompt: "q2", Type: quiz.TypeMultiple, Answers: []string{"a", "b", "c"}, Correct: quiz.MultipleCorrect(0, 2)},
			{Prompt: "q3", Type: quiz.TypeSingle, Answers: []string{"a", "b"}, Correct: quiz.SingleCorrect(0)},
		},
	}
}

func tutorialDef() *quiz.Definition {
	d := examDef()
	d.ID = "tut1"
	d.Mode = quiz.ModeTutorial
	return d
}

func TestExamScoresOnlyAtFinalization(t *testing.T) {
	s := Start(examDef())

	if !s.SelectAnswer(0, []int{1}) {
		t.Fatal("answer 0 rejected")
	}
	if s.Score != 0 {
		t.Errorf("exam score before finalization = %d, want 0", s.Score)
	}
	if !s.Advance() {
		t.Fatal("advance after q1 failed")
	}

	if !s.SelectAnswer(1, []int{2, 0}) {
		t.Fatal("answer 1 rejected")
	}
	s.Advance()

	if !s.SelectAnswer(2, []int{1}) {
		t.Fatal("answer 2 rejected")
	}
	s.Advance()

	if s.Phase != PhaseFinalized {
		t.Fatalf("expected finalized, got %v", s.Phase)
	}
	if s.Score != 2 {
		t.Errorf("final score = %d, want 2", s.Score)
	}
	if got := s.Percentage(); got != 67 {
		t.Errorf("percentage = %d, want 67", got)
	}
	if !s.Completed {
		t.Error("expected Completed")
	}
}

func TestTutorialRunningScoreMatchesRescore(t *testing.T) {
	s := Start(tutorialDef())

	answers := [][]int{{1}, {0}, {1}} // correct, wrong, wrong
	for i, a := range answers {
		if !s.SelectAnswer(i, a) {
			t.Fatalf("answer %d rejected", i)
		}
		s.Advance()
	}

	if s.Phase != PhaseFinalized {
		t.Fatal("expected finalized")
	}
	if want := Rescore(s.Test, s.Answers); s.Score != want {
		t.Errorf("running score %d diverges from full rescore %d", s.Score, want)
	}
	if s.Score != 1 {
		t.Errorf("score = %d, want 1", s.Score)
	}
}

func TestTutorialRevealLocksQuestion(t *testing.T) {
	s := Start(tutorialDef())

	if !s.SelectAnswer(0, []int{0}) {
		t.Fatal("first answer rejected")
	}
	if !s.Revealed[0] {
		t.Fatal("expected question revealed after tutorial answer")
	}
	if s.SelectAnswer(0, []int{1}) {
		t.Error("re-answer of a revealed question should be a no-op")
	}
	if s.Score != 0 {
		t.Errorf("score changed by rejected re-answer: %d", s.Score)
	}
}

func TestSelectAnswerRejectsStalePointer(t *testing.T) {
	s := Start(examDef())
	if s.SelectAnswer(1, []int{0}) {
		t.Error("answer for a question ahead of the pointer should be rejected")
	}
	if s.SelectAnswer(0, nil) {
		t.Error("empty selection should be rejected")
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	s := Start(examDef())
	if s.Advance() {
		t.Error("advance without an answer should fail")
	}
	s.SelectAnswer(0, []int{0})
	if !s.Advance() {
		t.Error("advance with an answer should succeed")
	}
}

func TestFinalizeEarlyScoresUnansweredAsIncorrect(t *testing.T) {
	s := Start(examDef())
	s.SelectAnswer(0, []int{1})
	s.Advance()

	s.FinalizeEarly()

	if s.Phase != PhaseFinalized {
		t.Fatal("expected finalized")
	}
	if s.Score != 1 {
		t.Errorf("score = %d, want 1 (unanswered count as incorrect)", s.Score)
	}

	// Finalizing twice is a no-op.
	end := s.EndTime
	s.FinalizeEarly()
	if !s.EndTime.Equal(end) {
		t.Error("second FinalizeEarly moved the end time")
	}
}

func TestFinalizeEarlyWithNoAnswers(t *testing.T) {
	s := Start(examDef())
	s.FinalizeEarly()
	if s.Score != 0 {
		t.Errorf("score = %d, want 0", s.Score)
	}
	if s.Percentage() != 0 {
		t.Errorf("percentage = %d, want 0", s.Percentage())
	}
}

func TestPercentageRounds(t *testing.T) {
	d := examDef()
	s := Start(d)
	s.Score = 1
	if got := s.Percentage(); got != 33 {
		t.Errorf("1/3 = %d%%, want 33", got)
	}
	s.Score = 2
	if got := s.Percentage(); got != 67 {
		t.Errorf("2/3 = %d%%, want 67", got)
	}
}

func TestRescoreTreatsNilAnswerAsIncorrect(t *testing.T) {
	d := examDef()
	if got := Rescore(d, [][]int{{1}, nil, {0}}); got != 2 {
		t.Errorf("Rescore = %d, want 2", got)
	}
	if got := Rescore(d, [][]int{{1}}); got != 1 {
		t.Errorf("short answer slice: Rescore = %d, want 1", got)
	}
}

func TestVerdictCutoffs(t *testing.T) {
	scoring := quiz.Scoring{Excellent: 80, Good: 60, Satisfactory: 40}

	tests := []struct {
		pct  int
		want string
	}{
		{95, "Excellent! You really know this."},
		{80, "Excellent! You really know this."},
		{60, "Good result! You know the material well."},
		{40, "Not bad, but there is room to improve."},
		{39, "Worth studying the material more carefully."},
	}
	for _, tt := range tests {
		if got := Verdict(quiz.ModeExam, scoring, tt.pct); got != tt.want {
			t.Errorf("Verdict(exam, %d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestTutorialVerdictIgnoresScoring(t *testing.T) {
	// Tutorial verdicts use fixed cutoffs regardless of the definition's.
	scoring := quiz.Scoring{Excellent: 99, Good: 98, Satisfactory: 97}
	got := Verdict(quiz.ModeTutorial, scoring, 85)
	if got != "Excellent! You have the material down. This was a tutorial run, nothing was recorded." {
		t.Errorf("unexpected tutorial verdict: %q", got)
	}
}
