package session

import (
	"math"
	"time"

	"github.com/bugaev/quizdeck/internal/quiz"
)

// SelectAnswer records choices for the question at index. It is accepted
// only while the pointer sits on that question and the question is not
// already revealed; anything else is a no-op returning false.
//
// In tutorial mode the answer is checked immediately: the running score is
// updated, the question is revealed and locked. In exam mode nothing is
// scored until finalization.
func (s *State) SelectAnswer(index int, choices []int) bool {
	if s.Phase != PhaseInProgress || index != s.Current {
		return false
	}
	if s.Revealed[index] {
		return false
	}
	if len(choices) == 0 {
		return false
	}

	recorded := make([]int, len(choices))
	copy(recorded, choices)
	s.Answers[index] = recorded

	if s.Test.Mode == quiz.ModeTutorial {
		if s.Test.Questions[index].Correct.Matches(recorded) {
			s.Score++
		}
		s.Revealed[index] = true
	}
	return true
}

// CanAdvance reports whether the current question permits moving on.
func (s *State) CanAdvance() bool {
	return s.Phase == PhaseInProgress && s.Answered(s.Current)
}

// Advance moves the pointer to the next question. When the pointer passes
// the last question the attempt is finalized. Returns false when the
// current question has no recorded answer yet.
func (s *State) Advance() bool {
	if !s.CanAdvance() {
		return false
	}
	s.Current++
	if s.Current >= len(s.Test.Questions) {
		s.finalize()
	}
	return true
}

// FinalizeEarly forces finalization regardless of pointer position.
// Unanswered trailing questions stay absent and score as incorrect.
func (s *State) FinalizeEarly() {
	if s.Phase == PhaseFinalized {
		return
	}
	s.finalize()
}

// finalize stops the clock and fixes the score. Exam mode scores here with
// a full pass over every question; tutorial mode already accumulated the
// tally during SelectAnswer.
func (s *State) finalize() {
	s.EndTime = time.Now()
	s.Completed = true
	s.Phase = PhaseFinalized

	if s.Test.Mode != quiz.ModeTutorial {
		s.Score = Rescore(s.Test, s.Answers)
	}
}

// Rescore computes the score for a full answer sequence: one point per
// question whose recorded selection exactly matches the correct set. An
// absent answer is simply incorrect, never an error.
func Rescore(def *quiz.Definition, answers [][]int) int {
	score := 0
	for i, q := range def.Questions {
		if i >= len(answers) || answers[i] == nil {
			continue
		}
		if q.Correct.Matches(answers[i]) {
			score++
		}
	}
	return score
}

// Percentage returns round(score/total*100), an integer in [0,100].
func (s *State) Percentage() int {
	total := len(s.Test.Questions)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Score) / float64(total) * 100))
}
