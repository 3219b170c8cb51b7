package session

import (
	"time"

	"github.com/bugaev/quizdeck/internal/quiz"
)

// Phase is the lifecycle position of one attempt.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFinalized
)

// State tracks one in-progress or completed attempt against a definition.
// The definition is shared and read-only for the state's lifetime; its
// question count never changes while a session references it.
type State struct {
	// Test is the active definition.
	Test *quiz.Definition

	// Current is the 0-based question pointer, monotonically increasing,
	// bounded by [0, len(questions)].
	Current int

	// Answers holds the selected indices per question position; nil until
	// the question is answered.
	Answers [][]int

	// Revealed marks questions locked against further selection. Only
	// tutorial mode sets it.
	Revealed []bool

	// Score counts correctly answered questions. In tutorial mode it is a
	// running tally; in exam mode it is computed once at finalization.
	Score int

	StartTime time.Time
	EndTime   time.Time

	// Completed transitions false to true exactly once.
	Completed bool

	Phase Phase
}

// Start creates the state for a fresh attempt: pointer at zero, no answers,
// zero score, clock running.
func Start(def *quiz.Definition) *State {
	return &State{
		Test:      def,
		Answers:   make([][]int, len(def.Questions)),
		Revealed:  make([]bool, len(def.Questions)),
		StartTime: time.Now(),
		Phase:     PhaseInProgress,
	}
}

// Question returns the question at the current pointer, or nil once the
// pointer has moved past the end.
func (s *State) Question() *quiz.Question {
	if s.Current < 0 || s.Current >= len(s.Test.Questions) {
		return nil
	}
	return &s.Test.Questions[s.Current]
}

// Answered reports whether the question at index has a recorded answer.
func (s *State) Answered(index int) bool {
	return index >= 0 && index < len(s.Answers) && s.Answers[index] != nil
}

// TimeSpent is the attempt duration, using the final clock once finalized.
func (s *State) TimeSpent() time.Duration {
	if s.Completed {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}
