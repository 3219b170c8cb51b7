package session

import "github.com/bugaev/quizdeck/internal/quiz"

// Verdict picks the result message for a finalized attempt. Exam verdicts
// come from the definition's scoring cutoffs; tutorial runs use fixed
// encouragement thresholds and say so.
func Verdict(mode quiz.Mode, scoring quiz.Scoring, percentage int) string {
	if mode == quiz.ModeTutorial {
		switch {
		case percentage >= 80:
			return "Excellent! You have the material down. This was a tutorial run, nothing was recorded."
		case percentage >= 60:
			return "Good work! You understand most of it. This was a tutorial run, nothing was recorded."
		default:
			return "Review the material and try again. This was a tutorial run, nothing was recorded."
		}
	}

	switch {
	case percentage >= scoring.Excellent:
		return "Excellent! You really know this."
	case percentage >= scoring.Good:
		return "Good result! You know the material well."
	case percentage >= scoring.Satisfactory:
		return "Not bad, but there is room to improve."
	default:
		return "Worth studying the material more carefully."
	}
}
