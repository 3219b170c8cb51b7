package catalog

import "github.com/bugaev/quizdeck/internal/quiz"

// builtinDefinitions returns the embedded fallback tests. They are always
// resident (a remote load that fails can fall back to a built-in sharing
// the same id) but only appear in the catalog when discovery finds nothing
// else.
func builtinDefinitions() []*quiz.Definition {
	return []*quiz.Definition{
		{
			ID:          "general_knowledge",
			Title:       "General Knowledge Check",
			Description: "A short mixed quiz to verify the application works end to end",
			Difficulty:  "Standard",
			Duration:    "3-5 minutes",
			Author:      "QuizDeck",
			Mode:        quiz.ModeExam,
			Scoring:     &quiz.Scoring{Excellent: 80, Good: 60, Satisfactory: 40},
			Provenance:  quiz.ProvenanceBuiltIn,
			Questions: []quiz.Question{
				{
					Prompt:      "Which planet in the solar system is closest to the sun?",
					Type:        quiz.TypeSingle,
					Answers:     []string{"Venus", "Mercury", "Mars", "Earth"},
					Correct:     quiz.SingleCorrect(1),
					Explanation: "Mercury orbits at roughly a third of Earth's distance from the sun.",
				},
				{
					Prompt:      "Which of these are primary colors in the RGB model?",
					Type:        quiz.TypeMultiple,
					Answers:     []string{"Red", "Yellow", "Green", "Blue"},
					Correct:     quiz.MultipleCorrect(0, 2, 3),
					Explanation: "RGB mixes red, green and blue light; yellow is a secondary color.",
				},
				{
					Prompt:      "How many minutes are in a full day?",
					Type:        quiz.TypeSingle,
					Answers:     []string{"1140", "1440", "1640", "2440"},
					Correct:     quiz.SingleCorrect(1),
					Explanation: "24 hours times 60 minutes is 1440.",
				},
			},
		},
		{
			ID:          "quizdeck_tour",
			Title:       "QuizDeck Tour",
			Description: "Learn how answering works, with instant feedback after every question",
			Difficulty:  "Introductory",
			Duration:    "2 minutes",
			Author:      "QuizDeck",
			Mode:        quiz.ModeTutorial,
			Provenance:  quiz.ProvenanceBuiltIn,
			Questions: []quiz.Question{
				{
					Prompt:      "What happens right after you pick an answer in tutorial mode?",
					Type:        quiz.TypeSingle,
					Answers:     []string{"Nothing until the end", "The correct answer is revealed immediately"},
					Correct:     quiz.SingleCorrect(1),
					Explanation: "Tutorial mode checks each answer as soon as it is selected.",
				},
				{
					Prompt:      "Which attempts are saved to the results list?",
					Type:        quiz.TypeSingle,
					Answers:     []string{"Exam mode only", "Tutorial mode only", "Both"},
					Correct:     quiz.SingleCorrect(0),
					Explanation: "Tutorial runs are practice; only exam results are recorded.",
				},
			},
		},
	}
}
