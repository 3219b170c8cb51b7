package attempt

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/ui/components"
	"github.com/bugaev/quizdeck/internal/ui/theme"
)

func (a *AttemptScreen) View(width, height int) string {
	if a.confirmingQuit {
		return renderQuitConfirm(width, height, a.state.Test.Mode)
	}

	q := a.state.Question()
	if q == nil {
		return ""
	}

	var b strings.Builder

	bar := components.QuestionProgress(a.state.Current+1, len(a.state.Test.Questions), min(width-4, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	if a.state.Test.Mode == quiz.ModeTutorial {
		score := fmt.Sprintf("Score so far: %d", a.state.Score)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(score)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 8).
		Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Left,
		lipgloss.NewStyle().PaddingLeft(4).Render(a.selector.View())))

	if a.awaitingNext() {
		b.WriteString("\n")
		b.WriteString(a.renderReveal(width, q))
	}

	return b.String()
}

// renderReveal shows the tutorial verdict for the just-answered question,
// with the explanation when the definition carries one.
func (a *AttemptScreen) renderReveal(width int, q *quiz.Question) string {
	var b strings.Builder

	answer := a.state.Answers[a.state.Current]
	if q.Correct.Matches(answer) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Correct.Render("Correct!")))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Not quite.")))
	}
	b.WriteString("\n")

	if q.Explanation != "" {
		expl := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Width(width - 12).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expl))
		b.WriteString("\n")
	}

	return b.String()
}

func renderQuitConfirm(width, height int, mode quiz.Mode) string {
	warning := "Unanswered questions will count as incorrect."
	if mode == quiz.ModeTutorial {
		warning = "Nothing is recorded in tutorial mode."
	}

	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Finish the test now?") + "\n\n" +
			theme.Hint.Render(warning) + "\n\n" +
			theme.Body.Render("Y to finish, N to keep going"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
