package manage

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/ui/theme"
)

func (m *ManageScreen) View(width, height int) string {
	switch m.phase {
	case phaseTest:
		return m.viewTest(width)
	case phaseInput:
		return m.viewInput(width, height)
	case phasePreview:
		return m.viewPreview(width)
	case phaseConfirmDelete:
		return m.viewConfirmDelete(width, height)
	case phaseCreateMore:
		return m.viewCreateMore(width, height)
	default:
		return m.viewList(width)
	}
}

func (m *ManageScreen) viewList(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("My tests"))
	b.WriteString("\n\n")

	if len(m.lib.CustomTests()) == 0 {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).
			Render("No custom tests yet. Create or import one."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.menu.View())
	b.WriteString(m.statusLine(width))
	return b.String()
}

func (m *ManageScreen) viewTest(width int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(m.selected.Title))
	b.WriteString("\n")
	if m.selected.Description != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(m.selected.Description))
		b.WriteString("\n")
	}
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d questions, %s mode", len(m.selected.Questions), m.selected.Mode)))
	b.WriteString("\n\n")
	b.WriteString(m.testMenu.View())
	b.WriteString(m.statusLine(width))
	return b.String()
}

func (m *ManageScreen) viewInput(width, height int) string {
	label := inputLabel(m.kind)
	if m.draft != nil && isCreateKind(m.kind) && m.draft.Title != "" {
		label = fmt.Sprintf("%s  (question %d)", label, len(m.draft.Questions)+1)
	}

	box := theme.Card.Render(
		theme.Body.Bold(true).Render(label) + "\n\n" + m.input.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m *ManageScreen) viewPreview(width int) string {
	def := m.selected
	if def == nil || len(def.Questions) == 0 {
		return ""
	}
	q := def.Questions[m.previewIdx]

	var b strings.Builder
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Question %d of %d", m.previewIdx+1, len(def.Questions))))
	b.WriteString("\n\n")

	prompt := theme.Body.Bold(true).Width(width - 8).Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	var opts strings.Builder
	for i, ans := range q.Answers {
		line := fmt.Sprintf("  %c)  %s", 'A'+i, ans)
		if q.Correct.Contains(i) {
			opts.WriteString(theme.Correct.Render(line + "  ✓"))
		} else {
			opts.WriteString(theme.Body.Render(line))
		}
		opts.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Left,
		lipgloss.NewStyle().PaddingLeft(4).Render(opts.String())))

	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Width(width-12).Render(q.Explanation)))
	}
	return b.String()
}

func (m *ManageScreen) viewConfirmDelete(width, height int) string {
	box := theme.Card.Render(
		theme.Incorrect.Render(fmt.Sprintf("Delete %q?", m.selected.Title)) + "\n\n" +
			theme.Hint.Render("Recorded results for this test are kept.") + "\n\n" +
			theme.Body.Render("Y to delete, N to cancel"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m *ManageScreen) viewCreateMore(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render(fmt.Sprintf("%q has %d question(s)",
			m.draft.Title, len(m.draft.Questions))) + "\n\n" +
			theme.Body.Render("A to add another question, D when done"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m *ManageScreen) statusLine(width int) string {
	if m.status == "" {
		return ""
	}
	return "\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render(m.status)
}

func inputLabel(kind inputKind) string {
	switch kind {
	case inputImportFile:
		return "Import a test from a file"
	case inputImportURL:
		return "Import a test from a URL"
	case inputEditTitle:
		return "Edit title"
	case inputEditDescription:
		return "Edit description"
	case inputCreateTitle:
		return "New test: title"
	case inputCreateDescription:
		return "New test: description"
	case inputCreateMode:
		return "New test: mode"
	case inputCreateQuestion:
		return "Question text"
	case inputCreateAnswers:
		return "Answer options"
	case inputCreateCorrect:
		return "Correct option(s)"
	case inputCreateExplanation:
		return "Explanation"
	}
	return ""
}

func isCreateKind(kind inputKind) bool {
	switch kind {
	case inputCreateQuestion, inputCreateAnswers, inputCreateCorrect, inputCreateExplanation:
		return true
	}
	return false
}
