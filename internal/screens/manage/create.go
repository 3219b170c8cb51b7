package manage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	cat "github.com/bugaev/quizdeck/internal/catalog"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/screen"
)

// submitInput routes a confirmed text input to its handler.
func (m *ManageScreen) submitInput() (screen.Screen, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.kind {
	case inputImportFile:
		if value == "" {
			return m, nil
		}
		m.status = "Importing..."
		m.phase = phaseList
		return m, m.importFile(value)

	case inputImportURL:
		if value == "" {
			return m, nil
		}
		m.status = "Importing..."
		m.phase = phaseList
		return m, m.importURL(value)

	case inputEditTitle:
		if value == "" {
			m.input.Submit(false)
			return m, nil
		}
		m.applyEdit(cat.EditMeta{Title: value, Description: m.selected.Description})
		return m, nil

	case inputEditDescription:
		m.applyEdit(cat.EditMeta{Description: value})
		return m, nil

	case inputCreateTitle:
		if value == "" {
			m.input.Submit(false)
			return m, nil
		}
		m.draft.Title = value
		m.beginInput(inputCreateDescription, "Description (optional)", "")
		return m, nil

	case inputCreateDescription:
		m.draft.Description = value
		m.beginInput(inputCreateMode, "Mode: exam or tutorial (default exam)", "")
		return m, nil

	case inputCreateMode:
		switch strings.ToLower(value) {
		case "", "exam":
			m.draft.Mode = quiz.ModeExam
		case "tutorial":
			m.draft.Mode = quiz.ModeTutorial
		default:
			m.input.Submit(false)
			return m, nil
		}
		m.beginInput(inputCreateQuestion, "Question text", "")
		return m, nil

	case inputCreateQuestion:
		if value == "" {
			m.input.Submit(false)
			return m, nil
		}
		m.draftQ = quiz.Question{Prompt: value}
		m.beginInput(inputCreateAnswers, "Answer options, separated by ;", "")
		return m, nil

	case inputCreateAnswers:
		answers := splitAnswers(value)
		if len(answers) < 2 {
			m.input.Submit(false)
			return m, nil
		}
		m.draftQ.Answers = answers
		m.beginInput(inputCreateCorrect, "Correct option number(s), e.g. 2 or 1,3", "")
		return m, nil

	case inputCreateCorrect:
		correct, typ, err := parseCorrectInput(value, len(m.draftQ.Answers))
		if err != nil {
			m.input.Submit(false)
			return m, nil
		}
		m.draftQ.Correct = correct
		m.draftQ.Type = typ
		m.beginInput(inputCreateExplanation, "Explanation (optional)", "")
		return m, nil

	case inputCreateExplanation:
		m.draftQ.Explanation = value
		m.draft.Questions = append(m.draft.Questions, m.draftQ)
		m.draftQ = quiz.Question{}
		m.phase = phaseCreateMore
		return m, nil
	}

	return m, nil
}

// applyEdit commits a metadata edit on the selected test.
func (m *ManageScreen) applyEdit(meta cat.EditMeta) {
	updated, err := m.lib.EditCustom(context.Background(), m.selected.ID, meta)
	if err != nil {
		m.status = "Edit failed: " + err.Error()
		m.phase = phaseTest
		return
	}
	m.status = "Saved"
	m.selected = updated
	m.rebuildList()
	m.openTest(updated)
}

// finishCreate validates and stores the draft.
func (m *ManageScreen) finishCreate() {
	draft := m.draft
	m.draft = nil

	stored, err := m.lib.AddCustom(context.Background(), draft)
	if err != nil {
		m.status = "Could not save the test: " + err.Error()
		m.phase = phaseList
		return
	}
	m.status = fmt.Sprintf("Created %q with %d questions", stored.Title, len(stored.Questions))
	m.rebuildList()
	m.phase = phaseList
}

// splitAnswers splits the ;-separated answer list, dropping empties.
func splitAnswers(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseCorrectInput parses 1-based option numbers. One number makes a
// single-select question, several make a multi-select.
func parseCorrectInput(value string, answerCount int) (quiz.Correct, quiz.QuestionType, error) {
	var indices []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return quiz.Correct{}, "", err
		}
		if n < 1 || n > answerCount {
			return quiz.Correct{}, "", fmt.Errorf("option %d out of range", n)
		}
		indices = append(indices, n-1)
	}

	switch len(indices) {
	case 0:
		return quiz.Correct{}, "", fmt.Errorf("no correct option given")
	case 1:
		return quiz.SingleCorrect(indices[0]), quiz.TypeSingle, nil
	default:
		return quiz.MultipleCorrect(indices...), quiz.TypeMultiple, nil
	}
}
