// Package manage implements the custom-test management screen: listing,
// creating, editing, importing, previewing and deleting locally stored
// tests. Built-in and remote tests are not touchable here.
package manage

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	cat "github.com/bugaev/quizdeck/internal/catalog"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/router"
	"github.com/bugaev/quizdeck/internal/screen"
	"github.com/bugaev/quizdeck/internal/ui/components"
	"github.com/bugaev/quizdeck/internal/ui/layout"
)

type phase int

const (
	phaseList phase = iota
	phaseTest
	phaseInput
	phasePreview
	phaseConfirmDelete
	phaseCreateMore
)

type inputKind int

const (
	inputImportFile inputKind = iota
	inputImportURL
	inputEditTitle
	inputEditDescription
	inputCreateTitle
	inputCreateDescription
	inputCreateMode
	inputCreateQuestion
	inputCreateAnswers
	inputCreateCorrect
	inputCreateExplanation
)

// ManageScreen is the custom-test management screen.
type ManageScreen struct {
	lib *cat.Library

	phase    phase
	menu     components.Menu
	testMenu components.Menu
	selected *quiz.Definition

	input  components.TextInput
	kind   inputKind
	status string

	// Create-flow draft. draftQ accumulates one question across the
	// prompt/answers/correct/explanation inputs.
	draft  *quiz.Definition
	draftQ quiz.Question

	previewIdx int
}

var _ screen.Screen = (*ManageScreen)(nil)
var _ screen.KeyHintProvider = (*ManageScreen)(nil)

// New creates the management screen.
func New(lib *cat.Library) *ManageScreen {
	m := &ManageScreen{lib: lib}
	m.rebuildList()
	return m
}

func (m *ManageScreen) Init() tea.Cmd {
	return nil
}

func (m *ManageScreen) Title() string {
	return "My tests"
}

func (m *ManageScreen) KeyHints() []layout.KeyHint {
	switch m.phase {
	case phaseInput:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	case phasePreview:
		return []layout.KeyHint{
			{Key: "←→", Description: "Question"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	case phaseCreateMore:
		return []layout.KeyHint{
			{Key: "A", Description: "Add question"},
			{Key: "D", Description: "Done"},
			{Key: "Esc", Description: "Discard"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (m *ManageScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case importedMsg:
		if msg.Err != nil {
			m.status = "Import failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("Imported %q", msg.Def.Title)
			m.rebuildList()
		}
		m.phase = phaseList
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ManageScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch m.phase {
	case phaseList:
		if key == "esc" {
			return m, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd

	case phaseTest:
		if key == "esc" {
			m.phase = phaseList
			return m, nil
		}
		var cmd tea.Cmd
		m.testMenu, cmd = m.testMenu.Update(msg)
		return m, cmd

	case phaseInput:
		switch key {
		case "esc":
			m.cancelInput()
			return m, nil
		case "enter":
			return m.submitInput()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phasePreview:
		switch key {
		case "esc":
			m.phase = phaseTest
		case "left", "h":
			if m.previewIdx > 0 {
				m.previewIdx--
			}
		case "right", "l":
			if m.selected != nil && m.previewIdx < len(m.selected.Questions)-1 {
				m.previewIdx++
			}
		}
		return m, nil

	case phaseConfirmDelete:
		switch key {
		case "y", "Y":
			m.deleteSelected()
		case "n", "N", "esc":
			m.phase = phaseTest
		}
		return m, nil

	case phaseCreateMore:
		switch key {
		case "a", "A":
			m.beginInput(inputCreateQuestion, "Question text", "")
		case "d", "D":
			m.finishCreate()
		case "esc":
			m.draft = nil
			m.status = "Draft discarded"
			m.phase = phaseList
		}
		return m, nil
	}
	return m, nil
}

// rebuildList rebuilds the top-level menu from the current custom set.
func (m *ManageScreen) rebuildList() {
	customs := m.lib.CustomTests()
	items := make([]components.MenuItem, 0, len(customs)+3)

	for _, d := range customs {
		def := d
		items = append(items, components.MenuItem{
			Label: def.Title,
			Hint:  fmt.Sprintf("%d questions, %s", len(def.Questions), def.Mode),
			Action: func() tea.Cmd {
				m.openTest(def)
				return nil
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "Create new test", Action: func() tea.Cmd {
			m.draft = &quiz.Definition{}
			m.beginInput(inputCreateTitle, "Test title", "")
			return nil
		}},
		components.MenuItem{Label: "Import from file", Action: func() tea.Cmd {
			m.beginInput(inputImportFile, "Path to a test JSON file", "")
			return nil
		}},
		components.MenuItem{Label: "Import from URL", Action: func() tea.Cmd {
			m.beginInput(inputImportURL, "URL of a test JSON file", "")
			return nil
		}},
	)

	m.menu = components.NewMenu(items)
}

// openTest switches to the per-test submenu.
func (m *ManageScreen) openTest(def *quiz.Definition) {
	m.selected = def
	m.testMenu = components.NewMenu([]components.MenuItem{
		{Label: "Preview questions", Action: func() tea.Cmd {
			m.previewIdx = 0
			m.phase = phasePreview
			return nil
		}},
		{Label: "Edit title", Action: func() tea.Cmd {
			m.beginInput(inputEditTitle, "New title", def.Title)
			return nil
		}},
		{Label: "Edit description", Action: func() tea.Cmd {
			m.beginInput(inputEditDescription, "New description", def.Description)
			return nil
		}},
		{Label: "Toggle mode", Hint: "exam / tutorial", Action: func() tea.Cmd {
			m.toggleMode()
			return nil
		}},
		{Label: "Delete", Action: func() tea.Cmd {
			m.phase = phaseConfirmDelete
			return nil
		}},
		{Label: "Back", Action: func() tea.Cmd {
			m.phase = phaseList
			return nil
		}},
	})
	m.phase = phaseTest
}

func (m *ManageScreen) beginInput(kind inputKind, placeholder, initial string) {
	m.kind = kind
	m.input = components.NewTextInput(placeholder, 200)
	if initial != "" {
		m.input.SetValue(initial)
	}
	m.status = ""
	m.phase = phaseInput
}

// cancelInput backs out of the active input. Create-flow inputs discard
// the whole draft; edit and import inputs just return to their menu.
func (m *ManageScreen) cancelInput() {
	switch m.kind {
	case inputEditTitle, inputEditDescription:
		m.phase = phaseTest
	case inputImportFile, inputImportURL:
		m.phase = phaseList
	default:
		m.draft = nil
		m.phase = phaseList
	}
}

func (m *ManageScreen) toggleMode() {
	def := m.selected
	mode := quiz.ModeTutorial
	if def.Mode == quiz.ModeTutorial {
		mode = quiz.ModeExam
	}
	updated, err := m.lib.EditCustom(context.Background(), def.ID, cat.EditMeta{
		Description: def.Description,
		Mode:        mode,
	})
	if err != nil {
		m.status = "Edit failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Mode set to %s", updated.Mode)
	m.selected = updated
	m.rebuildList()
	m.openTest(updated)
}

func (m *ManageScreen) deleteSelected() {
	removed, err := m.lib.RemoveCustom(context.Background(), m.selected.ID)
	switch {
	case err != nil:
		m.status = "Delete failed: " + err.Error()
	case !removed:
		m.status = "Not a custom test"
	default:
		m.status = fmt.Sprintf("Deleted %q", m.selected.Title)
	}
	m.selected = nil
	m.rebuildList()
	m.phase = phaseList
}

func (m *ManageScreen) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := os.ReadFile(path)
		if err != nil {
			return importedMsg{Err: err}
		}
		return m.storeImported(raw)
	}
}

func (m *ManageScreen) importURL(url string) tea.Cmd {
	return func() tea.Msg {
		raw, err := cat.FetchURL(context.Background(), nil, url)
		if err != nil {
			return importedMsg{Err: err}
		}
		return m.storeImported(raw)
	}
}

// storeImported decodes raw and stores it as a new custom test with a
// fresh id, regardless of any id the source file carried.
func (m *ManageScreen) storeImported(raw []byte) tea.Msg {
	def, err := quiz.Decode(raw)
	if err != nil {
		return importedMsg{Err: err}
	}
	def.ID = ""
	stored, err := m.lib.AddCustom(context.Background(), def)
	if err != nil {
		return importedMsg{Err: err}
	}
	return importedMsg{Def: stored}
}
