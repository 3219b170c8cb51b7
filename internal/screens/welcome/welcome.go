// Package welcome shows a test's metadata before the attempt starts.
package welcome

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/bridge"
	cat "github.com/bugaev/quizdeck/internal/catalog"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/results"
	"github.com/bugaev/quizdeck/internal/router"
	"github.com/bugaev/quizdeck/internal/screen"
	"github.com/bugaev/quizdeck/internal/screens/attempt"
	"github.com/bugaev/quizdeck/internal/ui/layout"
	"github.com/bugaev/quizdeck/internal/ui/theme"
)

// loadedMsg is sent when the full definition has been fetched.
type loadedMsg struct {
	Def *quiz.Definition
	Err error
}

// WelcomeScreen shows test metadata and starts the attempt.
type WelcomeScreen struct {
	lib   *cat.Library
	res   *results.Store
	br    bridge.Bridge
	entry quiz.Entry

	loading bool
	errMsg  string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the welcome screen for a catalog entry.
func New(lib *cat.Library, res *results.Store, br bridge.Bridge, entry quiz.Entry) *WelcomeScreen {
	return &WelcomeScreen{lib: lib, res: res, br: br, entry: entry}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Title() string {
	return w.entry.Title
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		w.loading = false
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		// Replace so Esc from the attempt cannot land back on a stale
		// welcome screen mid-flow.
		return w, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: attempt.New(msg.Def, w.res, w.br),
			}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if !w.loading {
				w.loading = true
				w.errMsg = ""
				return w, w.load()
			}
		case "esc":
			return w, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	e := w.entry

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(e.Title))
	b.WriteString("\n\n")

	if e.Description != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(e.Description))
		b.WriteString("\n\n")
	}

	var facts []string
	if e.TotalQuestions > 0 {
		facts = append(facts, fmt.Sprintf("Questions: %d", e.TotalQuestions))
	}
	if e.Difficulty != "" {
		facts = append(facts, "Difficulty: "+e.Difficulty)
	}
	if e.Duration != "" {
		facts = append(facts, "Duration: "+e.Duration)
	}
	if e.Author != "" {
		facts = append(facts, "Author: "+e.Author)
	}
	facts = append(facts, "Mode: "+modeLabel(e.Mode))

	for _, f := range facts {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Render(f)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case w.loading:
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Loading test..."))
	case w.errMsg != "":
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render(w.errMsg))
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.ButtonActive.Render("Press Enter to start")))
	}

	return b.String()
}

func modeLabel(m quiz.Mode) string {
	if m == quiz.ModeTutorial {
		return "tutorial (instant feedback, not recorded)"
	}
	return "exam (scored at the end)"
}

func (w *WelcomeScreen) load() tea.Cmd {
	return func() tea.Msg {
		def, err := w.lib.Load(context.Background(), w.entry.ID)
		return loadedMsg{Def: def, Err: err}
	}
}
