// Package attempt implements the question-by-question flow of an active
// test session.
package attempt

import (
	tea "charm.land/bubbletea/v2"

	"github.com/bugaev/quizdeck/internal/bridge"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/results"
	"github.com/bugaev/quizdeck/internal/router"
	"github.com/bugaev/quizdeck/internal/screen"
	"github.com/bugaev/quizdeck/internal/screens/result"
	sess "github.com/bugaev/quizdeck/internal/session"
	"github.com/bugaev/quizdeck/internal/ui/components"
	"github.com/bugaev/quizdeck/internal/ui/layout"
)

// AttemptScreen drives one attempt from the first question to finalization.
type AttemptScreen struct {
	state *sess.State
	res   *results.Store
	br    bridge.Bridge

	selector       components.AnswerSelect
	confirmingQuit bool
}

var _ screen.Screen = (*AttemptScreen)(nil)
var _ screen.KeyHintProvider = (*AttemptScreen)(nil)

// New starts an attempt over a loaded definition.
func New(def *quiz.Definition, res *results.Store, br bridge.Bridge) *AttemptScreen {
	a := &AttemptScreen{
		state: sess.Start(def),
		res:   res,
		br:    br,
	}
	a.resetSelector()
	return a
}

func (a *AttemptScreen) Init() tea.Cmd {
	return nil
}

func (a *AttemptScreen) Title() string {
	return a.state.Test.Title
}

func (a *AttemptScreen) KeyHints() []layout.KeyHint {
	if a.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish now"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if a.awaitingNext() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Finish early"},
		}
	}
	q := a.state.Question()
	if q != nil && q.Type == quiz.TypeMultiple {
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Finish early"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Finish early"},
	}
}

func (a *AttemptScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(kmsg)
	}
	return a, nil
}

func (a *AttemptScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if a.confirmingQuit {
		switch key {
		case "y", "Y":
			a.confirmingQuit = false
			a.state.FinalizeEarly()
			return a, a.goResult()
		case "n", "N", "esc":
			a.confirmingQuit = false
		}
		return a, nil
	}

	if key == "esc" {
		a.confirmingQuit = true
		return a, nil
	}

	// Tutorial reveal pause: Enter moves on, everything else is ignored.
	if a.awaitingNext() {
		if key == "enter" {
			a.state.Advance()
			if a.state.Phase == sess.PhaseFinalized {
				return a, a.goResult()
			}
			a.resetSelector()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.selector, cmd = a.selector.Update(msg)
	if a.selector.Submitted {
		return a.recordAnswer()
	}
	return a, cmd
}

// recordAnswer commits the selector's choice. Exam mode advances right
// away; tutorial mode reveals correctness and waits for Enter.
func (a *AttemptScreen) recordAnswer() (screen.Screen, tea.Cmd) {
	choice := a.selector.Selection()
	if !a.state.SelectAnswer(a.state.Current, choice) {
		return a, nil
	}

	if a.state.Test.Mode == quiz.ModeTutorial {
		q := a.state.Question()
		a.selector.Reveal(q.Correct.Indices)
		return a, nil
	}

	a.state.Advance()
	if a.state.Phase == sess.PhaseFinalized {
		return a, a.goResult()
	}
	a.resetSelector()
	return a, nil
}

// awaitingNext reports whether the current question sits revealed,
// waiting for the learner to move on.
func (a *AttemptScreen) awaitingNext() bool {
	c := a.state.Current
	return a.state.Phase == sess.PhaseInProgress &&
		c < len(a.state.Revealed) && a.state.Revealed[c]
}

func (a *AttemptScreen) resetSelector() {
	q := a.state.Question()
	if q == nil {
		return
	}
	a.selector = components.NewAnswerSelect(q.Answers, q.Type == quiz.TypeMultiple)
}

func (a *AttemptScreen) goResult() tea.Cmd {
	state := a.state
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: result.New(state, a.res, a.br),
		}
	}
}
