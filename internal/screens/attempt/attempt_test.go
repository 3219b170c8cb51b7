package attempt

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/bugaev/quizdeck/internal/bridge"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/screen"
	sess "github.com/bugaev/quizdeck/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func examDef() *quiz.Definition {
	return &quiz.Definition{
		ID:    "exam1",
		Title: "Exam",
		Mode:  quiz.ModeExam,
		Questions: []quiz.Question{
			{Prompt: "q1", Answers: []string{"a", "b"}, Correct: quiz.SingleCorrect(1)},
			{Prompt: "q2", Answers: []string{"a", "b"}, Correct: quiz.SingleCorrect(0)},
		},
	}
}

func tutorialDef() *quiz.Definition {
	d := examDef()
	d.Mode = quiz.ModeTutorial
	for i := range d.Questions {
		d.Questions[i].Explanation = "because"
	}
	return d
}

func testAttempt(def *quiz.Definition) *AttemptScreen {
	return New(def, nil, bridge.NewLocal())
}

func TestExamAnswerAdvances(t *testing.T) {
	a := testAttempt(examDef())

	var scr screen.Screen = a
	scr, cmd := scr.Update(keyPress('2'))
	aa := scr.(*AttemptScreen)

	if cmd != nil {
		t.Error("mid-test answer should not produce a command")
	}
	if aa.state.Current != 1 {
		t.Errorf("pointer = %d, want 1 after exam answer", aa.state.Current)
	}
	if aa.state.Score != 0 {
		t.Error("exam mode must not score before finalization")
	}
}

func TestExamLastAnswerFinalizes(t *testing.T) {
	a := testAttempt(examDef())

	var scr screen.Screen = a
	scr, _ = scr.Update(keyPress('2'))
	scr, cmd := scr.Update(keyPress('1'))
	aa := scr.(*AttemptScreen)

	if aa.state.Phase != sess.PhaseFinalized {
		t.Fatal("expected finalized after last answer")
	}
	if aa.state.Score != 2 {
		t.Errorf("score = %d, want 2", aa.state.Score)
	}
	if cmd == nil {
		t.Error("expected navigation command to the result screen")
	}
}

func TestTutorialRevealsThenAdvances(t *testing.T) {
	a := testAttempt(tutorialDef())

	var scr screen.Screen = a
	scr, _ = scr.Update(keyPress('1')) // wrong: correct is index 1
	aa := scr.(*AttemptScreen)

	if !aa.state.Revealed[0] {
		t.Fatal("expected question revealed in tutorial mode")
	}
	if aa.state.Current != 0 {
		t.Error("tutorial must wait for Enter before advancing")
	}
	if aa.state.Score != 0 {
		t.Error("wrong answer must not score")
	}

	view := aa.View(80, 24)
	if view == "" {
		t.Error("expected non-empty reveal view")
	}

	scr, _ = aa.Update(specialKey(tea.KeyEnter))
	aa = scr.(*AttemptScreen)
	if aa.state.Current != 1 {
		t.Errorf("pointer = %d, want 1 after Enter", aa.state.Current)
	}
}

func TestEscShowsFinishConfirm(t *testing.T) {
	a := testAttempt(examDef())

	var scr screen.Screen = a
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	aa := scr.(*AttemptScreen)
	if !aa.confirmingQuit {
		t.Fatal("expected finish confirmation")
	}

	scr, _ = aa.Update(keyPress('n'))
	aa = scr.(*AttemptScreen)
	if aa.confirmingQuit {
		t.Error("N should dismiss the confirmation")
	}
	if aa.state.Phase != sess.PhaseInProgress {
		t.Error("dismissing must not finalize")
	}
}

func TestEarlyFinishConfirmYes(t *testing.T) {
	a := testAttempt(examDef())

	var scr screen.Screen = a
	scr, _ = scr.Update(keyPress('2'))
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	scr, cmd := scr.Update(keyPress('y'))
	aa := scr.(*AttemptScreen)

	if aa.state.Phase != sess.PhaseFinalized {
		t.Fatal("expected finalized after confirmed early finish")
	}
	if aa.state.Score != 1 {
		t.Errorf("score = %d, want 1 (unanswered counts as incorrect)", aa.state.Score)
	}
	if cmd == nil {
		t.Error("expected navigation command to the result screen")
	}
}

func TestKeyHintsPresent(t *testing.T) {
	a := testAttempt(examDef())
	if len(a.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}

func TestViewRendersQuestion(t *testing.T) {
	a := testAttempt(examDef())
	if a.View(80, 24) == "" {
		t.Error("expected non-empty question view")
	}
}
