package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestSingleSelectSubmitsCursor(t *testing.T) {
	a := NewAnswerSelect([]string{"a", "b", "c"}, false)

	a, _ = a.Update(key('j'))
	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !a.Submitted {
		t.Fatal("expected submission")
	}
	sel := a.Selection()
	if len(sel) != 1 || sel[0] != 1 {
		t.Errorf("selection = %v, want [1]", sel)
	}
}

func TestSingleSelectDigitSubmits(t *testing.T) {
	a := NewAnswerSelect([]string{"a", "b", "c"}, false)

	a, _ = a.Update(key('3'))

	if !a.Submitted {
		t.Fatal("expected digit to submit in single mode")
	}
	if sel := a.Selection(); len(sel) != 1 || sel[0] != 2 {
		t.Errorf("selection = %v, want [2]", sel)
	}
}

func TestMultiSelectTogglesAndSubmits(t *testing.T) {
	a := NewAnswerSelect([]string{"a", "b", "c"}, true)

	a, _ = a.Update(key(' '))
	a, _ = a.Update(key('j'))
	a, _ = a.Update(key('j'))
	a, _ = a.Update(key(' '))
	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !a.Submitted {
		t.Fatal("expected submission")
	}
	sel := a.Selection()
	if len(sel) != 2 || sel[0] != 0 || sel[1] != 2 {
		t.Errorf("selection = %v, want [0 2]", sel)
	}
}

func TestMultiSelectRejectsEmptySubmission(t *testing.T) {
	a := NewAnswerSelect([]string{"a", "b"}, true)

	a, _ = a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if a.Submitted {
		t.Error("empty multi selection must not submit")
	}
}

func TestRevealLocksInput(t *testing.T) {
	a := NewAnswerSelect([]string{"a", "b"}, false)
	a, _ = a.Update(key('1'))
	a.Reveal([]int{1})

	before := a.Selection()
	a, _ = a.Update(key('2'))
	after := a.Selection()

	if len(before) != len(after) || before[0] != after[0] {
		t.Error("input after reveal must be ignored")
	}
}

func TestSelectionNilBeforeSubmit(t *testing.T) {
	a := NewAnswerSelect([]string{"a", "b"}, false)
	if a.Selection() != nil {
		t.Error("expected nil selection before submission")
	}
}
