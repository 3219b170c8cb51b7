package components

import (
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/ui/theme"
)

// AnswerSelect is the answer option selector for a question. In single
// mode Enter submits the option under the cursor; in multi mode Space
// toggles options and Enter submits the toggled set. After Reveal the
// component renders correctness colors and stops reacting to input.
type AnswerSelect struct {
	Options   []string
	Multi     bool
	Cursor    int
	Submitted bool

	picked   map[int]bool
	chosen   []int
	revealed bool
	correct  map[int]bool
}

// NewAnswerSelect creates a selector for the given options.
func NewAnswerSelect(options []string, multi bool) AnswerSelect {
	return AnswerSelect{
		Options: options,
		Multi:   multi,
		picked:  make(map[int]bool),
	}
}

// Init returns nil.
func (a AnswerSelect) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (a AnswerSelect) Update(msg tea.Msg) (AnswerSelect, tea.Cmd) {
	if a.Submitted {
		return a, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if a.Cursor > 0 {
			a.Cursor--
		}
	case "down", "j":
		if a.Cursor < len(a.Options)-1 {
			a.Cursor++
		}
	case "space", " ":
		if a.Multi {
			a.picked[a.Cursor] = !a.picked[a.Cursor]
		}
	case "enter":
		a.submit()
	default:
		// Digit keys jump to an option: submit in single mode, toggle in multi.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(a.Options) {
				a.Cursor = i
				if a.Multi {
					a.picked[i] = !a.picked[i]
				} else {
					a.submit()
				}
			}
		}
	}

	return a, nil
}

func (a *AnswerSelect) submit() {
	if a.Multi {
		var sel []int
		for i := range a.Options {
			if a.picked[i] {
				sel = append(sel, i)
			}
		}
		if len(sel) == 0 {
			return
		}
		sort.Ints(sel)
		a.chosen = sel
	} else {
		a.chosen = []int{a.Cursor}
	}
	a.Submitted = true
}

// Selection returns the submitted option indices in ascending order,
// nil before submission.
func (a AnswerSelect) Selection() []int {
	if !a.Submitted {
		return nil
	}
	out := make([]int, len(a.chosen))
	copy(out, a.chosen)
	return out
}

// Reveal switches the selector into graded display using the correct
// option indices. Input is ignored from here on.
func (a *AnswerSelect) Reveal(correct []int) {
	a.revealed = true
	a.Submitted = true
	a.correct = make(map[int]bool, len(correct))
	for _, i := range correct {
		a.correct[i] = true
	}
}

// View renders the option list.
func (a AnswerSelect) View() string {
	chosen := make(map[int]bool, len(a.chosen))
	for _, i := range a.chosen {
		chosen[i] = true
	}

	var s string
	for i, opt := range a.Options {
		prefix := "  "
		if i == a.Cursor && !a.Submitted {
			prefix = "▸ "
		}

		mark := ""
		if a.Multi {
			if a.picked[i] || (a.Submitted && chosen[i]) {
				mark = "[x] "
			} else {
				mark = "[ ] "
			}
		}

		line := fmt.Sprintf("%s%c)  %s%s", prefix, 'A'+i, mark, opt)

		switch {
		case a.revealed && a.correct[i]:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case a.revealed && chosen[i]:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case a.revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == a.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
