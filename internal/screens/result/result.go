// Package result shows the outcome of a finished attempt and records it
// when the test was an exam.
package result

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/bridge"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/results"
	"github.com/bugaev/quizdeck/internal/router"
	"github.com/bugaev/quizdeck/internal/screen"
	sess "github.com/bugaev/quizdeck/internal/session"
	"github.com/bugaev/quizdeck/internal/ui/layout"
	"github.com/bugaev/quizdeck/internal/ui/theme"
)

// savedMsg is sent when the exam result has been persisted.
type savedMsg struct {
	Err error
}

// ResultScreen presents the finalized attempt.
type ResultScreen struct {
	state *sess.State
	res   *results.Store
	br    bridge.Bridge

	saveErr error
	status  string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen for a finalized state.
func New(state *sess.State, res *results.Store, br bridge.Bridge) *ResultScreen {
	return &ResultScreen{state: state, res: res, br: br}
}

// Init persists the result. Tutorial runs are formative and skip this.
func (r *ResultScreen) Init() tea.Cmd {
	if r.state.Test.Mode == quiz.ModeTutorial {
		return nil
	}
	return func() tea.Msg {
		user := r.br.UserInfo()
		rec := results.FromSession(r.state, user.ID, user.DisplayName())
		return savedMsg{Err: r.res.Record(context.Background(), rec)}
	}
}

func (r *ResultScreen) Title() string {
	return "Result"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "S", Description: "Share"},
		{Key: "Enter", Description: "Back to catalog"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		r.saveErr = msg.Err
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			outcome := r.br.Share(r.shareMessage())
			if outcome.Posted {
				r.status = "Shared!"
			} else {
				r.status = outcome.Message
			}
			return r, nil
		case "enter", "esc":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	s := r.state
	pct := s.Percentage()

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Test complete!"))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(width).Render(s.Test.Title))
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("%d / %d correct    %d%%", s.Score, len(s.Test.Questions), pct)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Body.Bold(true).Render(scoreLine)))
	b.WriteString("\n")

	mins := int(s.TimeSpent().Minutes())
	secs := int(s.TimeSpent().Seconds()) % 60
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(fmt.Sprintf("Time: %d:%02d", mins, secs))))
	b.WriteString("\n\n")

	verdict := sess.Verdict(s.Test.Mode, s.Test.EffectiveScoring(), pct)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(verdictColor(s, pct)).Width(min(width-8, 70)).
			Align(lipgloss.Center).Render(verdict)))
	b.WriteString("\n\n")

	if r.saveErr != nil {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).
			Render("Could not save the result: " + r.saveErr.Error()))
		b.WriteString("\n")
	}
	if r.status != "" {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(r.status))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *ResultScreen) shareMessage() string {
	s := r.state
	return fmt.Sprintf("I scored %d/%d (%d%%) on %q in QuizDeck!",
		s.Score, len(s.Test.Questions), s.Percentage(), s.Test.Title)
}

func verdictColor(s *sess.State, pct int) color.Color {
	scoring := s.Test.EffectiveScoring()
	switch {
	case pct >= scoring.Good:
		return theme.Success
	case pct >= scoring.Satisfactory:
		return theme.Accent
	default:
		return theme.Error
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
