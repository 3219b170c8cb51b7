// Package admin implements the passphrase-gated administrative view:
// aggregate statistics, best results, export and bulk clear.
package admin

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/results"
	"github.com/bugaev/quizdeck/internal/router"
	"github.com/bugaev/quizdeck/internal/screen"
	"github.com/bugaev/quizdeck/internal/ui/components"
	"github.com/bugaev/quizdeck/internal/ui/layout"
	"github.com/bugaev/quizdeck/internal/ui/theme"
)

// exportDoneMsg is sent when the results file has been written.
type exportDoneMsg struct {
	Path string
	Err  error
}

type phase int

const (
	phaseLocked phase = iota
	phaseStats
	phaseConfirmClear
)

// AdminScreen is the administrative results view.
type AdminScreen struct {
	res *results.Store

	phase    phase
	password components.TextInput
	status   string
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)

// New creates the admin screen in its locked state.
func New(res *results.Store) *AdminScreen {
	return &AdminScreen{
		res:      res,
		password: components.NewPasswordInput("Admin passphrase", 64),
	}
}

func (a *AdminScreen) Init() tea.Cmd {
	return a.password.Init()
}

func (a *AdminScreen) Title() string {
	return "Admin"
}

func (a *AdminScreen) KeyHints() []layout.KeyHint {
	switch a.phase {
	case phaseLocked:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Unlock"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseConfirmClear:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete everything"},
			{Key: "N", Description: "Cancel"},
		}
	default:
		return []layout.KeyHint{
			{Key: "E", Description: "Export"},
			{Key: "C", Description: "Clear all"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (a *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.Err != nil {
			a.status = "Export failed: " + msg.Err.Error()
		} else {
			a.status = "Exported to " + msg.Path
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.phase == phaseLocked {
		var cmd tea.Cmd
		a.password, cmd = a.password.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *AdminScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch a.phase {
	case phaseLocked:
		if key == "esc" {
			return a, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if key == "enter" {
			if a.res.Unlock(a.password.Value()) {
				a.phase = phaseStats
				a.status = ""
			} else {
				a.password.Submit(false)
				a.password.SetValue("")
				a.status = "Wrong passphrase"
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.password, cmd = a.password.Update(msg)
		return a, cmd

	case phaseConfirmClear:
		switch key {
		case "y", "Y":
			a.phase = phaseStats
			if err := a.res.ClearAll(context.Background()); err != nil {
				a.status = "Clear failed: " + err.Error()
			} else {
				a.status = "All results deleted"
			}
		case "n", "N", "esc":
			a.phase = phaseStats
		}
		return a, nil

	default:
		switch key {
		case "e", "E":
			return a, a.export()
		case "c", "C":
			if a.res.Count() > 0 {
				a.phase = phaseConfirmClear
			}
			return a, nil
		case "esc":
			return a, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return a, nil
}

func (a *AdminScreen) View(width, height int) string {
	switch a.phase {
	case phaseLocked:
		return a.viewLocked(width, height)
	case phaseConfirmClear:
		return a.viewConfirmClear(width, height)
	default:
		return a.viewStats(width, height)
	}
}

func (a *AdminScreen) viewLocked(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Administrator access") + "\n\n" +
			a.password.View())

	s := lipgloss.Place(width, height-2, lipgloss.Center, lipgloss.Center, box)
	if a.status != "" {
		s += "\n" + theme.Incorrect.Width(width).Align(lipgloss.Center).Render(a.status)
	}
	return s
}

func (a *AdminScreen) viewConfirmClear(width, height int) string {
	box := theme.Card.Render(
		theme.Incorrect.Render(fmt.Sprintf("Delete all %d results?", a.res.Count())) + "\n\n" +
			theme.Hint.Render("This cannot be undone.") + "\n\n" +
			theme.Body.Render("Y to delete, N to cancel"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (a *AdminScreen) viewStats(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Results"))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("Attempts: %d        Average: %d%%",
		a.res.Count(), a.res.AverageOverall())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Body.Render(summary)))
	b.WriteString("\n\n")

	b.WriteString(a.renderPerTest(width))
	b.WriteString(a.renderTop(width))

	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(a.status))
	}
	return b.String()
}

func (a *AdminScreen) renderPerTest(width int) string {
	stats := a.res.AggregateByTest()
	if len(stats) == 0 {
		return theme.Hint.Width(width).Align(lipgloss.Center).Render("No results recorded yet.") + "\n"
	}

	titles := make(map[string]string)
	for _, r := range a.res.List() {
		titles[r.TestID] = r.TestTitle
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(sectionDivider(width, "By test"))
	for _, id := range ids {
		st := stats[id]
		title := titles[id]
		if title == "" {
			title = id
		}
		line := fmt.Sprintf("%-40s  %3d attempts   avg %3d%%", trim(title, 40), st.Count, st.AveragePercentage)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *AdminScreen) renderTop(width int) string {
	top := a.res.TopN(5)
	if len(top) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sectionDivider(width, "Best results"))
	for i, r := range top {
		line := fmt.Sprintf("%d. %-24s  %-30s  %3d%%",
			i+1, trim(r.UserName, 24), trim(r.TestTitle, 30), r.Percentage)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *AdminScreen) export() tea.Cmd {
	return func() tea.Msg {
		raw, err := a.res.ExportAll()
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		path := fmt.Sprintf("quizdeck_results_%s.json", time.Now().Format("2006-01-02"))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return exportDoneMsg{Err: err}
		}
		return exportDoneMsg{Path: path}
	}
}

func sectionDivider(width int, label string) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", minInt(width-8, 60)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n"
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
