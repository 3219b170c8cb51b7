// Package catalog implements the home screen: the list of available
// tests plus entry points to test management and the admin area.
package catalog

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/bridge"
	cat "github.com/bugaev/quizdeck/internal/catalog"
	"github.com/bugaev/quizdeck/internal/quiz"
	"github.com/bugaev/quizdeck/internal/results"
	"github.com/bugaev/quizdeck/internal/router"
	"github.com/bugaev/quizdeck/internal/screen"
	"github.com/bugaev/quizdeck/internal/screens/admin"
	"github.com/bugaev/quizdeck/internal/screens/manage"
	"github.com/bugaev/quizdeck/internal/screens/welcome"
	"github.com/bugaev/quizdeck/internal/ui/components"
	"github.com/bugaev/quizdeck/internal/ui/layout"
	"github.com/bugaev/quizdeck/internal/ui/theme"
)

// CatalogScreen is the application home screen.
type CatalogScreen struct {
	lib *cat.Library
	res *results.Store
	br  bridge.Bridge

	menu    components.Menu
	loading bool
	status  string
	errMsg  string
}

var _ screen.Screen = (*CatalogScreen)(nil)
var _ screen.KeyHintProvider = (*CatalogScreen)(nil)

// New creates the catalog screen. Discovery runs on Init.
func New(lib *cat.Library, res *results.Store, br bridge.Bridge) *CatalogScreen {
	return &CatalogScreen{
		lib:     lib,
		res:     res,
		br:      br,
		loading: true,
	}
}

func (c *CatalogScreen) Init() tea.Cmd {
	return c.discover()
}

func (c *CatalogScreen) Title() string {
	return "Catalog"
}

func (c *CatalogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (c *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case discoverDoneMsg:
		c.loading = false
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		c.rebuildMenu(msg.Entries)
		return c, nil

	case refreshDoneMsg:
		c.loading = false
		if msg.Err != nil {
			c.status = "Refresh failed: " + msg.Err.Error()
			return c, nil
		}
		c.rebuildMenu(msg.Entries)
		c.status = fmt.Sprintf("Catalog refreshed, %d tests", len(msg.Entries))
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			if !c.loading {
				c.loading = true
				c.status = ""
				return c, c.refresh()
			}
			return c, nil
		}
	}

	if c.loading {
		return c, nil
	}

	var cmd tea.Cmd
	c.menu, cmd = c.menu.Update(msg)
	return c, cmd
}

func (c *CatalogScreen) View(width, height int) string {
	var s string
	s += theme.Title.Width(width).Render("Pick a test") + "\n"
	s += theme.Subtitle.Width(width).Render("Welcome, "+c.br.UserInfo().DisplayName()) + "\n\n"

	switch {
	case c.loading:
		s += theme.Hint.Width(width).Align(lipgloss.Center).Render("Loading catalog...")
	case c.errMsg != "":
		s += theme.Incorrect.Width(width).Align(lipgloss.Center).Render(c.errMsg)
	default:
		s += c.menu.View()
	}

	if c.status != "" {
		s += "\n" + theme.Hint.Width(width).Align(lipgloss.Center).Render(c.status)
	}
	return s
}

// rebuildMenu rebuilds the menu from catalog entries, keeping the fixed
// management items at the bottom.
func (c *CatalogScreen) rebuildMenu(entries []quiz.Entry) {
	items := make([]components.MenuItem, 0, len(entries)+3)
	for _, e := range entries {
		entry := e
		items = append(items, components.MenuItem{
			Label: entry.Title,
			Hint:  entryHint(entry),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: welcome.New(c.lib, c.res, c.br, entry),
					}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "My tests", Hint: "create, edit, import", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: manage.New(c.lib)}
			}
		}},
		components.MenuItem{Label: "Admin", Hint: "results and statistics", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: admin.New(c.res)}
			}
		}},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	c.menu = components.NewMenu(items)
}

func entryHint(e quiz.Entry) string {
	hint := fmt.Sprintf("%d questions", e.TotalQuestions)
	if e.Difficulty != "" {
		hint += ", " + e.Difficulty
	}
	switch e.Provenance {
	case quiz.ProvenanceCustom:
		hint += "  [custom]"
	case quiz.ProvenanceBuiltIn:
		hint += "  [built-in]"
	}
	return hint
}

func (c *CatalogScreen) discover() tea.Cmd {
	return func() tea.Msg {
		entries, err := c.lib.Discover(context.Background())
		return discoverDoneMsg{Entries: entries, Err: err}
	}
}

func (c *CatalogScreen) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := c.lib.Refresh(context.Background())
		return refreshDoneMsg{Entries: entries, Err: err}
	}
}
