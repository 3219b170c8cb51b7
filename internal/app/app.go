// Package app wires storage, catalog, results and the host bridge into
// the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bugaev/quizdeck/internal/bridge"
	cat "github.com/bugaev/quizdeck/internal/catalog"
	"github.com/bugaev/quizdeck/internal/results"
	"github.com/bugaev/quizdeck/internal/router"
	"github.com/bugaev/quizdeck/internal/screen"
	catalogscreen "github.com/bugaev/quizdeck/internal/screens/catalog"
	"github.com/bugaev/quizdeck/internal/store"
	"github.com/bugaev/quizdeck/internal/ui/layout"
)

// Options configures an application run.
type Options struct {
	// DBPath is the SQLite file backing all persistence.
	DBPath string

	// BaseURL overrides the remote test source. Empty uses the
	// QUIZDECK_BASE_URL env var, then the default.
	BaseURL string

	// KeepHistory keeps every recorded result instead of one per user.
	KeepHistory bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	br     bridge.Bridge
	width  int
	height int
}

func newAppModel(lib *cat.Library, res *results.Store, br bridge.Bridge) AppModel {
	return AppModel{
		router: router.New(catalogscreen.New(lib, res, br)),
		br:     br,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.br.UserInfo().DisplayName(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run opens storage, assembles the services and starts the Bubble Tea
// program.
func Run(opts Options) error {
	db, err := store.Open(opts.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = db.Close() }()

	lib := cat.New(cat.NewHTTPFetcher(opts.BaseURL), db)

	res := results.New(db, results.Config{
		KeepHistory: opts.KeepHistory,
		AdminKey:    os.Getenv("QUIZDECK_ADMIN_KEY"),
	})
	res.Load(context.Background())

	br := bridge.NewLocal()

	p := tea.NewProgram(newAppModel(lib, res, br))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
