// Package dashboard is the interactive full-screen view of all apps: a
// search box over a scrollable grid of cards.
//
// Keys:
//
//	type       fuzzy-filter by app name
//	↑/↓ pgup   scroll
//	ctrl+r     clear the search and scroll to the top
//	esc        clear the search, or quit when it is empty
//	ctrl+c     quit
package dashboard

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/dracula/internal/listing"
	"github.com/raphi011/dracula/internal/ui/static"
	"github.com/raphi011/dracula/internal/ui/styles"
)

const chromeHeight = 4 // title, search, blank line, help

type model struct {
	title    string
	items    []listing.Item
	visible  []listing.Item
	now      time.Time
	width    int
	search   textinput.Model
	viewport viewport.Model
}

func newModel(title string, items []listing.Item, now time.Time) model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search apps"
	ti.Focus()

	m := model{
		title:    title,
		items:    items,
		now:      now,
		width:    80,
		search:   ti,
		viewport: viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
	}
	m.refresh()
	return m
}

// refresh recomputes the visible items and the grid.
func (m *model) refresh() {
	m.visible = listing.Filter(m.items, listing.Criteria{Query: m.search.Value()})
	m.viewport.SetContent(grid(m.visible, m.width, m.now))
	m.viewport.GotoTop()
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(max(1, msg.Height-chromeHeight))
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.search.Value() == "" {
				return m, tea.Quit
			}
			m.search.SetValue("")
			m.refresh()
			return m, nil
		case "ctrl+r":
			m.search.SetValue("")
			m.refresh()
			return m, nil
		case "up", "down", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.refresh()
		}
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) header() string {
	count := fmt.Sprintf("%d of %d", len(m.visible), len(m.items))
	return styles.HeaderStyle.Render(m.title) + "  " + styles.MutedStyle.Render(count)
}

func (m model) help() string {
	return styles.MutedStyle.Render("↑/↓ scroll · ctrl+r reset · esc clear/quit · ctrl+c quit")
}

func (m model) View() tea.View {
	v := tea.NewView(strings.Join([]string{
		m.header(),
		m.search.View(),
		"",
		m.viewport.View(),
		m.help(),
	}, "\n"))
	v.AltScreen = true
	return v
}

// grid lays cards out in as many columns as fit in width.
func grid(items []listing.Item, width int, now time.Time) string {
	if len(items) == 0 {
		return styles.MutedStyle.Render("No apps match.")
	}

	cards := make([]string, len(items))
	for i, it := range items {
		cards[i] = static.RenderCard(it, now)
	}

	cols := max(1, width/(lipgloss.Width(cards[0])+1))
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		row := make([]string, 0, 2*(end-start))
		for i, c := range cards[start:end] {
			if i > 0 {
				row = append(row, " ")
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// Dashboard is the interactive renderer.
type Dashboard struct {
	title string
	now   func() time.Time
}

// New creates a dashboard with the given title.
func New(title string) *Dashboard {
	return &Dashboard{title: title, now: time.Now}
}

// Render blocks until the user quits or ctx is cancelled.
func (d *Dashboard) Render(ctx context.Context, items []listing.Item) error {
	prog := tea.NewProgram(newModel(d.title, items, d.now()),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stdout),
		tea.WithColorProfile(colorprofile.Detect(os.Stdout, os.Environ())),
	)
	_, err := prog.Run()
	return err
}
