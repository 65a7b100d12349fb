// Package pager shows a rendered listing in a scrollable full-screen view.
package pager

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/dracula/internal/listing"
	"github.com/raphi011/dracula/internal/ui/static"
	"github.com/raphi011/dracula/internal/ui/styles"
)

const chromeHeight = 2 // header and footer lines

type model struct {
	title    string
	viewport viewport.Model
}

func newModel(title, content string) model {
	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(20))
	vp.SetContent(content)
	return model{title: title, viewport: vp}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.viewport.SetWidth(msg.Width)
		m.viewport.SetHeight(max(1, msg.Height-chromeHeight))
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) header() string {
	return styles.HeaderStyle.Render(m.title)
}

func (m model) footer() string {
	return styles.MutedStyle.Render(fmt.Sprintf("↑/↓ scroll · q quit · %3.0f%%", m.viewport.ScrollPercent()*100))
}

func (m model) View() tea.View {
	v := tea.NewView(strings.Join([]string{m.header(), m.viewport.View(), m.footer()}, "\n"))
	v.AltScreen = true
	return v
}

// Pager renders a listing table inside a scrollable viewport on stdout.
type Pager struct {
	title string
	now   func() time.Time
}

// New creates a pager with the given title.
func New(title string) *Pager {
	return &Pager{title: title, now: time.Now}
}

// Render blocks until the user quits or ctx is cancelled.
func (p *Pager) Render(ctx context.Context, items []listing.Item) error {
	content := static.RenderListing(items, p.now())
	prog := tea.NewProgram(newModel(p.title, content),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stdout),
		tea.WithColorProfile(colorprofile.Detect(os.Stdout, os.Environ())),
	)
	_, err := prog.Run()
	return err
}
