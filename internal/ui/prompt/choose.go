package prompt

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/resolve"
	"github.com/raphi011/dracula/internal/ui/styles"
)

type candidateItem struct {
	candidate resolve.Candidate
	index     int
}

func (i candidateItem) Title() string { return i.candidate.Entry.Name }
func (i candidateItem) Description() string {
	return fmt.Sprintf("%s · %d%% match", i.candidate.Entry.Repository, i.candidate.Score)
}
func (i candidateItem) FilterValue() string { return i.candidate.Entry.Name }

type chooseModel struct {
	list      list.Model
	done      bool
	cancelled bool
	selected  int
}

func (m chooseModel) Init() tea.Cmd {
	return nil
}

func (m chooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// let the list handle keys while the user types a filter
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(candidateItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m chooseModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

func newChooseModel(title string, candidates []resolve.Candidate) chooseModel {
	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = candidateItem{candidate: c, index: i}
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true).
		PaddingLeft(2)
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().
		Foreground(styles.Muted).
		PaddingLeft(2)

	// two lines per item plus title and help
	l := list.New(items, delegate, 60, min(2*len(candidates)+6, 20))
	l.Title = title
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.Dracula.Background).
		Background(styles.Primary).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return chooseModel{list: l, selected: -1}
}

// Choose asks the user to pick one of the candidates.
// ok is false if the user cancelled.
func Choose(title string, candidates []resolve.Candidate) (entry catalog.Entry, ok bool, err error) {
	if len(candidates) == 0 {
		return catalog.Entry{}, false, nil
	}

	p := tea.NewProgram(newChooseModel(title, candidates),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)
	final, err := p.Run()
	if err != nil {
		return catalog.Entry{}, false, err
	}

	m := final.(chooseModel)
	if m.cancelled || m.selected < 0 || m.selected >= len(candidates) {
		return catalog.Entry{}, false, nil
	}
	return candidates[m.selected].Entry, true, nil
}
