// Package progress shows a determinate progress bar on stderr while
// metadata is fetched.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/dracula/internal/ui/styles"
)

const barWidth = 40

type countMsg struct {
	done, total int
}

type model struct {
	bar   progress.Model
	label string
	done  int
	total int
}

func newModel(label string, done, total int) model {
	return model{
		bar: progress.New(
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
			progress.WithColors(styles.Primary, styles.Accent),
		),
		label: label,
		done:  done,
		total: total,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil
	default:
		var cmd tea.Cmd
		m.bar, cmd = m.bar.Update(msg)
		return m, cmd
	}
}

func (m model) fraction() float64 {
	if m.total <= 0 {
		return 0
	}
	return min(float64(m.done)/float64(m.total), 1)
}

// render formats: [████████░░░░] 45% Fetching metadata (12/26)
func (m model) render() string {
	if m.total <= 0 {
		return ""
	}
	f := m.fraction()
	return fmt.Sprintf("%s %3d%% %s (%d/%d)", m.bar.ViewAs(f), int(f*100), m.label, m.done, m.total)
}

func (m model) View() tea.View {
	return tea.NewView(m.render())
}

// Bar tracks done/total counts and draws them while started.
// It stays silent unless out is a terminal, so piped output is never
// interleaved with escape codes.
type Bar struct {
	out   *os.File
	label string

	mu      sync.Mutex
	program *tea.Program
	exited  chan struct{}
	done    int
	total   int
}

// New creates a bar labelled label, drawn on out.
func New(out *os.File, label string, total int) *Bar {
	return &Bar{out: out, label: label, total: total}
}

func isTerminal(f *os.File) bool {
	return f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Start draws the bar. Calling it twice, or on a non-terminal, does nothing.
func (b *Bar) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.program != nil || !isTerminal(b.out) {
		return
	}

	b.program = tea.NewProgram(newModel(b.label, b.done, b.total),
		tea.WithoutSignalHandler(),
		tea.WithInput(nil),
		tea.WithOutput(b.out),
		tea.WithColorProfile(colorprofile.Detect(b.out, os.Environ())),
	)
	b.exited = make(chan struct{})

	go func(p *tea.Program, exited chan struct{}) {
		_, _ = p.Run()
		close(exited)
	}(b.program, b.exited)
}

// Report records progress. Its signature matches the fetcher's progress
// callback, so it can be passed directly.
func (b *Bar) Report(done, total int) {
	b.mu.Lock()
	b.done, b.total = done, total
	p := b.program
	b.mu.Unlock()

	if p != nil {
		p.Send(countMsg{done: done, total: total})
	}
}

// Counts returns the last reported progress.
func (b *Bar) Counts() (done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done, b.total
}

// Stop removes the bar. Safe to call without Start.
func (b *Bar) Stop() {
	b.mu.Lock()
	p, exited := b.program, b.exited
	b.program = nil
	b.mu.Unlock()

	if p == nil {
		return
	}
	p.Quit()

	select {
	case <-exited:
	case <-time.After(500 * time.Millisecond):
	}
	fmt.Fprint(b.out, "\r\033[K")
}
