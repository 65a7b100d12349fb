package static

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/dracula/internal/format"
	"github.com/raphi011/dracula/internal/listing"
	"github.com/raphi011/dracula/internal/ui/styles"
)

// CardWidth is the outer width of a card in the dashboard grid.
const CardWidth = 38

type field struct {
	label string
	value string
}

func fields(it listing.Item, now time.Time) []field {
	m := it.Metadata
	license := m.License
	if license == "" {
		license = "not specified"
	}
	return []field{
		{styles.StarSymbol + " Stars", format.Count(m.Stars)},
		{styles.ForkSymbol + " Forks", format.Count(m.Forks)},
		{"Watchers", format.Count(m.Watchers)},
		{"Open issues", format.Count(m.OpenIssues)},
		{"Size", format.Size(m.Size)},
		{"Language", format.Text(m.Language)},
		{"License", license},
		{"Created", format.Date(m.CreatedAt)},
		{"Updated", format.Age(m.UpdatedAt, now)},
		{"Pushed", format.Age(m.PushedAt, now)},
	}
}

func renderFields(fs []field) string {
	width := 0
	for _, f := range fs {
		width = max(width, lipgloss.Width(f.label))
	}

	lines := make([]string, len(fs))
	for i, f := range fs {
		pad := strings.Repeat(" ", width-lipgloss.Width(f.label))
		lines[i] = styles.LabelStyle.Render(f.label) + pad + "  " + styles.NormalStyle.Render(f.value)
	}
	return strings.Join(lines, "\n")
}

func title(it listing.Item) string {
	name := styles.HeaderStyle.Render(it.Entry.Name)
	return ansi.SetHyperlink(it.Entry.SiteURL()) + name + ansi.ResetHyperlink()
}

func status(it listing.Item) string {
	switch {
	case it.Failed():
		return styles.ErrorStyle.Render("metadata unavailable")
	case it.Stale:
		return styles.WarningStyle.Render(styles.StaleSymbol + " cached, GitHub unreachable")
	}
	return ""
}

// RenderCard renders the compact card used in the dashboard grid.
func RenderCard(it listing.Item, now time.Time) string {
	body := []string{title(it)}
	if s := status(it); s != "" {
		body = append(body, s)
	}
	body = append(body, "", renderFields(fields(it, now)))

	return styles.Card.Width(CardWidth).Render(strings.Join(body, "\n"))
}

// RenderDetail renders everything known about one app: metadata, the install
// command and the files to download.
func RenderDetail(it listing.Item, now time.Time) string {
	var b strings.Builder

	b.WriteString(title(it))
	b.WriteString("  ")
	b.WriteString(styles.MutedStyle.Render(it.Entry.URL()))
	b.WriteString("\n")
	if d := it.Metadata.Description; d != "" {
		b.WriteString(styles.NormalStyle.Render(d))
		b.WriteString("\n")
	}
	if s := status(it); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderFields(fields(it, now)))
	b.WriteString("\n")

	if cmd := it.Entry.InstallCommand(); cmd != "" {
		b.WriteString("\n")
		b.WriteString(styles.HeaderStyle.Render("Install"))
		b.WriteString("\n  ")
		b.WriteString(styles.CommandStyle.Render(cmd))
		b.WriteString("\n")
	}

	if files := it.Entry.DownloadFiles; len(files) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.HeaderStyle.Render("Files"))
		b.WriteString("\n")
		for _, f := range files {
			line := "  " + f.Path
			if f.Description != "" {
				line += styles.MutedStyle.Render("  " + f.Description)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderDocument frames a fetched markdown document (README, install guide)
// under a heading. Markdown is printed as is.
func RenderDocument(heading, body string) string {
	rule := styles.MutedStyle.Render(strings.Repeat("─", 40))
	return fmt.Sprintf("\n%s\n%s\n%s\n", styles.HeaderStyle.Render(heading), rule, strings.TrimRight(body, "\n"))
}
