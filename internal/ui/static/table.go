// Package static renders listings and app details as plain terminal output,
// without user interaction.
package static

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/dracula/internal/format"
	"github.com/raphi011/dracula/internal/listing"
	"github.com/raphi011/dracula/internal/ui/styles"
)

// Headers are the listing table columns.
var Headers = []string{"NAME", "STARS", "FORKS", "WATCHERS", "ISSUES", "SIZE", "LANGUAGE", "PUSHED"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// Row returns the table cells for one item.
func Row(it listing.Item, now time.Time) []string {
	name := it.Entry.Name
	if it.Stale {
		name += " " + styles.StaleSymbol
	}
	m := it.Metadata
	return []string{
		name,
		format.Count(m.Stars),
		format.Count(m.Forks),
		format.Count(m.Watchers),
		format.Count(m.OpenIssues),
		format.Size(m.Size),
		format.Truncate(format.Text(m.Language), 16),
		format.Age(m.PushedAt, now),
	}
}

// Table renders a listing as a table.
type Table struct {
	w   io.Writer
	now func() time.Time
}

// NewTable creates a table renderer writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{w: w, now: time.Now}
}

// Render writes a title line, the table and a legend for stale or failed rows.
func (t *Table) Render(_ context.Context, items []listing.Item) error {
	_, err := io.WriteString(t.w, RenderListing(items, t.now()))
	return err
}

// RenderListing returns the complete table output for items.
func RenderListing(items []listing.Item, now time.Time) string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("%d apps", len(items))))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(styles.MutedStyle.Render("No apps match."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, len(items))
	var stale, failed int
	for i, it := range items {
		rows[i] = Row(it, now)
		if it.Stale {
			stale++
		}
		if it.Failed() {
			failed++
		}
	}
	b.WriteString(RenderTable(Headers, rows))

	if note := Legend(stale, failed); note != "" {
		b.WriteString("\n")
		b.WriteString(note)
		b.WriteString("\n")
	}
	return b.String()
}

// Legend explains stale markers and missing metadata. Empty if neither occurs.
func Legend(stale, failed int) string {
	var parts []string
	if stale > 0 {
		parts = append(parts, styles.WarningStyle.Render(
			fmt.Sprintf("%s %d cached (GitHub unreachable)", styles.StaleSymbol, stale)))
	}
	if failed > 0 {
		parts = append(parts, styles.ErrorStyle.Render(
			fmt.Sprintf("%d without metadata", failed)))
	}
	return strings.Join(parts, styles.MutedStyle.Render(" · "))
}
