// Package ui defines how listings reach the terminal.
//
// Three renderers implement [Renderer]:
//
//   - static.Table: a plain table written once (the default, and the only
//     choice when stdout is not a terminal)
//   - pager.Pager: the same table in a scrollable full-screen view
//   - dashboard.Dashboard: a searchable grid of cards
//
// Styles come from the styles package. Interactive components draw with
// bubbletea and detect the color profile of the stream they write to.
package ui

import (
	"context"

	"github.com/raphi011/dracula/internal/listing"
)

// Renderer presents a sorted, filtered listing.
type Renderer interface {
	Render(ctx context.Context, items []listing.Item) error
}
