package listing

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Criteria narrows a listing. Zero values match everything.
type Criteria struct {
	Query      string // fuzzy match on the app name
	Language   string // exact language, case-insensitive
	HideFailed bool   // drop items without metadata
}

type names []Item

func (n names) String(i int) string { return n[i].Entry.Name }
func (n names) Len() int            { return len(n) }

// Filter returns the items matching c, keeping their order.
func Filter(items []Item, c Criteria) []Item {
	keep := make([]bool, len(items))
	if q := strings.TrimSpace(c.Query); q != "" {
		for _, m := range fuzzy.FindFrom(q, names(items)) {
			keep[m.Index] = true
		}
	} else {
		for i := range keep {
			keep[i] = true
		}
	}

	out := make([]Item, 0, len(items))
	for i, it := range items {
		if !keep[i] {
			continue
		}
		if c.HideFailed && it.Failed() {
			continue
		}
		if c.Language != "" && (it.Metadata.Language == nil || !strings.EqualFold(*it.Metadata.Language, c.Language)) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Languages returns the distinct known languages of items, in first-seen order.
func Languages(items []Item) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, it := range items {
		if it.Metadata.Language == nil {
			continue
		}
		l := *it.Metadata.Language
		if key := strings.ToLower(l); !seen[key] {
			seen[key] = true
			langs = append(langs, l)
		}
	}
	return langs
}
