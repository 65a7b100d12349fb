package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortKey selects the field items are ordered by.
type SortKey string

const (
	SortName       SortKey = "name"
	SortStars      SortKey = "stars"
	SortForks      SortKey = "forks"
	SortSize       SortKey = "size"
	SortWatchers   SortKey = "watchers"
	SortLanguage   SortKey = "language"
	SortOpenIssues SortKey = "issues"
	SortCreated    SortKey = "created_at"
	SortUpdated    SortKey = "updated_at"
	SortPushed     SortKey = "pushed_at"
)

// DefaultSortKey is used when nothing else is configured.
const DefaultSortKey = SortStars

// SortKeys lists every key in display order.
var SortKeys = []SortKey{
	SortName, SortStars, SortForks, SortSize, SortWatchers,
	SortLanguage, SortOpenIssues, SortCreated, SortUpdated, SortPushed,
}

var aliases = map[string]SortKey{
	"star":        SortStars,
	"fork":        SortForks,
	"watcher":     SortWatchers,
	"issue":       SortOpenIssues,
	"open_issues": SortOpenIssues,
	"created":     SortCreated,
	"updated":     SortUpdated,
	"pushed":      SortPushed,
}

// ParseSortKey parses a key or one of its aliases, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := aliases[s]; ok {
		return k, nil
	}
	if slices.Contains(SortKeys, SortKey(s)) {
		return SortKey(s), nil
	}
	return "", fmt.Errorf("invalid sort key %q (valid: %s)", s, keyList())
}

func keyList() string {
	names := make([]string, len(SortKeys))
	for i, k := range SortKeys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// DefaultDescending reports the natural direction of key: alphabetical for
// names, biggest or newest first for everything else.
func DefaultDescending(key SortKey) bool {
	return key != SortName
}

// Sort returns a copy of items ordered by key.
//
// Items whose value for key is unknown come last in either direction, in
// name order. Ties on the key are broken by name in the same direction, so a
// descending sort lists tied items Z-A on purpose: stars descending over
// [A:5, B:5] gives [B, A].
func Sort(items []Item, key SortKey, descending bool) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		aKnown, bKnown := known(a, key), known(b, key)
		switch {
		case aKnown && !bKnown:
			return -1
		case !aKnown && bKnown:
			return 1
		case !aKnown && !bKnown:
			return compareName(a, b)
		}

		c := compareField(a, b, key)
		if c == 0 {
			c = compareName(a, b)
		}
		if descending {
			return -c
		}
		return c
	})
	return out
}

func compareName(a, b Item) int {
	if c := cmp.Compare(strings.ToLower(a.Entry.Name), strings.ToLower(b.Entry.Name)); c != 0 {
		return c
	}
	return cmp.Compare(a.Entry.Name, b.Entry.Name)
}

func known(it Item, key SortKey) bool {
	m := it.Metadata
	switch key {
	case SortName:
		return true
	case SortStars:
		return m.Stars != nil
	case SortForks:
		return m.Forks != nil
	case SortSize:
		return m.Size != nil
	case SortWatchers:
		return m.Watchers != nil
	case SortLanguage:
		return m.Language != nil
	case SortOpenIssues:
		return m.OpenIssues != nil
	case SortCreated:
		return m.CreatedAt != nil
	case SortUpdated:
		return m.UpdatedAt != nil
	case SortPushed:
		return m.PushedAt != nil
	}
	return false
}

// compareField compares a known field of a and b.
func compareField(a, b Item, key SortKey) int {
	x, y := a.Metadata, b.Metadata
	switch key {
	case SortStars:
		return cmp.Compare(*x.Stars, *y.Stars)
	case SortForks:
		return cmp.Compare(*x.Forks, *y.Forks)
	case SortSize:
		return cmp.Compare(*x.Size, *y.Size)
	case SortWatchers:
		return cmp.Compare(*x.Watchers, *y.Watchers)
	case SortOpenIssues:
		return cmp.Compare(*x.OpenIssues, *y.OpenIssues)
	case SortLanguage:
		return cmp.Compare(strings.ToLower(*x.Language), strings.ToLower(*y.Language))
	case SortCreated:
		return x.CreatedAt.Compare(*y.CreatedAt)
	case SortUpdated:
		return x.UpdatedAt.Compare(*y.UpdatedAt)
	case SortPushed:
		return x.PushedAt.Compare(*y.PushedAt)
	}
	return 0
}
