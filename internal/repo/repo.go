// Package repo defines repository metadata as fetched from GitHub.
//
// Every sortable field is a pointer: nil means the value is unknown (never
// fetched, or null in the API response). Unknown is never collapsed to zero
// because a zero would masquerade as a real rank when sorting.
package repo

import "time"

// Metadata is a snapshot of a repository's public statistics.
// A Metadata value is never mutated after it is built; refreshes build a new one.
type Metadata struct {
	Stars      *int       `json:"stars"`
	Forks      *int       `json:"forks"`
	Size       *int       `json:"size"` // kilobytes, as reported by GitHub
	Watchers   *int       `json:"watchers"`
	OpenIssues *int       `json:"open_issues"`
	Language   *string    `json:"language"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
	PushedAt   *time.Time `json:"pushed_at"`

	Description string `json:"description,omitempty"`
	License     string `json:"license,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Time returns a pointer to v.
func Time(v time.Time) *time.Time { return &v }

// Known reports whether any sortable field is known.
func (m Metadata) Known() bool {
	return m.Stars != nil || m.Forks != nil || m.Size != nil || m.Watchers != nil ||
		m.OpenIssues != nil || m.Language != nil ||
		m.CreatedAt != nil || m.UpdatedAt != nil || m.PushedAt != nil
}
