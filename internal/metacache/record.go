package metacache

import (
	"time"

	"github.com/raphi011/dracula/internal/repo"
)

// Record is the cached metadata of one repository.
type Record struct {
	Repository string        `json:"repository"`
	Metadata   repo.Metadata `json:"metadata"`
	FetchedAt  time.Time     `json:"fetched_at"`
	Validator  string        `json:"validator,omitempty"` // ETag for conditional requests
}

// IsFresh reports whether rec is younger than ttl at now.
// A nil record is never fresh.
func IsFresh(rec *Record, now time.Time, ttl time.Duration) bool {
	if rec == nil || rec.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(rec.FetchedAt) < ttl
}

// Store is a keyed table of records.
type Store interface {
	// Get returns the record for repository, if any.
	Get(repository string) (*Record, bool)

	// Put replaces the record for repository.
	Put(repository string, rec *Record) error

	// Delete removes the record for repository.
	Delete(repository string) error

	// Clear removes all records.
	Clear() error

	// Len returns the number of records.
	Len() int

	// Keys returns the cached repository ids, sorted.
	Keys() []string

	// Close releases the store. Records already put are durable.
	Close() error
}

// valid reports whether a decoded record can be trusted for key.
func (r *Record) valid(key string) bool {
	return r != nil && r.Repository != "" && r.Repository == key && !r.FetchedAt.IsZero()
}
