// Package listing orders and narrows the catalog/metadata pairs shown by
// the renderers.
package listing

import (
	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/repo"
)

// Item is one app as rendered: its catalog entry and whatever metadata
// could be obtained for it.
type Item struct {
	Entry    catalog.Entry
	Metadata repo.Metadata
	Stale    bool  // metadata served from an expired cache record
	Err      error // metadata unavailable; Metadata is empty
}

// Failed reports whether no metadata could be obtained.
func (i Item) Failed() bool {
	return i.Err != nil
}
