package resolve

import (
	"errors"
	"slices"
	"strings"

	"github.com/raphi011/dracula/internal/catalog"
)

var (
	// ErrInvalidQuery is returned for a blank query or one without any
	// letters or digits.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrCatalogEmpty is returned when there is nothing to resolve against.
	ErrCatalogEmpty = errors.New("catalog is empty")
)

// Defaults used when no option overrides them.
const (
	DefaultThreshold     = 80
	DefaultMargin        = 10
	DefaultMaxCandidates = 5
)

// Kind tells a matched result from an ambiguous one.
type Kind int

const (
	Matched Kind = iota + 1
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Candidate is a catalog entry with its similarity to the query.
type Candidate struct {
	Entry catalog.Entry
	Score int // 0-100
}

// Result is the outcome of a resolution.
//
// For Matched, Entry and Score describe the match. For Ambiguous,
// Candidates holds the best candidates by descending score.
type Result struct {
	Kind       Kind
	Entry      catalog.Entry
	Score      int
	Candidates []Candidate
}

// Resolver maps user input to catalog entries.
type Resolver struct {
	entries       []catalog.Entry
	keys          [][]key // per entry: name, then aliases
	threshold     int
	margin        int
	maxCandidates int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold sets the minimum fuzzy score for an automatic match.
func WithThreshold(score int) Option {
	return func(r *Resolver) { r.threshold = score }
}

// WithMargin sets how far the best score must lead the runner-up.
func WithMargin(points int) Option {
	return func(r *Resolver) { r.margin = points }
}

// WithMaxCandidates caps the candidates of an ambiguous result.
func WithMaxCandidates(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxCandidates = n
		}
	}
}

// New creates a resolver over the catalog's entries.
func New(c *catalog.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		entries:       c.Entries(),
		threshold:     DefaultThreshold,
		margin:        DefaultMargin,
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.keys = make([][]key, len(r.entries))
	for i, e := range r.entries {
		for _, name := range e.SearchNames() {
			r.keys[i] = append(r.keys[i], normalize(name))
		}
	}
	return r
}

// Resolve finds the entry the query most likely names.
//
// An exact match after normalization always wins. Otherwise the best fuzzy
// candidate is accepted only if it reaches the threshold and leads the
// runner-up by at least the margin; anything else is Ambiguous.
// Aliases count as names; an entry scores its best-matching one.
func (r *Resolver) Resolve(query string) (Result, error) {
	if strings.TrimSpace(query) == "" {
		return Result{}, ErrInvalidQuery
	}
	if len(r.entries) == 0 {
		return Result{}, ErrCatalogEmpty
	}

	q := normalize(query)
	if q.exact == "" {
		return Result{}, ErrInvalidQuery
	}

	var exact []Candidate
	for i, ks := range r.keys {
		if slices.ContainsFunc(ks, func(k key) bool { return k.exact == q.exact }) {
			exact = append(exact, Candidate{Entry: r.entries[i], Score: 100})
		}
	}
	switch len(exact) {
	case 0:
	case 1:
		return Result{Kind: Matched, Entry: exact[0].Entry, Score: 100}, nil
	default:
		// two names that only differ in case or punctuation
		return Result{Kind: Ambiguous, Candidates: r.top(exact)}, nil
	}

	candidates := make([]Candidate, len(r.entries))
	for i, ks := range r.keys {
		hi := 0
		for _, k := range ks {
			hi = max(hi, score(q, k))
		}
		candidates[i] = Candidate{Entry: r.entries[i], Score: hi}
	}
	// stable: equal scores keep catalog order
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return b.Score - a.Score
	})

	best := candidates[0]
	runnerUp := 0
	if len(candidates) > 1 {
		runnerUp = candidates[1].Score
	}
	lead := best.Score - runnerUp
	if best.Score >= r.threshold && lead > 0 && lead >= r.margin {
		return Result{Kind: Matched, Entry: best.Entry, Score: best.Score}, nil
	}

	return Result{Kind: Ambiguous, Candidates: r.top(candidates)}, nil
}

func (r *Resolver) top(candidates []Candidate) []Candidate {
	if len(candidates) > r.maxCandidates {
		candidates = candidates[:r.maxCandidates]
	}
	return slices.Clone(candidates)
}
