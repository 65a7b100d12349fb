package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/github"
	"github.com/raphi011/dracula/internal/listing"
	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/metacache"
	"github.com/raphi011/dracula/internal/repo"
)

// ErrMetadataUnavailable is returned when metadata could neither be fetched
// nor served from the cache.
var ErrMetadataUnavailable = errors.New("metadata unavailable")

// errNotModifiedUncached is a 304 for a validator we no longer hold.
var errNotModifiedUncached = errors.New("not modified, but nothing cached")

const (
	DefaultTTL         = 6 * time.Hour
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 8
)

// Provider fetches repository metadata from the remote source.
type Provider interface {
	Repository(ctx context.Context, repository, validator string) (github.Response, error)
}

// Result is metadata as served to a caller.
type Result struct {
	Metadata  repo.Metadata
	Stale     bool // the remote could not be reached; Metadata is from an expired record
	FetchedAt time.Time
}

// Fetcher combines a cache store with a remote provider.
type Fetcher struct {
	store       metacache.Store
	provider    Provider
	ttl         time.Duration
	timeout     time.Duration
	concurrency int
	now         func() time.Time

	sf singleflight.Group
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTTL sets how long a record counts as fresh. Zero forces a
// (conditional) request on every fetch.
func WithTTL(d time.Duration) Option {
	return func(f *Fetcher) { f.ttl = d }
}

// WithTimeout bounds each remote request.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithConcurrency caps parallel remote requests in FetchAll.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// New creates a fetcher.
func New(store metacache.Store, provider Provider, opts ...Option) *Fetcher {
	f := &Fetcher{
		store:       store,
		provider:    provider,
		ttl:         DefaultTTL,
		timeout:     DefaultTimeout,
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns metadata for repository ("owner/name").
func (f *Fetcher) Fetch(ctx context.Context, repository string) (Result, error) {
	if rec, ok := f.store.Get(repository); ok && metacache.IsFresh(rec, f.now(), f.ttl) {
		return resultOf(rec, false), nil
	}

	ch := f.sf.DoChan(repository, func() (any, error) {
		return f.refresh(context.WithoutCancel(ctx), repository)
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		return r.Val.(Result), nil
	}
}

// refresh runs once per repository at a time.
func (f *Fetcher) refresh(ctx context.Context, repository string) (Result, error) {
	logger := log.FromContext(ctx)

	rec, _ := f.store.Get(repository)
	// a flight that just finished may have refreshed it
	if metacache.IsFresh(rec, f.now(), f.ttl) {
		return resultOf(rec, false), nil
	}

	var validator string
	if rec != nil {
		validator = rec.Validator
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	resp, err := f.provider.Repository(reqCtx, repository, validator)

	var next *metacache.Record
	switch {
	case err != nil:
	case !resp.Changed && rec == nil:
		err = errNotModifiedUncached
	case !resp.Changed:
		next = &metacache.Record{
			Repository: repository,
			Metadata:   rec.Metadata,
			FetchedAt:  f.now(),
			Validator:  rec.Validator,
		}
	default:
		next = &metacache.Record{
			Repository: repository,
			Metadata:   resp.Metadata,
			FetchedAt:  f.now(),
			Validator:  resp.Validator,
		}
	}

	if err != nil {
		if rec != nil {
			logger.Debug("serving stale metadata", "repository", repository, "err", err)
			return resultOf(rec, true), nil
		}
		return Result{}, fmt.Errorf("%w: %s: %w", ErrMetadataUnavailable, repository, err)
	}

	if err := f.store.Put(repository, next); err != nil {
		logger.Debug("caching metadata failed", "repository", repository, "err", err)
	}
	return resultOf(next, false), nil
}

func resultOf(rec *metacache.Record, stale bool) Result {
	return Result{Metadata: rec.Metadata, Stale: stale, FetchedAt: rec.FetchedAt}
}

// FetchAll fetches metadata for every entry with bounded concurrency and
// returns one item per entry, in entry order. Failures are recorded per item.
// onProgress, if set, is called after each entry completes.
func (f *Fetcher) FetchAll(ctx context.Context, entries []catalog.Entry, onProgress func(done, total int)) []listing.Item {
	items := make([]listing.Item, len(entries))

	var (
		g    errgroup.Group
		mu   sync.Mutex
		done int
	)
	g.SetLimit(f.concurrency)

	for i, e := range entries {
		g.Go(func() error {
			res, err := f.Fetch(ctx, e.Repository)
			items[i] = listing.Item{Entry: e, Metadata: res.Metadata, Stale: res.Stale, Err: err}

			if onProgress != nil {
				mu.Lock()
				done++
				onProgress(done, len(entries))
				mu.Unlock()
			}
			return nil // per-item errors never abort the listing
		})
	}
	_ = g.Wait()

	return items
}
