package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/github"
	"github.com/raphi011/dracula/internal/metacache"
	"github.com/raphi011/dracula/internal/repo"
)

var t0 = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeProvider answers from a table and records what it was asked.
type fakeProvider struct {
	mu         sync.Mutex
	calls      int
	validators []string
	responses  map[string]github.Response
	errs       map[string]error
	release    chan struct{} // if set, calls block until closed
	started    chan struct{} // if set, receives on every call
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		responses: make(map[string]github.Response),
		errs:      make(map[string]error),
	}
}

func (p *fakeProvider) Repository(ctx context.Context, repository, validator string) (github.Response, error) {
	p.mu.Lock()
	p.calls++
	p.validators = append(p.validators, validator)
	resp, err := p.responses[repository], p.errs[repository]
	p.mu.Unlock()

	if p.started != nil {
		p.started <- struct{}{}
	}
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return github.Response{}, ctx.Err()
		}
	}
	if err != nil {
		return github.Response{}, err
	}
	if resp.Validator != "" && resp.Validator == validator {
		return github.Response{Validator: validator}, nil
	}
	return resp, nil
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func changed(stars int, etag string) github.Response {
	return github.Response{
		Metadata:  repo.Metadata{Stars: repo.Int(stars)},
		Validator: etag,
		Changed:   true,
	}
}

func newFetcher(store metacache.Store, p Provider, c *clock, opts ...Option) *Fetcher {
	return New(store, p, append([]Option{WithClock(c.Now)}, opts...)...)
}

func TestFetch_MissFetchesAndCaches(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.responses["dracula/vim"] = changed(1300, `"v1"`)
	store := metacache.NewMemory()
	c := &clock{now: t0}
	f := newFetcher(store, p, c)

	res, err := f.Fetch(context.Background(), "dracula/vim")
	require.NoError(t, err)
	assert.Equal(t, 1300, *res.Metadata.Stars)
	assert.False(t, res.Stale)
	assert.Equal(t, t0, res.FetchedAt)

	rec, ok := store.Get("dracula/vim")
	require.True(t, ok)
	assert.Equal(t, `"v1"`, rec.Validator)
}

func TestFetch_FreshRecordSkipsRemote(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	store := metacache.NewMemory()
	require.NoError(t, store.Put("dracula/vim", &metacache.Record{
		Repository: "dracula/vim",
		Metadata:   repo.Metadata{Stars: repo.Int(5)},
		FetchedAt:  t0,
	}))
	c := &clock{now: t0.Add(DefaultTTL - time.Minute)}
	f := newFetcher(store, p, c)

	res, err := f.Fetch(context.Background(), "dracula/vim")
	require.NoError(t, err)
	assert.Equal(t, 5, *res.Metadata.Stars)
	assert.Equal(t, 0, p.Calls())
}

func TestFetch_NotModifiedRefreshesFetchTime(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.responses["dracula/vim"] = changed(1300, `"v1"`)
	store := metacache.NewMemory()
	c := &clock{now: t0}
	f := newFetcher(store, p, c)

	first, err := f.Fetch(context.Background(), "dracula/vim")
	require.NoError(t, err)

	c.Advance(DefaultTTL)
	second, err := f.Fetch(context.Background(), "dracula/vim")
	require.NoError(t, err)

	assert.Equal(t, 2, p.Calls())
	assert.Equal(t, []string{"", `"v1"`}, p.validators)
	assert.Equal(t, first.Metadata, second.Metadata)
	assert.Equal(t, t0.Add(DefaultTTL), second.FetchedAt)

	rec, _ := store.Get("dracula/vim")
	assert.Equal(t, `"v1"`, rec.Validator)
	assert.Equal(t, t0.Add(DefaultTTL), rec.FetchedAt)
}

func TestFetch_ChangedReplacesRecord(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.responses["dracula/vim"] = changed(1, `"v1"`)
	store := metacache.NewMemory()
	c := &clock{now: t0}
	f := newFetcher(store, p, c)

	_, err := f.Fetch(context.Background(), "dracula/vim")
	require.NoError(t, err)
	old, _ := store.Get("dracula/vim")

	p.mu.Lock()
	p.responses["dracula/vim"] = changed(2, `"v2"`)
	p.mu.Unlock()
	c.Advance(DefaultTTL + time.Second)

	res, err := f.Fetch(context.Background(), "dracula/vim")
	require.NoError(t, err)
	assert.Equal(t, 2, *res.Metadata.Stars)
	assert.Equal(t, 1, *old.Metadata.Stars, "earlier record is left untouched")
}

func TestFetch_StaleOnFailure(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.errs["dracula/vim"] = errors.New("connection refused")
	store := metacache.NewMemory()
	require.NoError(t, store.Put("dracula/vim", &metacache.Record{
		Repository: "dracula/vim",
		Metadata:   repo.Metadata{Stars: repo.Int(5)},
		FetchedAt:  t0,
	}))
	c := &clock{now: t0.Add(48 * time.Hour)}
	f := newFetcher(store, p, c)

	res, err := f.Fetch(context.Background(), "dracula/vim")
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, 5, *res.Metadata.Stars)
	assert.Equal(t, t0, res.FetchedAt)

	rec, _ := store.Get("dracula/vim")
	assert.Equal(t, t0, rec.FetchedAt, "failure must not refresh the record")
}

func TestFetch_Unavailable(t *testing.T) {
	t.Parallel()

	cause := errors.New("no route to host")
	p := newFakeProvider()
	p.errs["dracula/vim"] = cause
	f := newFetcher(metacache.NewMemory(), p, &clock{now: t0})

	_, err := f.Fetch(context.Background(), "dracula/vim")
	assert.ErrorIs(t, err, ErrMetadataUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "dracula/vim")
}

func TestFetch_NotModifiedWithoutRecord(t *testing.T) {
	t.Parallel()

	notModified := &stubProvider{resp: github.Response{Validator: `"v1"`}}
	f := newFetcher(metacache.NewMemory(), notModified, &clock{now: t0})

	_, err := f.Fetch(context.Background(), "dracula/vim")
	assert.ErrorIs(t, err, ErrMetadataUnavailable)
}

type stubProvider struct {
	resp github.Response
	err  error
}

func (s *stubProvider) Repository(context.Context, string, string) (github.Response, error) {
	return s.resp, s.err
}

func TestFetch_ZeroTTLAlwaysRevalidates(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.responses["dracula/vim"] = changed(1, `"v1"`)
	f := newFetcher(metacache.NewMemory(), p, &clock{now: t0}, WithTTL(0))

	for range 3 {
		_, err := f.Fetch(context.Background(), "dracula/vim")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.Calls())
}

func TestFetch_ConcurrentCallersShareOneCall(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.responses["dracula/vim"] = changed(1300, `"v1"`)
	p.release = make(chan struct{})
	p.started = make(chan struct{}, 1)
	f := newFetcher(metacache.NewMemory(), p, &clock{now: t0})

	const n = 16
	results := make([]Result, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.Fetch(context.Background(), "dracula/vim")
		}()
	}

	<-p.started
	close(p.release)
	wg.Wait()

	assert.Equal(t, 1, p.Calls())
	for i := range n {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestFetch_CancelledCallerStillWarmsCache(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.responses["dracula/vim"] = changed(7, `"v1"`)
	p.release = make(chan struct{})
	p.started = make(chan struct{}, 1)
	store := metacache.NewMemory()
	f := newFetcher(store, p, &clock{now: t0})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := f.Fetch(ctx, "dracula/vim")
		errCh <- err
	}()

	<-p.started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(p.release)
	require.Eventually(t, func() bool {
		_, ok := store.Get("dracula/vim")
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestFetch_Timeout(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.release = make(chan struct{}) // never closed
	f := newFetcher(metacache.NewMemory(), p, &clock{now: t0}, WithTimeout(20*time.Millisecond))

	_, err := f.Fetch(context.Background(), "dracula/vim")
	assert.ErrorIs(t, err, ErrMetadataUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchAll(t *testing.T) {
	t.Parallel()

	p := newFakeProvider()
	p.responses["dracula/vim"] = changed(3, "")
	p.errs["dracula/zsh"] = errors.New("boom")
	p.responses["dracula/tmux"] = changed(1, "")
	f := newFetcher(metacache.NewMemory(), p, &clock{now: t0}, WithConcurrency(2))

	entries := []catalog.Entry{
		{Name: "vim", Repository: "dracula/vim"},
		{Name: "zsh", Repository: "dracula/zsh"},
		{Name: "tmux", Repository: "dracula/tmux"},
	}

	var mu sync.Mutex
	var progress []int
	items := f.FetchAll(context.Background(), entries, func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 3, total)
		progress = append(progress, done)
	})

	require.Len(t, items, 3)
	for i, it := range items {
		assert.Equal(t, entries[i].Name, it.Entry.Name, "entry order")
	}
	assert.NoError(t, items[0].Err)
	assert.Equal(t, 3, *items[0].Metadata.Stars)
	assert.ErrorIs(t, items[1].Err, ErrMetadataUnavailable)
	assert.True(t, items[1].Failed())
	assert.NoError(t, items[2].Err)
	assert.Equal(t, []int{1, 2, 3}, progress)
}
