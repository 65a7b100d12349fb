package main

import (
	"context"
	"fmt"

	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/config"
	"github.com/raphi011/dracula/internal/fetch"
	"github.com/raphi011/dracula/internal/github"
	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/metacache"
	"github.com/raphi011/dracula/internal/resolve"
)

// app bundles the components a command works with.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	store   *metacache.File
	client  *github.Client
	fetcher *fetch.Fetcher
}

type appOptions struct {
	refresh bool // revalidate every cached record
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx)

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	store, err := metacache.Open(dir, metacache.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	client := github.New(
		github.WithBaseURL(cfg.APIURL),
		github.WithToken(cfg.Token),
	)

	ttl := cfg.CacheTTL.Duration
	if opts.refresh {
		ttl = 0
	}
	fetcher := fetch.New(store, client,
		fetch.WithTTL(ttl),
		fetch.WithTimeout(cfg.Timeout.Duration),
		fetch.WithConcurrency(cfg.Concurrency),
	)

	return &app{
		cfg:     cfg,
		catalog: cat,
		store:   store,
		client:  client,
		fetcher: fetcher,
	}, nil
}

func (a *app) resolver() *resolve.Resolver {
	return resolve.New(a.catalog,
		resolve.WithThreshold(a.cfg.Resolve.Threshold),
		resolve.WithMargin(a.cfg.Resolve.Margin),
		resolve.WithMaxCandidates(a.cfg.Resolve.MaxCandidates),
	)
}

func (a *app) Close() error {
	return a.store.Close()
}
