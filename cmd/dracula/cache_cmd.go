package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/config"
	"github.com/raphi011/dracula/internal/format"
	"github.com/raphi011/dracula/internal/metacache"
	"github.com/raphi011/dracula/internal/output"
	"github.com/raphi011/dracula/internal/ui/static"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cache",
		Short:   "Inspect or clear the metadata cache",
		GroupID: GroupConfig,
		Long: `Inspect or clear the local cache of GitHub repository metadata.

The cache only holds data that can be fetched again, so clearing it is
always safe. A damaged cache file is discarded automatically.`,
		Example: `  dracula cache path     # Print the cache file location
  dracula cache stats    # Count fresh and expired records
  dracula cache clear    # Remove all records`,
	}

	cmd.AddCommand(newCachePathCmd())
	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

func openCache(cmd *cobra.Command) (*metacache.File, error) {
	cfg := config.FromContext(cmd.Context())
	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return metacache.Open(dir)
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			output.FromContext(cmd.Context()).Println(store.Path())
			return nil
		},
	}
}

// CacheStats summarizes the cache for --json.
type CacheStats struct {
	Path    string    `json:"path"`
	Records int       `json:"records"`
	Fresh   int       `json:"fresh"`
	Expired int       `json:"expired"`
	Orphans []string  `json:"orphans,omitempty"` // repositories no longer in the catalog
	Oldest  time.Time `json:"oldest,omitzero"`
}

func cacheStats(store metacache.Store, c *catalog.Catalog, ttl time.Duration, now time.Time) CacheStats {
	known := make(map[string]bool, c.Len())
	for _, e := range c.Entries() {
		known[e.Repository] = true
	}

	var s CacheStats
	for _, key := range store.Keys() {
		rec, ok := store.Get(key)
		if !ok {
			continue
		}
		s.Records++
		if metacache.IsFresh(rec, now, ttl) {
			s.Fresh++
		} else {
			s.Expired++
		}
		if s.Oldest.IsZero() || rec.FetchedAt.Before(s.Oldest) {
			s.Oldest = rec.FetchedAt
		}
		if !known[key] {
			s.Orphans = append(s.Orphans, key)
		}
	}
	return s
}

func newCacheStatsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how many records are cached and how many are fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			cfg := config.FromContext(ctx)

			c, err := catalog.Load()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			now := time.Now()
			stats := cacheStats(store, c, cfg.CacheTTL.Duration, now)
			stats.Path = store.Path()

			if jsonOutput {
				return out.JSON(stats)
			}

			oldest := format.Unknown
			if !stats.Oldest.IsZero() {
				oldest = format.Age(&stats.Oldest, now)
			}
			rows := [][]string{
				{"Path", stats.Path},
				{"Records", fmt.Sprintf("%d of %d apps", stats.Records, c.Len())},
				{"Fresh", fmt.Sprintf("%d (ttl %s)", stats.Fresh, cfg.CacheTTL.Duration)},
				{"Expired", fmt.Sprint(stats.Expired)},
				{"Oldest", oldest},
			}
			if len(stats.Orphans) > 0 {
				rows = append(rows, []string{"Orphaned", fmt.Sprint(len(stats.Orphans))})
			}
			fmt.Fprint(out.Styled(), static.RenderTable([]string{"CACHE", ""}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			store, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			n := store.Len()
			if err := store.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			out.Printf("Removed %d cached records\n", n)
			return nil
		},
	}
}
