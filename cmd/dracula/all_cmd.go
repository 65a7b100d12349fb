package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/dracula/internal/listing"
	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/output"
	"github.com/raphi011/dracula/internal/ui"
	"github.com/raphi011/dracula/internal/ui/dashboard"
	"github.com/raphi011/dracula/internal/ui/pager"
	"github.com/raphi011/dracula/internal/ui/progress"
	"github.com/raphi011/dracula/internal/ui/static"
)

// AppDisplay is an app as printed by --json.
type AppDisplay struct {
	Name       string     `json:"name"`
	Repository string     `json:"repository"`
	URL        string     `json:"url"`
	Install    string     `json:"install,omitempty"`
	Stars      *int       `json:"stars"`
	Forks      *int       `json:"forks"`
	Watchers   *int       `json:"watchers"`
	OpenIssues *int       `json:"open_issues"`
	Size       *int       `json:"size_kb"`
	Language   *string    `json:"language"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
	PushedAt   *time.Time `json:"pushed_at"`
	License    string     `json:"license,omitempty"`
	Stale      bool       `json:"stale,omitempty"`
	Error      string     `json:"error,omitempty"`

	Contributors []string `json:"contributors,omitempty"` // show only
}

func toDisplay(it listing.Item) AppDisplay {
	m := it.Metadata
	d := AppDisplay{
		Name:       it.Entry.Name,
		Repository: it.Entry.Repository,
		URL:        it.Entry.URL(),
		Install:    it.Entry.InstallCommand(),
		Stars:      m.Stars,
		Forks:      m.Forks,
		Watchers:   m.Watchers,
		OpenIssues: m.OpenIssues,
		Size:       m.Size,
		Language:   m.Language,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		PushedAt:   m.PushedAt,
		License:    m.License,
		Stale:      it.Stale,
	}
	if it.Err != nil {
		d.Error = it.Err.Error()
	}
	return d
}

func newAllCmd() *cobra.Command {
	var (
		sortBy     string
		asc        bool
		desc       bool
		language   string
		query      string
		hideFailed bool
		usePager   bool
		useTUI     bool
		jsonOutput bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:     "all",
		Short:   "List all apps with a Dracula theme",
		Aliases: []string{"ls", "list"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List every app in the catalog with its GitHub statistics.

Metadata is served from the local cache while fresh and fetched from GitHub
otherwise. When GitHub is unreachable, cached values are shown and marked ~.

Sorting defaults to stars, highest first. Name sorts A-Z by default.
Apps without a value for the sort field are always listed last.`,
		Example: `  dracula all                    # Table sorted by stars
  dracula all -s pushed_at       # Recently pushed first
  dracula all -s name --desc     # Z-A
  dracula all -l lua             # Only Lua ports
  dracula all --tui              # Searchable card grid
  dracula all --json | jq        # Machine-readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			a, err := newApp(ctx, appOptions{refresh: refresh})
			if err != nil {
				return err
			}
			defer a.Close()

			if sortBy == "" {
				sortBy = a.cfg.List.DefaultSort
			}
			key, err := listing.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			descending := listing.DefaultDescending(key)
			if asc {
				descending = false
			}
			if desc {
				descending = true
			}

			entries := a.catalog.Entries()
			bar := progress.New(os.Stderr, "Fetching metadata", len(entries))
			if !jsonOutput && !l.IsVerbose() {
				bar.Start()
			}
			items := a.fetcher.FetchAll(ctx, entries, bar.Report)
			bar.Stop()

			if err := ctx.Err(); err != nil {
				return err
			}

			items = listing.Filter(items, listing.Criteria{
				Query:      query,
				Language:   language,
				HideFailed: hideFailed,
			})
			items = listing.Sort(items, key, descending)

			var stale, failed int
			for _, it := range items {
				if it.Stale {
					stale++
				}
				if it.Failed() {
					failed++
					l.Debug("no metadata", "app", it.Entry.Name, "err", it.Err)
				}
			}
			l.Debug("listing", "apps", len(items), "sort", key, "desc", descending, "stale", stale, "failed", failed)

			if jsonOutput {
				apps := make([]AppDisplay, len(items))
				for i, it := range items {
					apps[i] = toDisplay(it)
				}
				return out.JSON(apps)
			}

			var r ui.Renderer
			switch {
			case !out.IsTerminal():
				r = static.NewTable(out.Styled())
			case useTUI:
				r = dashboard.New(title(key, descending))
			case usePager:
				r = pager.New(title(key, descending))
			default:
				r = static.NewTable(out.Styled())
			}
			return r.Render(ctx, items)
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "Sort by: "+sortKeyNames()+" (default from config)")
	cmd.Flags().BoolVar(&asc, "asc", false, "Sort ascending")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Only apps whose repository language matches")
	cmd.Flags().StringVar(&query, "search", "", "Only apps whose name fuzzy-matches")
	cmd.Flags().BoolVar(&hideFailed, "hide-failed", false, "Hide apps without metadata")
	cmd.Flags().BoolVarP(&usePager, "pager", "p", false, "Show in a scrollable pager")
	cmd.Flags().BoolVarP(&useTUI, "tui", "t", false, "Show an interactive, searchable card grid")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Revalidate cached metadata with GitHub")

	cmd.MarkFlagsMutuallyExclusive("asc", "desc")
	cmd.MarkFlagsMutuallyExclusive("pager", "tui", "json")

	cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return strings.Split(sortKeyNames(), ", "), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func sortKeyNames() string {
	names := make([]string, len(listing.SortKeys))
	for i, k := range listing.SortKeys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func title(key listing.SortKey, descending bool) string {
	dir := "ascending"
	if descending {
		dir = "descending"
	}
	return fmt.Sprintf("Dracula apps · %s %s", key, dir)
}
