package main

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/dracula/internal/catalog"
	"github.com/raphi011/dracula/internal/fetch"
	"github.com/raphi011/dracula/internal/github"
	"github.com/raphi011/dracula/internal/listing"
	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/output"
	"github.com/raphi011/dracula/internal/ui/static"
	"github.com/raphi011/dracula/internal/ui/styles"
)

func newShowCmd() *cobra.Command {
	var (
		readme     bool
		guide      bool
		copyCmd    bool
		jsonOutput bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:     "show <app>",
		Short:   "Show an app's repository details",
		Aliases: []string{"info"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Show repository details, contributors and install instructions for one app.

The name is matched forgivingly: case, spaces, dashes and word order do
not matter, and small typos are corrected. When the name is ambiguous a
list of candidates is offered (or printed, when not in a terminal).`,
		Example: `  dracula show vim
  dracula show "visual studio code"
  dracula show vscod              # typo, still resolves
  dracula show kitty --readme     # print the repository README
  dracula show vim --copy         # copy the install command`,
		ValidArgsFunction: completeApps,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			a, err := newApp(ctx, appOptions{refresh: refresh})
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := resolveApp(ctx, a, args[0], !jsonOutput && interactive())
			if err != nil {
				return err
			}

			switch {
			case readme:
				body, err := a.client.Readme(ctx, entry.Repository)
				if err != nil {
					return fmt.Errorf("readme for %s: %w", entry.Name, err)
				}
				fmt.Fprint(out.Styled(), static.RenderDocument(entry.Name+" · README", body))
				return nil
			case guide:
				body, err := a.client.InstallGuide(ctx, entry.Repository)
				if err != nil {
					return fmt.Errorf("install guide for %s: %w", entry.Name, err)
				}
				fmt.Fprint(out.Styled(), static.RenderDocument(entry.Name+" · INSTALL", body))
				return nil
			}

			it := fetchItem(ctx, a, entry)
			people, peopleErr := fetchContributors(ctx, a, entry)

			if copyCmd {
				copyInstall(ctx, entry)
			}

			if jsonOutput {
				d := toDisplay(it)
				for _, p := range people {
					d.Contributors = append(d.Contributors, p.Login)
				}
				return out.JSON(d)
			}

			w := out.Styled()
			fmt.Fprint(w, static.RenderDetail(it, time.Now()))
			switch {
			case peopleErr != nil:
				fmt.Fprintln(w, "\n"+styles.MutedStyle.Render("contributors unavailable"))
			case len(people) > 0:
				fmt.Fprintln(w, "\n"+static.RenderContributors(people, static.MaxContributors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&readme, "readme", false, "Print the repository README")
	cmd.Flags().BoolVar(&guide, "guide", false, "Print the repository INSTALL.md")
	cmd.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy the install command to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Revalidate cached metadata with GitHub")

	cmd.MarkFlagsMutuallyExclusive("readme", "guide", "json")

	return cmd
}

// fetchItem fetches metadata for a single entry. A failure is kept on the
// item so the details can still be shown.
func fetchItem(ctx context.Context, a *app, e catalog.Entry) listing.Item {
	res, err := a.fetcher.Fetch(ctx, e.Repository)
	if err != nil {
		log.FromContext(ctx).Debug("no metadata", "app", e.Name, "err", err)
		return listing.Item{Entry: e, Err: err}
	}
	return listing.Item{Entry: e, Metadata: res.Metadata, Stale: res.Stale}
}

// fetchContributors is best-effort and not cached.
func fetchContributors(ctx context.Context, a *app, e catalog.Entry) ([]github.Contributor, error) {
	timeout := a.cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	people, err := a.client.Contributors(ctx, e.Repository)
	if err != nil {
		log.FromContext(ctx).Debug("no contributors", "app", e.Name, "err", err)
		return nil, err
	}
	return people, nil
}

// copyInstall puts the entry's install command on the clipboard. Failing to
// do so is only worth a warning.
func copyInstall(ctx context.Context, e catalog.Entry) {
	l := log.FromContext(ctx)
	command := e.InstallCommand()
	if command == "" {
		l.Printf("Warning: %s has no install command to copy\n", e.Name)
		return
	}
	if clipboard.Unsupported {
		l.Printf("Warning: clipboard not available\n")
		return
	}
	if err := clipboard.WriteAll(command); err != nil {
		l.Printf("Warning: copy to clipboard: %v\n", err)
		return
	}
	l.Printf("Copied install command to clipboard\n")
}
