package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/dracula/internal/config"
	"github.com/raphi011/dracula/internal/log"
	"github.com/raphi011/dracula/internal/output"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

type rootOptions struct {
	verbose bool
	quiet   bool
	token   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "dracula",
		Short: "Browse the apps that support the Dracula theme",
		Long: `dracula lists the apps with an official Dracula theme port, shows
repository details and prints install instructions.

Repository metadata comes from GitHub and is cached locally, so repeated
runs are fast and keep working when GitHub is unreachable.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logger := log.New(stderr, opts.verbose, opts.quiet)
			ctx = log.WithLogger(ctx, logger)
			ctx = output.WithPrinter(ctx, stdout)

			if opts.token != "" {
				cfg := *config.FromContext(ctx)
				cfg.Token = opts.token
				ctx = config.WithConfig(ctx, &cfg)
			}

			cmd.SetContext(ctx)
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show GitHub requests and cache decisions")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "GitHub token (default: config token or $GITHUB_TOKEN)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newAllCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newInstallCmd())

	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// run executes the CLI with args against a loaded config.
func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	ctx = config.WithConfig(ctx, cfg)

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Execute runs the CLI with os.Args and exits non-zero on error.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, &cfg, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'dracula -h' for help")
		cancel()
		os.Exit(1)
	}
}
