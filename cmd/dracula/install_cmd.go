package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/dracula/internal/output"
)

var errNoInstall = errors.New("no install command")

func newInstallCmd() *cobra.Command {
	var copyCmd bool

	cmd := &cobra.Command{
		Use:     "install <app>",
		Short:   "Print the install command for an app",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Print the command that installs the Dracula theme for an app.

Only the command is written to stdout, so it can be piped or evaluated.
Nothing is executed.`,
		Example: `  dracula install vim
  dracula install alacritty | sh
  dracula install kitty --copy`,
		ValidArgsFunction: completeApps,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			a, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := resolveApp(ctx, a, args[0], interactive())
			if err != nil {
				return err
			}

			command := entry.InstallCommand()
			if command == "" {
				return fmt.Errorf("%w for %s, see %s", errNoInstall, entry.Name, entry.URL())
			}

			if copyCmd {
				copyInstall(ctx, entry)
			}
			out.Println(command)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Also copy the command to the clipboard")

	return cmd
}
